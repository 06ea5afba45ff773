package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/arena"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	config.LoadEnvFiles()
	cfg := config.LoadConfig()

	opts := arena.Options{}
	flag.IntVar(&opts.Games, "games", cfg.ArenaGames, "Number of games")
	flag.IntVar(&opts.Concurrency, "concurrency", cfg.ArenaConcurrency, "Number of games played in parallel")
	flag.IntVar(&opts.Rows, "rows", cfg.Rows, "Board rows")
	flag.IntVar(&opts.Columns, "columns", cfg.Columns, "Board columns")
	flag.IntVar(&opts.DepthA, "depth-a", cfg.ArenaDepthA, "Search depth of engine A")
	flag.IntVar(&opts.DepthB, "depth-b", cfg.ArenaDepthB, "Search depth of engine B")
	flag.IntVar(&opts.OpeningPlies, "plies", cfg.ArenaOpeningPlies, "Random opening plies per game")
	flag.Int64Var(&opts.Seed, "seed", cfg.ArenaSeed, "Seed for the random openings")
	verbose := flag.Bool("v", false, "Log every search")
	flag.Parse()

	if !*verbose {
		log.SetOutput(skipSearchLogs{os.Stderr})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, err := arena.Run(ctx, opts)
	if err != nil {
		return err
	}
	return arena.WriteReport(os.Stdout, summary)
}

// skipSearchLogs drops the per-move engine lines.
type skipSearchLogs struct {
	w io.Writer
}

func (s skipSearchLogs) Write(p []byte) (int, error) {
	if bytes.Contains(p, []byte("[BOT]")) {
		return len(p), nil
	}
	return s.w.Write(p)
}
