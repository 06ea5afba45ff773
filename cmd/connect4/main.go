package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/terminal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	config.LoadEnvFiles()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// the screen owns stdout; logs go to a file or nowhere
	log.SetOutput(io.Discard)
	if path := config.GetEnv("CONNECT4_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := terminal.NewApp(screen, game.NewSessionManager(false, 0), terminal.Options{
		Grid:       config.GridPreset{Rows: cfg.Rows, Columns: cfg.Columns},
		Difficulty: cfg.Difficulty,
		Depth:      cfg.SearchDepth,
		BotDelay:   cfg.BotMoveDelay,
	})
	log.Printf("[UI] Starting (%dx%d, %s)", cfg.Rows, cfg.Columns, cfg.Difficulty)
	return app.Run(ctx)
}
