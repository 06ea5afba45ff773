// Package arena plays the search engine against itself at two depths.
package arena

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
)

type Options struct {
	Games        int
	Concurrency  int
	Rows         int
	Columns      int
	DepthA       int
	DepthB       int
	OpeningPlies int
	Seed         int64
}

type GameResult int

const (
	ResultDraw GameResult = iota
	ResultEngineA
	ResultEngineB
)

func (r GameResult) String() string {
	switch r {
	case ResultEngineA:
		return "A"
	case ResultEngineB:
		return "B"
	default:
		return "draw"
	}
}

type gameInfo struct {
	gameNumber       int
	engineAIsPlayerA bool
}

type gameRecord struct {
	gameInfo gameInfo
	result   GameResult
	moves    []int
}

// Summary aggregates finished games.
type Summary struct {
	Options  Options
	Games    int
	WinsA    int
	WinsB    int
	Draws    int
	Plies    int
	Duration time.Duration

	// running Elo ratings, updated game by game in finishing order
	RatingA int
	RatingB int
}

// ScoreA is engine A's points fraction, counting draws as half.
func (s Summary) ScoreA() float64 {
	if s.Games == 0 {
		return 0
	}
	return (float64(s.WinsA) + 0.5*float64(s.Draws)) / float64(s.Games)
}

// Run plays opts.Games games on opts.Concurrency workers. Engine A moves
// first in even-numbered games.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if err := opts.validate(); err != nil {
		return Summary{}, err
	}
	start := time.Now()
	log.Printf("[ARENA] %d games, depth %d vs %d, %dx%d, concurrency %d",
		opts.Games, opts.DepthA, opts.DepthB, opts.Rows, opts.Columns, opts.Concurrency)

	g, ctx := errgroup.WithContext(ctx)

	gameInfos := make(chan gameInfo)
	gameRecords := make(chan gameRecord)
	summary := Summary{Options: opts, RatingA: InitialRating, RatingB: InitialRating}

	g.Go(func() error {
		defer close(gameInfos)
		for i := 0; i < opts.Games; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- gameInfo{gameNumber: i, engineAIsPlayerA: i%2 == 0}:
			}
		}
		return nil
	})

	g.Go(func() error {
		for rec := range gameRecords {
			summary.Games++
			summary.Plies += len(rec.moves)
			switch rec.result {
			case ResultEngineA:
				summary.WinsA++
			case ResultEngineB:
				summary.WinsB++
			default:
				summary.Draws++
			}
			score := rec.result.scoreA()
			summary.RatingA, summary.RatingB =
				CalculateElo(summary.RatingA, summary.RatingB, score),
				CalculateElo(summary.RatingB, summary.RatingA, 1-score)
			log.Printf("[ARENA] Finished game %d: %v in %d plies (A: %d, B: %d, draws: %d)",
				rec.gameInfo.gameNumber, rec.result, len(rec.moves), summary.WinsA, summary.WinsB, summary.Draws)
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, opts, gameInfos, gameRecords)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameRecords)
		return nil
	})

	if err := g.Wait(); err != nil {
		return summary, err
	}
	summary.Duration = time.Since(start)
	return summary, nil
}

func playGames(ctx context.Context, opts Options, gameInfos <-chan gameInfo, gameRecords chan<- gameRecord) error {
	for info := range gameInfos {
		rec, err := playGame(opts, info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameRecords <- rec:
		}
	}
	return nil
}

func playGame(opts Options, info gameInfo) (gameRecord, error) {
	rng := rand.New(rand.NewSource(opts.Seed + int64(info.gameNumber)))
	depthFirst, depthSecond := opts.DepthA, opts.DepthB
	if !info.engineAIsPlayerA {
		depthFirst, depthSecond = opts.DepthB, opts.DepthA
	}

	winner, moves, err := PlayGame(opts.Rows, opts.Columns, depthFirst, depthSecond, opts.OpeningPlies, rng)
	if err != nil {
		return gameRecord{}, fmt.Errorf("game %d: %w", info.gameNumber, err)
	}

	rec := gameRecord{gameInfo: info, moves: moves, result: ResultDraw}
	switch {
	case winner == domain.Empty:
	case (winner == domain.PlayerA) == info.engineAIsPlayerA:
		rec.result = ResultEngineA
	default:
		rec.result = ResultEngineB
	}
	return rec, nil
}

// PlayGame plays one game: openingPlies random moves, then PlayerA searches
// at depthA and PlayerB at depthB. It returns the winner (Empty for a draw)
// and the columns played.
func PlayGame(rows, cols, depthA, depthB, openingPlies int, rng *rand.Rand) (domain.Piece, []int, error) {
	game, err := domain.NewGame(rows, cols)
	if err != nil {
		return domain.Empty, nil, err
	}
	engineA, err := bot.NewEngine(domain.PlayerA, depthA)
	if err != nil {
		return domain.Empty, nil, err
	}
	engineB, err := bot.NewEngine(domain.PlayerB, depthB)
	if err != nil {
		return domain.Empty, nil, err
	}

	var moves []int
	for !game.IsFinished() {
		var column int
		if len(moves) < openingPlies {
			valid := domain.ValidColumns(game.Board)
			column = valid[rng.Intn(len(valid))]
		} else {
			engine := engineA
			if game.CurrentPlayer == domain.PlayerB {
				engine = engineB
			}
			res, err := engine.ChooseMove(game.Board)
			if err != nil {
				return domain.Empty, moves, err
			}
			if !res.HasMove() {
				break
			}
			column = res.Column
		}
		if _, err := game.MakeMove(game.CurrentPlayer, column); err != nil {
			return domain.Empty, moves, err
		}
		moves = append(moves, column)
	}
	return game.Winner, moves, nil
}

func (o Options) validate() error {
	if o.Games < 0 {
		return fmt.Errorf("arena: negative game count %d", o.Games)
	}
	if o.Concurrency < 1 {
		return fmt.Errorf("arena: concurrency must be positive, got %d", o.Concurrency)
	}
	if o.DepthA < 1 || o.DepthB < 1 {
		return bot.ErrInvalidDepth
	}
	if o.Rows < domain.WinLength || o.Columns < domain.WinLength {
		return domain.ErrBoardTooSmall
	}
	if o.OpeningPlies < 0 {
		return fmt.Errorf("arena: negative opening plies %d", o.OpeningPlies)
	}
	return nil
}
