package bot

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrSearchInFlight Error = "a search is already running"
	ErrInvalidDepth   Error = "search depth must be positive"
)

// Engine picks moves for one side. It runs at most one search at a time.
type Engine struct {
	Player domain.Piece
	Depth  int

	busy atomic.Bool
}

func NewEngine(player domain.Piece, depth int) (*Engine, error) {
	if depth < 1 {
		return nil, ErrInvalidDepth
	}
	return &Engine{Player: player, Depth: depth}, nil
}

// NewEngineForDifficulty builds the computer opponent for a menu difficulty.
func NewEngineForDifficulty(difficulty BotDifficulty) *Engine {
	return &Engine{Player: domain.PlayerB, Depth: difficulty.Depth()}
}

// ChooseMove searches board for the engine's side. The result has no move
// when the board is full; callers must check HasMove before applying it.
func (e *Engine) ChooseMove(board *domain.Board) (Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Result{Column: NoMove}, ErrSearchInFlight
	}
	defer e.busy.Store(false)

	start := time.Now()
	res := Search(board, e.Depth, -Infinity, Infinity, e.Player, domain.WinLength)
	log.Printf("[BOT] %v depth=%d column=%d score=%d nodes=%d in %v",
		e.Player, e.Depth, res.Column, res.Score, res.Nodes, time.Since(start).Round(time.Microsecond))
	return res, nil
}

// Busy reports whether a search is running.
func (e *Engine) Busy() bool {
	return e.busy.Load()
}
