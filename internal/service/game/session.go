package game

import (
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
)

// GameSession is one human (PlayerA) against the computer (PlayerB).
type GameSession struct {
	GameID     string
	Rows       int
	Columns    int
	Difficulty bot.BotDifficulty
	Game       *domain.Game
	Engine     *bot.Engine
	CreatedAt  time.Time
	FinishedAt time.Time

	mu        sync.Mutex
	notifier  Notifier
	autoReply bool
	botDelay  time.Duration
	pending   sync.WaitGroup
}

func (gs *GameSession) send(msg domain.ServerMessage) {
	if gs.notifier == nil {
		return
	}
	msg.GameID = gs.GameID
	if err := gs.notifier.SendMessage(gs.GameID, msg); err != nil {
		log.Printf("[SESSION] Failed to deliver %s for game %s: %v", msg.Type, gs.GameID, err)
	}
}

func (gs *GameSession) announceStart() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.send(domain.ServerMessage{
		Type:        domain.MessageGameStart,
		Rows:        gs.Rows,
		Columns:     gs.Columns,
		Difficulty:  string(gs.Difficulty),
		YourPlayer:  int(domain.PlayerA),
		CurrentTurn: int(gs.Game.CurrentPlayer),
		Board:       gs.Game.Board.Grid(),
	})
}

// HandleMove plays the human's piece in column and returns the row it
// landed on.
func (gs *GameSession) HandleMove(column int) (int, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	row, err := gs.Game.MakeMove(domain.PlayerA, column)
	if err != nil {
		return -1, err
	}
	gs.afterMove(domain.PlayerA, column, row)

	// TRIGGER BOT MOVE if applicable
	if gs.autoReply && !gs.Game.IsFinished() {
		gs.pending.Add(1)
		go func() {
			defer gs.pending.Done()
			time.Sleep(gs.botDelay)
			if _, _, err := gs.HandleBotMove(); err != nil {
				log.Printf("[BOT] Error handling bot move: %v", err)
			}
		}()
	}

	return row, nil
}

// HandleBotMove searches and plays the computer's reply. It returns
// bot.NoMove when it is not the computer's turn.
func (gs *GameSession) HandleBotMove() (int, int, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	// Verify it's actually bot's turn (race condition check)
	if gs.Game.IsFinished() || gs.Game.CurrentPlayer != domain.PlayerB {
		return bot.NoMove, -1, nil
	}

	res, err := gs.Engine.ChooseMove(gs.Game.Board)
	if err != nil {
		return bot.NoMove, -1, err
	}
	if !res.HasMove() {
		// full board; MakeMove normally reports the draw first
		gs.Game.Status = domain.StatusDraw
		gs.finish()
		return bot.NoMove, -1, nil
	}

	row, err := gs.Game.MakeMove(domain.PlayerB, res.Column)
	if err != nil {
		return bot.NoMove, -1, err
	}
	gs.afterMove(domain.PlayerB, res.Column, row)
	return res.Column, row, nil
}

func (gs *GameSession) afterMove(player domain.Piece, column, row int) {
	gs.send(domain.ServerMessage{
		Type:     domain.MessageMoveMade,
		Column:   column,
		Row:      row,
		Player:   int(player),
		Board:    gs.Game.Board.Grid(),
		NextTurn: int(gs.Game.CurrentPlayer),
	})

	if gs.Game.IsFinished() {
		gs.finish()
	}
}

func (gs *GameSession) finish() {
	gs.FinishedAt = time.Now()

	reason := "connect_four"
	if gs.Game.Status == domain.StatusDraw {
		reason = "draw"
	}

	log.Printf("[GAME] Game %s finished: %s after %d moves", gs.GameID, gs.Game.Outcome(), gs.Game.MoveCount)
	gs.send(domain.ServerMessage{
		Type:   domain.MessageGameOver,
		Result: gs.Game.Outcome(),
		Reason: reason,
		Board:  gs.Game.Board.Grid(),
	})
}

// Restart starts a fresh game with the same grid and difficulty.
func (gs *GameSession) Restart() error {
	gs.mu.Lock()
	newGame, err := domain.NewGame(gs.Rows, gs.Columns)
	if err != nil {
		gs.mu.Unlock()
		return err
	}
	gs.Game = newGame
	gs.CreatedAt = time.Now()
	gs.FinishedAt = time.Time{}
	gs.mu.Unlock()

	log.Printf("[SESSION] Restarted game %s", gs.GameID)
	gs.announceStart()
	return nil
}

// Wait blocks until scheduled computer replies have been played.
func (gs *GameSession) Wait() {
	gs.pending.Wait()
}

// Snapshot returns a copy of the board with the game status.
func (gs *GameSession) Snapshot() (*domain.Board, domain.GameStatus, domain.Outcome) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.Board.Clone(), gs.Game.Status, gs.Game.Outcome()
}

func (gs *GameSession) Summary() GameSummary {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return GameSummary{
		GameID:     gs.GameID,
		Rows:       gs.Rows,
		Columns:    gs.Columns,
		Difficulty: gs.Difficulty,
		MoveCount:  gs.Game.MoveCount,
		Status:     gs.Game.Status,
		StartedAt:  gs.CreatedAt,
	}
}

func (gs *GameSession) times() (bool, time.Time, time.Time) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.IsFinished(), gs.FinishedAt, gs.CreatedAt
}
