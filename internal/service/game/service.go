package game

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/pkg/uid"
)

// Notifier receives the events of a session. Delivery is fire-and-forget;
// a failed send never changes game state.
type Notifier interface {
	SendMessage(gameID string, message domain.ServerMessage) error
}

// SessionOptions describes a new single-player game.
type SessionOptions struct {
	Rows       int
	Columns    int
	Difficulty bot.BotDifficulty
	Depth      int // overrides the difficulty depth when > 0
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session map[string]*GameSession // gameID → GameSession
	mu      sync.RWMutex

	// AutoReply makes a session answer each human move with a computer
	// move after BotDelay, on its own goroutine.
	AutoReply bool
	BotDelay  time.Duration
}

func NewSessionManager(autoReply bool, botDelay time.Duration) *SessionManager {
	return &SessionManager{
		Session:   make(map[string]*GameSession),
		AutoReply: autoReply,
		BotDelay:  botDelay,
	}
}

func (sm *SessionManager) CreateSession(opts SessionOptions, notifier Notifier) (*GameSession, error) {
	session, err := NewGameSession(opts, notifier, sm.AutoReply, sm.BotDelay)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %dx%d, %s (depth %d)",
		session.GameID, opts.Rows, opts.Columns, session.Difficulty, session.Engine.Depth)

	session.announceStart()
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return fmt.Errorf("session not found")
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	return nil
}

// GameSummary is the listing view of a session.
type GameSummary struct {
	GameID     string            `json:"gameId"`
	Rows       int               `json:"rows"`
	Columns    int               `json:"columns"`
	Difficulty bot.BotDifficulty `json:"difficulty"`
	MoveCount  int               `json:"moveCount"`
	Status     domain.GameStatus `json:"status"`
	StartedAt  time.Time         `json:"startedAt"`
}

// ActiveGames lists every session, oldest first.
func (sm *SessionManager) ActiveGames() []GameSummary {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, s := range sm.Session {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	summaries := make([]GameSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, s.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartedAt.Before(summaries[j].StartedAt)
	})
	return summaries
}

// CleanupOldSessions drops finished sessions older than finishedTTL and
// unfinished ones older than activeTTL. It returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(finishedTTL, activeTTL time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for gameID, session := range sm.Session {
		finished, finishedAt, createdAt := session.times()
		if finished {
			if now.Sub(finishedAt) > finishedTTL {
				delete(sm.Session, gameID)
				count++
			}
		} else if now.Sub(createdAt) > activeTTL {
			delete(sm.Session, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

func NewGameSession(opts SessionOptions, notifier Notifier, autoReply bool, botDelay time.Duration) (*GameSession, error) {
	newGame, err := domain.NewGame(opts.Rows, opts.Columns)
	if err != nil {
		return nil, err
	}

	difficulty := bot.ParseDifficulty(string(opts.Difficulty))
	engine := bot.NewEngineForDifficulty(difficulty)
	if opts.Depth > 0 {
		if engine, err = bot.NewEngine(domain.PlayerB, opts.Depth); err != nil {
			return nil, err
		}
	}

	return &GameSession{
		GameID:     uid.GenerateGameID(),
		Rows:       opts.Rows,
		Columns:    opts.Columns,
		Difficulty: difficulty,
		Game:       newGame,
		Engine:     engine,
		CreatedAt:  time.Now(),
		notifier:   notifier,
		autoReply:  autoReply,
		botDelay:   botDelay,
	}, nil
}
