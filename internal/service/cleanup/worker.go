package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect-four/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	FinishedTTL    time.Duration
	ActiveTTL      time.Duration
}

func NewWorker(sm *game.SessionManager, interval, finishedTTL, activeTTL time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Worker{
		SessionManager: sm,
		Interval:       interval,
		FinishedTTL:    finishedTTL,
		ActiveTTL:      activeTTL,
	}
}

// Start runs a cleanup immediately and then every Interval until ctx is done.
// It returns once the background goroutine is running.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.RunOnce()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.RunOnce()
			}
		}
	}()
	log.Printf("[CLEANUP] Background worker started (every %v)", w.Interval)
}

// RunOnce executes a single cleanup pass and returns how many sessions were
// dropped.
func (w *Worker) RunOnce() int {
	log.Println("[CLEANUP] Starting scheduled cleanup task...")
	return w.SessionManager.CleanupOldSessions(w.FinishedTTL, w.ActiveTTL)
}
