package terminal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/game"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *game.SessionManager) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	sm := game.NewSessionManager(false, 0)
	app := NewApp(screen, sm, Options{
		Grid:       config.GridPreset{Rows: 6, Columns: 7},
		Difficulty: bot.DifficultyMedium,
		Depth:      1,
	})
	return app, screen, sm
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// settle feeds animation ticks until the falling discs have landed and the
// computer has answered.
func settle(t *testing.T, a *App) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		a.HandleEvent(tcell.NewEventInterrupt(tick{}))
		if a.Idle() {
			a.inbox.mu.Lock()
			pending := len(a.inbox.msgs)
			a.inbox.mu.Unlock()
			if pending == 0 {
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("app never settled: stage=%v drop=%v queue=%d thinking=%v", a.stage, a.drop, len(a.queue), a.thinking)
		}
		time.Sleep(time.Millisecond)
	}
}

func startGame(t *testing.T, a *App) {
	t.Helper()
	a.HandleEvent(key(tcell.KeyEnter))
	a.HandleEvent(key(tcell.KeyEnter))
	if a.stage != stagePlaying {
		t.Fatalf("expected to be playing, stage=%v", a.stage)
	}
	settle(t, a)
}

func screenText(screen tcell.SimulationScreen) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for i, c := range cells {
		if i > 0 && i%w == 0 {
			sb.WriteByte('\n')
		}
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func TestMenuSelection(t *testing.T) {
	a, screen, sm := newTestApp(t)

	a.draw()
	if text := screenText(screen); !strings.Contains(text, "Select Grid Size") || !strings.Contains(text, "6×7") {
		t.Fatalf("menu not drawn:\n%s", text)
	}

	a.HandleEvent(key(tcell.KeyLeft))
	if a.gridIdx != len(config.GridPresets)-1 {
		t.Fatalf("left from the first grid should wrap, got %d", a.gridIdx)
	}
	a.HandleEvent(key(tcell.KeyRight))
	a.HandleEvent(key(tcell.KeyRight))
	a.HandleEvent(key(tcell.KeyEnter))
	if a.stage != stageMenuDifficulty {
		t.Fatalf("expected difficulty menu, stage=%v", a.stage)
	}
	a.HandleEvent(key(tcell.KeyRight))
	a.HandleEvent(key(tcell.KeyEnter))

	if a.stage != stagePlaying || a.view.Rows() != 7 || a.view.Cols() != 8 {
		t.Fatalf("expected a 7x8 game, stage=%v", a.stage)
	}
	if a.session.Difficulty != bot.DifficultyHard {
		t.Fatalf("difficulty %q, want hard", a.session.Difficulty)
	}
	if _, ok := sm.GetSession(a.gameID); !ok {
		t.Fatalf("session not registered")
	}
}

func TestMenuMouse(t *testing.T) {
	a, screen, _ := newTestApp(t)
	w, h := screen.Size()

	opts := newMenuLayout(w, h, a.menuLabels()).options
	a.HandleEvent(tcell.NewEventMouse(opts[2].X, opts[2].Y, tcell.Button1, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(opts[2].X, opts[2].Y, tcell.ButtonNone, tcell.ModNone))
	if a.stage != stageMenuDifficulty || a.gridIdx != 2 {
		t.Fatalf("click should pick the 8x9 grid, stage=%v grid=%d", a.stage, a.gridIdx)
	}

	opts = newMenuLayout(w, h, a.menuLabels()).options
	a.HandleEvent(tcell.NewEventMouse(opts[0].X, opts[0].Y, tcell.Button1, tcell.ModNone))
	if a.stage != stagePlaying || a.session.Difficulty != bot.DifficultyEasy {
		t.Fatalf("click should start an easy game, stage=%v", a.stage)
	}
}

func TestHumanMoveAndComputerReply(t *testing.T) {
	a, screen, _ := newTestApp(t)
	startGame(t, a)

	a.HandleEvent(char('4'))
	settle(t, a)

	board, _, _ := a.session.Snapshot()
	if board.Count() != 2 || !board.Equal(a.view) {
		t.Fatalf("view out of sync:\nsession\n%v\nview\n%v", board, a.view)
	}
	if a.view.At(5, 3) != domain.PlayerA {
		t.Fatalf("human disc should sit at the bottom of column 3")
	}
	if a.nextTurn != domain.PlayerA || !a.acceptsInput() {
		t.Fatalf("human should be to move again")
	}

	a.draw()
	w, h := screen.Size()
	l := newLayout(w, h, 6, 7)
	disc := l.disc(5, 3)
	cells, sw, _ := screen.GetContents()
	cell := cells[disc.Y*sw+disc.X]
	fg, _, _ := cell.Style.Decompose()
	if len(cell.Runes) == 0 || cell.Runes[0] != discRune || fg != colorHuman {
		t.Fatalf("human disc not drawn at (%d,%d): %+v", disc.X, disc.Y, cell)
	}
}

func TestMouseDrop(t *testing.T) {
	a, screen, _ := newTestApp(t)
	startGame(t, a)

	w, h := screen.Size()
	hover := newLayout(w, h, 6, 7).hoverDisc(0)
	a.HandleEvent(tcell.NewEventMouse(hover.X, hover.Y, tcell.ButtonNone, tcell.ModNone))
	if a.hoverCol != 0 {
		t.Fatalf("hover should follow the mouse, got %d", a.hoverCol)
	}
	a.HandleEvent(tcell.NewEventMouse(hover.X, hover.Y, tcell.Button1, tcell.ModNone))
	settle(t, a)

	if a.view.At(5, 0) != domain.PlayerA {
		t.Fatalf("click should drop in column 0")
	}
}

func TestInputIgnoredWhileDiscFalls(t *testing.T) {
	a, _, _ := newTestApp(t)
	startGame(t, a)

	a.HandleEvent(char('1'))
	a.HandleEvent(tcell.NewEventInterrupt(wake{}))
	if a.drop == nil {
		t.Fatalf("expected a falling disc")
	}
	a.HandleEvent(char('2'))
	settle(t, a)

	if board, _, _ := a.session.Snapshot(); board.Count() != 2 {
		t.Fatalf("second key press should have been ignored, %d pieces", board.Count())
	}
}

func TestGameOverOverlay(t *testing.T) {
	a, screen, _ := newTestApp(t)
	startGame(t, a)

	_ = a.inbox.SendMessage(a.gameID, domain.ServerMessage{Type: domain.MessageGameOver, GameID: a.gameID, Result: domain.OutcomeLose})
	a.HandleEvent(tcell.NewEventInterrupt(wake{}))
	if a.stage != stageGameOver {
		t.Fatalf("expected game over, stage=%v", a.stage)
	}
	a.draw()
	text := screenText(screen)
	for _, want := range []string{"You lose!", strings.TrimSpace(playAgainLabel), strings.TrimSpace(quitLabel)} {
		if !strings.Contains(text, want) {
			t.Fatalf("overlay missing %q:\n%s", want, text)
		}
	}

	a.HandleEvent(key(tcell.KeyEnter))
	settle(t, a)
	if a.stage != stagePlaying || a.view.Count() != 0 {
		t.Fatalf("play again should reset the board, stage=%v", a.stage)
	}

	_ = a.inbox.SendMessage(a.gameID, domain.ServerMessage{Type: domain.MessageGameOver, GameID: a.gameID, Result: domain.OutcomeWin})
	a.HandleEvent(tcell.NewEventInterrupt(wake{}))
	w, h := screen.Size()
	quit := newOverlay(w, h).quit
	a.HandleEvent(tcell.NewEventMouse(quit.X, quit.Y, tcell.Button1, tcell.ModNone))
	if !a.Quit() {
		t.Fatalf("clicking Quit should end the app")
	}
}

func TestEscapeReturnsToMenu(t *testing.T) {
	a, _, sm := newTestApp(t)
	startGame(t, a)
	gameID := a.gameID

	a.HandleEvent(key(tcell.KeyEscape))
	if a.stage != stageMenuGrid {
		t.Fatalf("escape should show the menu, stage=%v", a.stage)
	}
	if _, ok := sm.GetSession(gameID); ok {
		t.Fatalf("abandoned session still registered")
	}

	// late notifications for the old game are ignored
	_ = a.inbox.SendMessage(gameID, domain.ServerMessage{Type: domain.MessageGameOver, GameID: gameID})
	a.HandleEvent(tcell.NewEventInterrupt(wake{}))
	if a.stage != stageMenuGrid {
		t.Fatalf("stale message changed the stage to %v", a.stage)
	}
}

func TestMoveErrorText(t *testing.T) {
	if got := moveError(domain.ErrColumnFull); got != "That column is full" {
		t.Fatalf("got %q", got)
	}
	if got := moveError(errors.New("boom")); got != "boom" {
		t.Fatalf("got %q", got)
	}
}
