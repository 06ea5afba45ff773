// Package terminal is the full-screen front end: a setup menu, the board with
// falling discs and a game-over screen, drawn with tcell.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type stage int

const (
	stageMenuGrid stage = iota
	stageMenuDifficulty
	stagePlaying
	stageGameOver
)

type Options struct {
	Grid       config.GridPreset
	Difficulty bot.BotDifficulty
	Depth      int           // overrides the difficulty depth when > 0
	BotDelay   time.Duration // pause before the computer replies
	FrameRate  time.Duration // animation step
}

// tick advances the drop animation by one line.
type tick struct{}

// wake tells the loop that notifications are waiting.
type wake struct{}

type stop struct{}

// inbox collects session notifications from any goroutine until the event
// loop drains them.
type inbox struct {
	mu     sync.Mutex
	msgs   []domain.ServerMessage
	notify func()
}

func (in *inbox) SendMessage(gameID string, message domain.ServerMessage) error {
	in.mu.Lock()
	in.msgs = append(in.msgs, message)
	in.mu.Unlock()
	if in.notify != nil {
		in.notify()
	}
	return nil
}

func (in *inbox) drain() []domain.ServerMessage {
	in.mu.Lock()
	defer in.mu.Unlock()
	msgs := in.msgs
	in.msgs = nil
	return msgs
}

type dropAnim struct {
	col, row int
	player   domain.Piece
	y        int
}

// App runs one human against the computer until the user quits.
type App struct {
	screen   tcell.Screen
	sessions *game.SessionManager
	opts     Options

	stage   stage
	gridIdx int
	diffIdx int

	session    *game.GameSession
	gameID     string
	view       *domain.Board // what is on screen; lags the session while discs fall
	nextTurn   domain.Piece
	queue      []domain.ServerMessage
	drop       *dropAnim
	thinking   bool
	outcome    domain.Outcome
	status     string
	hoverCol   int
	mouseX     int
	mouseY     int
	buttonDown bool
	selected   int // overlay button: 0 play again, 1 quit

	inbox     *inbox
	animating atomic.Bool
	quit      bool
}

func NewApp(screen tcell.Screen, sessions *game.SessionManager, opts Options) *App {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 15 * time.Millisecond
	}
	a := &App{
		screen:   screen,
		sessions: sessions,
		opts:     opts,
		diffIdx:  1,
		mouseX:   -1,
		mouseY:   -1,
	}
	for i, g := range config.GridPresets {
		if g == opts.Grid {
			a.gridIdx = i
		}
	}
	for i, d := range bot.Difficulties {
		if d == opts.Difficulty {
			a.diffIdx = i
		}
	}
	a.inbox = &inbox{notify: func() { a.post(wake{}) }}
	return a
}

func (a *App) post(data any) {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(data)); err != nil && data != (wake{}) {
		log.Printf("[UI] Dropped event %T: %v", data, err)
	}
}

// Run draws and handles events until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(a.opts.FrameRate)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				a.post(stop{})
				return
			case <-ticker.C:
				if a.animating.Load() {
					a.post(tick{})
				}
			}
		}
	}()

	a.draw()
	for !a.quit {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.HandleEvent(ev)
		a.draw()
	}
	a.endGame()
	return nil
}

// HandleEvent applies one tcell event to the app state.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		switch ev.Data().(type) {
		case tick:
			a.advance()
		case stop:
			a.quit = true
		}
		a.receive()
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		a.quit = true
		return
	}

	switch a.stage {
	case stageMenuGrid, stageMenuDifficulty:
		switch ev.Key() {
		case tcell.KeyLeft:
			a.moveMenu(-1)
		case tcell.KeyRight:
			a.moveMenu(1)
		case tcell.KeyEnter:
			a.confirmMenu()
		case tcell.KeyEscape:
			a.quit = true
		}

	case stagePlaying:
		switch ev.Key() {
		case tcell.KeyEscape:
			a.toMenu()
		case tcell.KeyLeft:
			a.hoverCol = max(0, a.hoverCol-1)
		case tcell.KeyRight:
			a.hoverCol = min(a.view.Cols()-1, a.hoverCol+1)
		case tcell.KeyEnter:
			a.play(a.hoverCol)
		case tcell.KeyRune:
			switch r := ev.Rune(); {
			case r == ' ':
				a.play(a.hoverCol)
			case r >= '1' && r <= '9':
				if col := int(r - '1'); col < a.view.Cols() {
					a.hoverCol = col
					a.play(col)
				}
			}
		}

	case stageGameOver:
		switch ev.Key() {
		case tcell.KeyEscape:
			a.toMenu()
		case tcell.KeyLeft, tcell.KeyRight, tcell.KeyTab:
			a.selected = 1 - a.selected
		case tcell.KeyEnter:
			a.pressButton(a.selected)
		}
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	a.mouseX, a.mouseY = ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	clicked := pressed && !a.buttonDown
	a.buttonDown = pressed

	w, h := a.screen.Size()
	switch a.stage {
	case stageMenuGrid, stageMenuDifficulty:
		if !clicked {
			return
		}
		if i, ok := newMenuLayout(w, h, a.menuLabels()).optionAt(a.mouseX, a.mouseY); ok {
			a.setMenuIndex(i)
			a.confirmMenu()
		}

	case stagePlaying:
		col, ok := newLayout(w, h, a.view.Rows(), a.view.Cols()).columnAt(a.mouseX, a.mouseY)
		if !ok {
			return
		}
		a.hoverCol = col
		if clicked {
			a.play(col)
		}

	case stageGameOver:
		o := newOverlay(w, h)
		switch {
		case o.playAgain.contains(a.mouseX, a.mouseY):
			a.selected = 0
		case o.quit.contains(a.mouseX, a.mouseY):
			a.selected = 1
		default:
			return
		}
		if clicked {
			a.pressButton(a.selected)
		}
	}
}

func (a *App) menuLabels() []string {
	if a.stage == stageMenuGrid {
		labels := make([]string, len(config.GridPresets))
		for i, g := range config.GridPresets {
			labels[i] = fmt.Sprintf("%d×%d", g.Rows, g.Columns)
		}
		return labels
	}
	labels := make([]string, len(bot.Difficulties))
	for i, d := range bot.Difficulties {
		labels[i] = d.Label()
	}
	return labels
}

func (a *App) moveMenu(delta int) {
	n := len(a.menuLabels())
	if a.stage == stageMenuGrid {
		a.gridIdx = (a.gridIdx + delta + n) % n
	} else {
		a.diffIdx = (a.diffIdx + delta + n) % n
	}
}

func (a *App) setMenuIndex(i int) {
	if a.stage == stageMenuGrid {
		a.gridIdx = i
	} else {
		a.diffIdx = i
	}
}

func (a *App) confirmMenu() {
	if a.stage == stageMenuGrid {
		a.stage = stageMenuDifficulty
		return
	}
	a.startGame()
}

func (a *App) startGame() {
	grid := config.GridPresets[a.gridIdx]
	session, err := a.sessions.CreateSession(game.SessionOptions{
		Rows:       grid.Rows,
		Columns:    grid.Columns,
		Difficulty: bot.Difficulties[a.diffIdx],
		Depth:      a.opts.Depth,
	}, a.inbox)
	if err != nil {
		a.status = err.Error()
		a.stage = stageMenuGrid
		return
	}

	a.session = session
	a.gameID = session.GameID
	a.view, _ = domain.NewBoard(grid.Rows, grid.Columns)
	a.nextTurn = domain.PlayerA
	a.queue = nil
	a.setDrop(nil)
	a.thinking = false
	a.outcome = domain.OutcomeNone
	a.status = ""
	a.hoverCol = grid.Columns / 2
	a.stage = stagePlaying
	_ = a.screen.Beep()
}

// toMenu abandons the current game and shows the setup menu again.
func (a *App) toMenu() {
	a.endGame()
	a.stage = stageMenuGrid
	a.status = ""
}

func (a *App) endGame() {
	if a.gameID == "" {
		return
	}
	if err := a.sessions.RemoveSession(a.gameID); err != nil {
		log.Printf("[UI] %v", err)
	}
	a.session = nil
	a.gameID = ""
	a.queue = nil
	a.setDrop(nil)
	a.thinking = false
}

func (a *App) pressButton(i int) {
	if i == 1 {
		a.quit = true
		return
	}
	if err := a.session.Restart(); err != nil {
		a.status = err.Error()
	}
}

// acceptsInput reports whether the human may drop a disc now.
func (a *App) acceptsInput() bool {
	return a.stage == stagePlaying && a.session != nil && !a.thinking &&
		a.drop == nil && len(a.queue) == 0 && a.nextTurn == domain.PlayerA
}

func (a *App) play(col int) {
	if !a.acceptsInput() {
		return
	}
	if _, err := a.session.HandleMove(col); err != nil {
		a.status = moveError(err)
		return
	}
	a.status = ""
}

func moveError(err error) string {
	switch {
	case errors.Is(err, domain.ErrColumnFull):
		return "That column is full"
	case errors.Is(err, domain.ErrColumnOutOfRange):
		return "No such column"
	default:
		return err.Error()
	}
}

// receive moves notifications for the current game into the queue and
// starts on the next one if nothing is animating.
func (a *App) receive() {
	for _, msg := range a.inbox.drain() {
		if msg.GameID != a.gameID || a.gameID == "" {
			continue
		}
		a.queue = append(a.queue, msg)
	}
	a.process()
}

func (a *App) process() {
	for a.drop == nil && len(a.queue) > 0 {
		msg := a.queue[0]
		a.queue = a.queue[1:]

		switch msg.Type {
		case domain.MessageGameStart:
			if board, err := domain.BoardFromInts(msg.Board); err == nil {
				a.view = board
			}
			a.nextTurn = domain.Piece(msg.CurrentTurn)
			a.outcome = domain.OutcomeNone
			a.thinking = false
			a.selected = 0
			a.status = ""
			a.stage = stagePlaying

		case domain.MessageMoveMade:
			if domain.Piece(msg.Player) == domain.PlayerB {
				a.thinking = false
			}
			a.nextTurn = domain.Piece(msg.NextTurn)
			a.setDrop(&dropAnim{col: msg.Column, row: msg.Row, player: domain.Piece(msg.Player), y: a.hoverY()})

		case domain.MessageGameOver:
			a.outcome = msg.Result
			a.nextTurn = domain.Empty
			a.stage = stageGameOver
			_ = a.screen.Beep()

		case domain.MessageError:
			a.thinking = false
			a.status = msg.Message
		}
	}
	a.maybeReply()
}

// maybeReply starts the computer's search once the screen has caught up.
func (a *App) maybeReply() {
	if a.stage != stagePlaying || a.thinking || a.drop != nil || len(a.queue) > 0 || a.nextTurn != domain.PlayerB {
		return
	}
	a.thinking = true
	session, delay := a.session, a.opts.BotDelay
	go func() {
		time.Sleep(delay)
		if _, _, err := session.HandleBotMove(); err != nil {
			log.Printf("[BOT] Error handling bot move: %v", err)
			_ = a.inbox.SendMessage(session.GameID, domain.ServerMessage{
				Type: domain.MessageError, GameID: session.GameID, Message: err.Error(),
			})
		}
	}()
}

func (a *App) hoverY() int {
	w, h := a.screen.Size()
	return newLayout(w, h, a.view.Rows(), a.view.Cols()).hoverY
}

func (a *App) setDrop(d *dropAnim) {
	a.drop = d
	a.animating.Store(d != nil)
}

// advance moves the falling disc one line and lands it on the last step.
func (a *App) advance() {
	if a.drop == nil {
		return
	}
	w, h := a.screen.Size()
	l := newLayout(w, h, a.view.Rows(), a.view.Cols())
	a.drop.y++
	if a.drop.y < l.rowY(a.drop.row) {
		return
	}
	if _, err := a.view.Drop(a.drop.col, a.drop.player); err != nil {
		log.Printf("[UI] View out of sync at column %d: %v", a.drop.col, err)
	}
	a.setDrop(nil)
	_ = a.screen.Beep()
	a.process()
}

// Idle reports whether nothing is falling, queued or being searched.
func (a *App) Idle() bool {
	return a.drop == nil && len(a.queue) == 0 && !a.thinking
}

func (a *App) Quit() bool {
	return a.quit
}
