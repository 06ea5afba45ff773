package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
)

var (
	colorBackground = tcell.NewRGBColor(0, 0, 30)
	colorText       = tcell.NewRGBColor(240, 240, 240)
	colorHighlight  = tcell.NewRGBColor(255, 215, 0)
	colorBoard      = tcell.NewRGBColor(0, 100, 200)
	colorHuman      = tcell.NewRGBColor(200, 50, 50)
	colorComputer   = tcell.NewRGBColor(200, 200, 50)
	colorButton     = tcell.NewRGBColor(50, 50, 100)
	colorButtonOver = tcell.NewRGBColor(80, 80, 140)
	colorOverlay    = tcell.NewRGBColor(10, 10, 20)
)

const (
	discRune  = '█'
	hoverRune = '▒'
)

var (
	styleBase      = tcell.StyleDefault.Background(colorBackground).Foreground(colorText)
	styleTitle     = styleBase.Foreground(colorHighlight).Bold(true)
	styleHighlight = styleBase.Foreground(colorHighlight).Bold(true)
)

func pieceColor(p domain.Piece) tcell.Color {
	if p == domain.PlayerA {
		return colorHuman
	}
	return colorComputer
}

func (a *App) draw() {
	a.screen.SetStyle(styleBase)
	a.screen.Clear()

	switch a.stage {
	case stageMenuGrid, stageMenuDifficulty:
		a.drawMenu()
	case stagePlaying:
		a.drawGame()
	case stageGameOver:
		a.drawGame()
		a.drawOverlay()
	}
	a.screen.Show()
}

func (a *App) drawMenu() {
	w, h := a.screen.Size()
	m := newMenuLayout(w, h, a.menuLabels())

	drawCentered(a.screen, w, m.titleY, styleTitle, "Connect Four")
	prompt := "Select Grid Size"
	current := a.gridIdx
	if a.stage == stageMenuDifficulty {
		prompt = "Select Difficulty"
		current = a.diffIdx
	}
	drawCentered(a.screen, w, m.promptY, styleBase, prompt)

	for i, label := range a.menuLabels() {
		style := styleBase
		if i == current {
			style = styleHighlight
		}
		drawText(a.screen, m.options[i].X, m.options[i].Y, style, label)
	}
	drawCentered(a.screen, w, m.helpY, styleBase, "←/→ to change, ENTER to confirm")
	if a.status != "" {
		drawCentered(a.screen, w, m.helpY+2, styleBase.Foreground(colorHuman), a.status)
	}
}

func (a *App) drawGame() {
	w, h := a.screen.Size()
	l := newLayout(w, h, a.view.Rows(), a.view.Cols())

	title := fmt.Sprintf("Connect Four  %d×%d  %s", a.view.Rows(), a.view.Cols(), a.difficultyLabel())
	drawCentered(a.screen, w, 0, styleTitle, title)

	if a.acceptsInput() {
		fill(a.screen, l.hoverDisc(a.hoverCol), hoverRune, styleBase.Foreground(colorHuman))
	}

	for r := 0; r < a.view.Rows(); r++ {
		for c := 0; c < a.view.Cols(); c++ {
			fill(a.screen, l.cell(r, c), ' ', styleBase.Background(colorBoard))
			discStyle := styleBase.Background(colorBoard).Foreground(colorText)
			if p := a.view.At(r, c); p != domain.Empty {
				discStyle = discStyle.Foreground(pieceColor(p))
			}
			fill(a.screen, l.disc(r, c), discRune, discStyle)
		}
	}

	if d := a.drop; d != nil {
		disc := l.hoverDisc(d.col)
		disc.Y = d.y
		fill(a.screen, disc, discRune, styleBase.Foreground(pieceColor(d.player)))
	}

	drawCentered(a.screen, w, l.statusY(), styleBase, a.statusLine())
}

func (a *App) difficultyLabel() string {
	if a.opts.Depth > 0 {
		return fmt.Sprintf("depth %d", a.opts.Depth)
	}
	return bot.Difficulties[a.diffIdx].Label()
}

func (a *App) statusLine() string {
	switch {
	case a.status != "":
		return a.status
	case a.stage == stageGameOver:
		return ""
	case a.thinking:
		return "Computer is thinking..."
	case a.acceptsInput():
		return "Your move: ←/→ and ENTER, or click a column. ESC for menu"
	default:
		return ""
	}
}

func outcomeText(o domain.Outcome) string {
	switch o {
	case domain.OutcomeWin:
		return "You win!"
	case domain.OutcomeLose:
		return "You lose!"
	default:
		return "Draw!"
	}
}

func (a *App) drawOverlay() {
	w, h := a.screen.Size()
	o := newOverlay(w, h)

	box := styleBase.Background(colorOverlay)
	fill(a.screen, o.box, ' ', box)
	drawCentered(a.screen, w, o.message.Y, box.Foreground(colorHighlight).Bold(true), outcomeText(a.outcome))

	for i, b := range []struct {
		r     rect
		label string
	}{{o.playAgain, playAgainLabel}, {o.quit, quitLabel}} {
		style := box.Background(colorButton).Bold(true)
		if i == a.selected {
			style = style.Background(colorButtonOver)
		}
		drawText(a.screen, b.r.X, b.r.Y, style, b.label)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCentered(s tcell.Screen, screenW, y int, style tcell.Style, text string) {
	drawText(s, centered(screenW, len([]rune(text))), y, style, text)
}

func fill(s tcell.Screen, r rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ch, nil, style)
		}
	}
}
