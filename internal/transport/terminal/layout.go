package terminal

// rect is a screen region in cells.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

const (
	wideCell   = 6
	narrowCell = 4
	cellHeight = 2
)

// layout places the board on a w x h screen: a title line, the hover row
// where the next disc waits, the grid, then a status line.
type layout struct {
	screenW, screenH int
	rows, cols       int
	cellW, cellH     int
	left, top        int
	hoverY           int
}

func newLayout(screenW, screenH, rows, cols int) layout {
	cellW := wideCell
	if cols*wideCell+2 > screenW {
		cellW = narrowCell
	}
	l := layout{
		screenW: screenW,
		screenH: screenH,
		rows:    rows,
		cols:    cols,
		cellW:   cellW,
		cellH:   cellHeight,
		hoverY:  1,
	}
	l.top = l.hoverY + l.cellH
	l.left = max(0, (screenW-l.boardWidth())/2)
	return l
}

func (l layout) boardWidth() int  { return l.cols * l.cellW }
func (l layout) boardHeight() int { return l.rows * l.cellH }

// board is the grid area, without the hover row.
func (l layout) board() rect {
	return rect{X: l.left, Y: l.top, W: l.boardWidth(), H: l.boardHeight()}
}

func (l layout) cell(row, col int) rect {
	return rect{X: l.left + col*l.cellW, Y: l.top + row*l.cellH, W: l.cellW, H: l.cellH}
}

// disc is the part of a cell painted with the piece colour.
func (l layout) disc(row, col int) rect {
	c := l.cell(row, col)
	return rect{X: c.X + 1, Y: c.Y, W: c.W - 2, H: c.H}
}

// hoverDisc is where the waiting disc sits above col.
func (l layout) hoverDisc(col int) rect {
	c := l.cell(0, col)
	return rect{X: c.X + 1, Y: l.hoverY, W: c.W - 2, H: l.cellH}
}

// columnAt maps a mouse position over the hover row or the grid to a column.
func (l layout) columnAt(x, y int) (int, bool) {
	if y < l.hoverY || y >= l.top+l.boardHeight() {
		return 0, false
	}
	if x < l.left || x >= l.left+l.boardWidth() {
		return 0, false
	}
	return (x - l.left) / l.cellW, true
}

// rowY is the screen line of the top of row; row -1 is the hover row.
func (l layout) rowY(row int) int {
	return l.top + row*l.cellH
}

func (l layout) statusY() int {
	return min(l.screenH-1, l.top+l.boardHeight()+1)
}

const (
	playAgainLabel = " Play Again "
	quitLabel      = " Quit "
	buttonGap      = 4
)

// overlay is the game-over box with its two buttons.
type overlay struct {
	box, message, playAgain, quit rect
}

func newOverlay(screenW, screenH int) overlay {
	const boxW, boxH = 32, 7
	box := rect{X: max(0, (screenW-boxW)/2), Y: max(0, (screenH-boxH)/2), W: boxW, H: boxH}
	cx := box.X + box.W/2

	total := len(playAgainLabel) + buttonGap + len(quitLabel)
	bx := cx - total/2
	by := box.Y + 4
	return overlay{
		box:       box,
		message:   rect{X: box.X, Y: box.Y + 2, W: box.W, H: 1},
		playAgain: rect{X: bx, Y: by, W: len(playAgainLabel), H: 1},
		quit:      rect{X: bx + len(playAgainLabel) + buttonGap, Y: by, W: len(quitLabel), H: 1},
	}
}

// menuLayout spreads n labels evenly across the screen width.
type menuLayout struct {
	titleY, promptY, optionsY, helpY int
	options                          []rect
}

func newMenuLayout(screenW, screenH int, labels []string) menuLayout {
	titleY := max(0, screenH/4)
	m := menuLayout{
		titleY:   titleY,
		promptY:  titleY + 2,
		optionsY: titleY + 5,
		helpY:    titleY + 9,
		options:  make([]rect, len(labels)),
	}
	for i, label := range labels {
		center := (i + 1) * screenW / (len(labels) + 1)
		w := len([]rune(label))
		m.options[i] = rect{X: center - w/2, Y: m.optionsY, W: w, H: 1}
	}
	return m
}

// optionAt returns the index of the label under (x, y).
func (m menuLayout) optionAt(x, y int) (int, bool) {
	for i, r := range m.options {
		if r.contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// centered returns the x at which text of width w is centred on screen.
func centered(screenW, w int) int {
	return max(0, (screenW-w)/2)
}
