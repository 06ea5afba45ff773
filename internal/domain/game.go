package domain

// Game is the live state of one match. The human (PlayerA) always moves first.
type Game struct {
	Board         *Board
	CurrentPlayer Piece
	Status        GameStatus
	Winner        Piece
	MoveCount     int
}

func NewGame(rows, cols int) (*Game, error) {
	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Game{
		Board:         board,
		CurrentPlayer: PlayerA,
		Status:        StatusActive,
		Winner:        Empty,
	}, nil
}

// MakeMove drops a piece for player and returns the row it landed on.
func (g *Game) MakeMove(player Piece, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Drop(column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if IsWinner(g.Board, player, WinLength) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if IsFull(g.Board) {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Outcome reports the result from PlayerA's side.
func (g *Game) Outcome() Outcome {
	switch {
	case g.Status == StatusDraw:
		return OutcomeDraw
	case g.Status == StatusWon && g.Winner == PlayerA:
		return OutcomeWin
	case g.Status == StatusWon:
		return OutcomeLose
	default:
		return OutcomeNone
	}
}
