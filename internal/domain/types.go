package domain

import "strconv"

// Piece is the owner of a board cell. The two players are +1 and -1 so that
// flipping sides is a negation.
type Piece int8

const (
	Empty   Piece = 0
	PlayerA Piece = 1  // human
	PlayerB Piece = -1 // computer
)

// Opponent returns the other player. Empty stays Empty.
func (p Piece) Opponent() Piece {
	return -p
}

func (p Piece) Valid() bool {
	return p == Empty || p == PlayerA || p == PlayerB
}

func (p Piece) String() string {
	switch p {
	case Empty:
		return "empty"
	case PlayerA:
		return "player_a"
	case PlayerB:
		return "player_b"
	default:
		return "piece(" + strconv.Itoa(int(p)) + ")"
	}
}

// Role is the side a piece plays in minimax search.
type Role int

const (
	Maximizer Role = iota
	Minimizer
)

// MaximizingPiece binds the maximizer role to a piece owner. The evaluator
// scores positive for this piece and the search maximizes when it is to move.
const MaximizingPiece = PlayerB

// RoleOf returns the search role of p.
func RoleOf(p Piece) Role {
	if p == MaximizingPiece {
		return Maximizer
	}
	return Minimizer
}

// WinLength is the number of pieces in a line needed to win.
const WinLength = 4

const (
	DefaultRows    = 6
	DefaultColumns = 7
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Outcome is how a finished game ended from the human player's side.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove      Error = "invalid move"
	ErrColumnFull       Error = "column is full"
	ErrColumnEmpty      Error = "column is empty"
	ErrColumnOutOfRange Error = "column out of range"
	ErrBoardTooSmall    Error = "board is smaller than the win length"
	ErrMalformedBoard   Error = "malformed board"
	ErrNotYourTurn      Error = "not your turn"
	ErrGameFinished     Error = "game is finished"
)
