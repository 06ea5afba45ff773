package bot

import (
	"math"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	// NoMove is the column of a result for a position without legal moves.
	NoMove = -1

	// Infinity is the default alpha/beta window bound; evaluations stay far
	// inside it.
	Infinity = 1_000_000_000
)

// Result is the outcome of a search: the score of the position and the
// column that achieves it. Nodes counts the positions visited.
type Result struct {
	Score  int
	Column int
	Nodes  int
}

func (r Result) HasMove() bool {
	return r.Column != NoMove
}

// Search runs depth-limited minimax with alpha-beta pruning for player to
// move. Columns are tried left to right and only a strictly better score
// replaces the current best, so the leftmost of equally scored columns wins.
// The board passed in is never modified.
func Search(board *domain.Board, depth, alpha, beta int, player domain.Piece, winLength int) Result {
	s := &searcher{board: board.Clone(), winLength: winLength}
	score, col := s.alphaBeta(depth, alpha, beta, player)
	return Result{Score: score, Column: col, Nodes: s.nodes}
}

// BestMove searches with the full window.
func BestMove(board *domain.Board, depth int, player domain.Piece) Result {
	return Search(board, depth, -Infinity, Infinity, player, domain.WinLength)
}

// searcher walks the tree on one private board using Drop/Undo.
type searcher struct {
	board     *domain.Board
	winLength int
	nodes     int
}

func (s *searcher) alphaBeta(depth, alpha, beta int, player domain.Piece) (int, int) {
	s.nodes++
	b := s.board

	if depth <= 0 ||
		domain.IsWinner(b, domain.PlayerA, s.winLength) ||
		domain.IsWinner(b, domain.PlayerB, s.winLength) ||
		domain.IsFull(b) {
		return Evaluate(b, s.winLength), NoMove
	}

	bestCol := NoMove
	if domain.RoleOf(player) == domain.Maximizer {
		best := math.MinInt
		for col := 0; col < b.Cols(); col++ {
			if !b.CanPlay(col) {
				continue
			}
			if _, err := b.Drop(col, player); err != nil {
				continue
			}
			score, _ := s.alphaBeta(depth-1, alpha, beta, player.Opponent())
			_ = b.Undo(col)

			if score > best {
				best, bestCol = score, col
			}
			alpha = max(alpha, score)
			if beta <= alpha {
				break // beta cutoff
			}
		}
		return best, bestCol
	}

	best := math.MaxInt
	for col := 0; col < b.Cols(); col++ {
		if !b.CanPlay(col) {
			continue
		}
		if _, err := b.Drop(col, player); err != nil {
			continue
		}
		score, _ := s.alphaBeta(depth-1, alpha, beta, player.Opponent())
		_ = b.Undo(col)

		if score < best {
			best, bestCol = score, col
		}
		beta = min(beta, score)
		if beta <= alpha {
			break // alpha cutoff
		}
	}
	return best, bestCol
}
