package engine

import (
	"math"

	"drop_four/internal/domain/board"
)

// search walks the game tree depth-first with alpha-beta pruning and
// returns the best score plus the column achieving it. Columns are tried
// in ascending order and only a strictly better score replaces the best
// move, so ties go to the lowest column. Both sides short-circuit on an
// immediate win: a forced win cannot be improved by searching deeper.
func search(b board.Board, depth int, maximizing bool, alpha, beta float64, eval Evaluator) (float64, int) {
	moves := b.LegalMoves()
	if depth == 0 || len(moves) == 0 {
		first := -1
		if len(moves) > 0 {
			first = moves[0]
		}
		return eval(b), first
	}

	if maximizing {
		bestScore := math.Inf(-1)
		bestMove := -1
		for _, col := range moves {
			next, row := mustApply(b, col, board.Self)
			if next.CheckWin(board.Self, row, col) {
				return math.Inf(1), col
			}
			score, _ := search(next, depth-1, false, alpha, beta, eval)
			if score > bestScore {
				bestScore = score
				bestMove = col
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		if bestMove == -1 {
			bestMove = moves[0]
		}
		return bestScore, bestMove
	}

	bestScore := math.Inf(1)
	bestMove := -1
	for _, col := range moves {
		next, row := mustApply(b, col, board.Opponent)
		if next.CheckWin(board.Opponent, row, col) {
			return math.Inf(-1), col
		}
		score, _ := search(next, depth-1, true, alpha, beta, eval)
		if score < bestScore {
			bestScore = score
			bestMove = col
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	if bestMove == -1 {
		bestMove = moves[0]
	}
	return bestScore, bestMove
}
