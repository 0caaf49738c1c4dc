package engine

import (
	"drop_four/internal/domain/board"
)

// Evaluator scores a position from Self's point of view. Higher is better
// for Self. Finite values are heuristic estimates; forced wins are handled
// by the search itself, not the evaluator.
type Evaluator func(b board.Board) float64

const (
	centerCol    = board.Cols / 2
	centerWeight = 4

	lineWinWeight   = 1000
	lineThreeWeight = 15
	lineTwoWeight   = 7
	lineBlockWeight = 20

	forkWeight = 50

	simpleWinWeight = 100
)

var evalDirections = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// SimpleEvaluate only looks one drop ahead: +100 for every column that
// wins outright for Self, -100 for every column whose landing cell would
// win for the opponent on the reply.
func SimpleEvaluate(b board.Board) float64 {
	score := 0.0
	for _, col := range b.LegalMoves() {
		next, row := mustApply(b, col, board.Self)
		if next.CheckWin(board.Self, row, col) {
			score += simpleWinWeight
			continue
		}
		reply, replyRow := mustApply(b, col, board.Opponent)
		if reply.CheckWin(board.Opponent, replyRow, col) {
			score -= simpleWinWeight
		}
	}
	return score
}

// HeuristicEvaluate combines center control, line-pattern scoring around
// every occupied cell and a fork bonus. The fork term re-simulates drops
// for every empty cell; that cost is part of the heuristic's strength and
// stays as is.
func HeuristicEvaluate(b board.Board) float64 {
	score := 0.0

	for row := 0; row < board.Rows; row++ {
		if b.At(row, centerCol) == board.Self {
			score += centerWeight
		}
	}

	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			if b.At(row, col) == board.Empty {
				continue
			}
			score += scorePosition(b, row, col, board.Self)
			score -= scorePosition(b, row, col, board.Opponent)
		}
	}

	score += detectForks(b, board.Self)
	score -= detectForks(b, board.Opponent)

	return score
}

// scorePosition extracts, per direction, the 7-cell window centered on
// (row,col) and tallies every 4-cell slice of it.
func scorePosition(b board.Board, row, col int, p board.Cell) float64 {
	const window = 2*board.Connect - 1

	score := 0.0
	for _, dir := range evalDirections {
		var line [window]board.Cell
		var inside [window]bool
		for i := 0; i < window; i++ {
			step := i - (board.Connect - 1)
			r := row + step*dir[0]
			c := col + step*dir[1]
			if b.InBounds(r, c) {
				line[i] = b.At(r, c)
				inside[i] = true
			}
		}
		for start := 0; start+board.Connect <= window; start++ {
			mine, theirs, open := 0, 0, 0
			for i := start; i < start+board.Connect; i++ {
				if !inside[i] {
					continue
				}
				switch line[i] {
				case p:
					mine++
				case -p:
					theirs++
				case board.Empty:
					open++
				}
			}
			switch {
			case mine == 4:
				score += lineWinWeight
			case mine == 3 && open == 1:
				score += lineThreeWeight
			case mine == 2 && open == 2:
				score += lineTwoWeight
			case theirs == 3 && open == 1:
				score -= lineBlockWeight
			}
		}
	}
	return score
}

// detectForks awards a bonus for every empty cell whose column, once
// played by p, leaves more than one immediately winning follow-up column.
// The opponent can only block one of them.
func detectForks(b board.Board, p board.Cell) float64 {
	score := 0.0
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			if b.At(row, col) != board.Empty {
				continue
			}
			sim, _ := mustApply(b, col, p)
			winning := 0
			for _, next := range sim.LegalMoves() {
				after, landed := mustApply(sim, next, p)
				if after.CheckWin(p, landed, next) {
					winning++
				}
			}
			if winning > 1 {
				score += forkWeight
			}
		}
	}
	return score
}

// mustApply is for columns already known to be playable; a full column
// here is a broken invariant, not a runtime condition.
func mustApply(b board.Board, col int, p board.Cell) (board.Board, int) {
	next, row, err := b.Apply(col, p)
	if err != nil {
		panic("engine: apply on full column " + string(rune('0'+col)))
	}
	return next, row
}
