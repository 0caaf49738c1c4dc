// Package board holds the connect-four grid model shared by the engine,
// the arena and the live-game usecase.
package board

import (
	"strings"

	"drop_four/internal/errors"
)

const (
	Rows    = 6
	Cols    = 7
	Connect = 4
)

// Cell values follow the observation encoding: the engine always sees
// itself as Self regardless of which color it plays.
type Cell int8

const (
	Empty    Cell = 0
	Self     Cell = 1
	Opponent Cell = -1
)

// Board is a value type. Row 0 is the top of the grid, row 5 the bottom;
// assigning a Board copies the whole grid, so applied moves never leak
// into sibling search branches.
type Board struct {
	cells [Rows][Cols]Cell
}

// FromCells validates an external observation and builds a Board from it.
func FromCells(cells [][]int) (Board, error) {
	if len(cells) != Rows {
		return Board{}, errors.ErrMalformedBoard
	}
	var b Board
	for r := range cells {
		if len(cells[r]) != Cols {
			return Board{}, errors.ErrMalformedBoard
		}
		for c, v := range cells[r] {
			switch Cell(v) {
			case Empty, Self, Opponent:
				b.cells[r][c] = Cell(v)
			default:
				return Board{}, errors.ErrMalformedBoard
			}
		}
	}
	return b, nil
}

func (b Board) At(row, col int) Cell {
	return b.cells[row][col]
}

func (b *Board) Set(row, col int, v Cell) {
	b.cells[row][col] = v
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// LegalMoves returns the playable columns in ascending order. The order is
// load-bearing: the search breaks score ties in favor of the first column
// it enumerated.
func (b Board) LegalMoves() []int {
	moves := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b.cells[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b Board) Full() bool {
	return len(b.LegalMoves()) == 0
}

// Apply drops a piece for p into col and returns the new board together
// with the row the piece landed in. The receiver is left untouched.
func (b Board) Apply(col int, p Cell) (Board, int, error) {
	if col < 0 || col >= Cols {
		return b, -1, errors.ErrInvalidMove
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][col] == Empty {
			b.cells[row][col] = p
			return b, row, nil
		}
	}
	return b, -1, errors.ErrInvalidMove
}

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// CheckWin reports whether p owns four in a row through the last-moved
// cell. A single move can only create lines that intersect that cell, so
// scanning the four directions around it is enough.
func (b Board) CheckWin(p Cell, lastRow, lastCol int) bool {
	for _, dir := range directions {
		count := 0
		for step := -(Connect - 1); step <= Connect-1; step++ {
			r := lastRow + step*dir[0]
			c := lastCol + step*dir[1]
			if b.InBounds(r, c) && b.cells[r][c] == p {
				count++
				if count == Connect {
					return true
				}
			} else {
				count = 0
			}
		}
	}
	return false
}

// Flip swaps the two owners, giving the same position seen from the other
// side of the table.
func (b Board) Flip() Board {
	var out Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			out.cells[r][c] = -b.cells[r][c]
		}
	}
	return out
}

// Mirror reflects the grid horizontally.
func (b Board) Mirror() Board {
	var out Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			out.cells[r][Cols-1-c] = b.cells[r][c]
		}
	}
	return out
}

// Cells exports the grid in the external observation encoding.
func (b Board) Cells() [][]int {
	out := make([][]int, Rows)
	for r := 0; r < Rows; r++ {
		out[r] = make([]int, Cols)
		for c := 0; c < Cols; c++ {
			out[r][c] = int(b.cells[r][c])
		}
	}
	return out
}

func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			switch b.cells[r][c] {
			case Self:
				sb.WriteString("X")
			case Opponent:
				sb.WriteString("O")
			default:
				sb.WriteString(".")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
