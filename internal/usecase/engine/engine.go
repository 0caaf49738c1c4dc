// Package engine implements the fixed-depth minimax player. It is a pure
// library: the delivery layer, the arena and the cmds all call into it
// with board observations and get columns back.
package engine

import (
	"math"

	"drop_four/internal/domain/board"
	"drop_four/internal/errors"
)

const (
	DefaultDepth  = 4
	DefaultRating = 2000
)

type Config struct {
	Name         string
	Rating       float64
	MaxDepth     int
	UseHeuristic bool
}

// Engine decides moves for the Self side of an observation. One instance
// is safe for concurrent use across independent observations: a call
// carries no state besides its own board copies.
type Engine struct {
	name     string
	rating   float64
	maxDepth int
	eval     Evaluator
}

func New(cfg Config) *Engine {
	if cfg.Name == "" {
		cfg.Name = "MinimaxPlayer"
	}
	if cfg.Rating == 0 {
		cfg.Rating = DefaultRating
	}
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = DefaultDepth
	}
	eval := SimpleEvaluate
	if cfg.UseHeuristic {
		eval = HeuristicEvaluate
	}
	return &Engine{
		name:     cfg.Name,
		rating:   cfg.Rating,
		maxDepth: cfg.MaxDepth,
		eval:     eval,
	}
}

// Decide picks a column for the side to move. A full board is a terminal
// draw and comes back as ErrNoLegalMove, never as an out-of-range column.
func (e *Engine) Decide(b board.Board) (int, error) {
	_, col := search(b, e.maxDepth, true, math.Inf(-1), math.Inf(1), e.eval)
	if col < 0 {
		return -1, errors.ErrNoLegalMove
	}
	return col, nil
}

// DecideBatch dispatches every observation independently and returns the
// chosen columns aligned with the input.
func (e *Engine) DecideBatch(boards []board.Board) ([]int, error) {
	cols := make([]int, len(boards))
	for i, b := range boards {
		col, err := e.Decide(b)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return cols, nil
}

func (e *Engine) Name() string {
	return e.name
}

// Rating is the static strength advertised to rating infrastructure; the
// engine never reads it.
func (e *Engine) Rating() float64 {
	return e.rating
}

// Deterministic is always true: same board, depth and evaluator means the
// same move.
func (e *Engine) Deterministic() bool {
	return true
}
