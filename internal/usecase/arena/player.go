// Package arena hosts the match-running side of the system: a game
// environment, a roster of anchor opponents and an Elo leaderboard.
package arena

import (
	"math/rand"

	"drop_four/internal/domain/board"
	"drop_four/internal/errors"
	"drop_four/internal/usecase/engine"
)

// Player is anything that can pick a column for the Self side of an
// observation. The engine satisfies it; so do the anchor opponents below.
type Player interface {
	Decide(b board.Board) (int, error)
	Name() string
	Rating() float64
	Deterministic() bool
}

// seeded players own a rand.Rand, which is not safe for concurrent use.
// The leaderboard derives a fresh instance per game from it instead of
// sharing one across its workers.
type seeded interface {
	withSeed(seed int64) Player
}

// BabyPlayer plays a uniformly random legal column.
type BabyPlayer struct {
	rng *rand.Rand
}

func NewBabyPlayer(seed int64) *BabyPlayer {
	return &BabyPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *BabyPlayer) Decide(b board.Board) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, errors.ErrNoLegalMove
	}
	return moves[p.rng.Intn(len(moves))], nil
}

func (p *BabyPlayer) Name() string               { return "BabyPlayer" }
func (p *BabyPlayer) Rating() float64            { return 1000 }
func (p *BabyPlayer) Deterministic() bool        { return false }
func (p *BabyPlayer) withSeed(seed int64) Player { return NewBabyPlayer(seed) }

// ChildPlayer takes an immediate win when one exists, otherwise plays
// randomly.
type ChildPlayer struct {
	rng *rand.Rand
}

func NewChildPlayer(seed int64) *ChildPlayer {
	return &ChildPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *ChildPlayer) Decide(b board.Board) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, errors.ErrNoLegalMove
	}
	if col, ok := winningMove(b, board.Self); ok {
		return col, nil
	}
	return moves[p.rng.Intn(len(moves))], nil
}

func (p *ChildPlayer) Name() string               { return "ChildPlayer" }
func (p *ChildPlayer) Rating() float64            { return 1200 }
func (p *ChildPlayer) Deterministic() bool        { return false }
func (p *ChildPlayer) withSeed(seed int64) Player { return NewChildPlayer(seed) }

// TeenagerPlayer wins when it can, blocks the opponent's immediate win
// when it must, and plays randomly otherwise.
type TeenagerPlayer struct {
	rng *rand.Rand
}

func NewTeenagerPlayer(seed int64) *TeenagerPlayer {
	return &TeenagerPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *TeenagerPlayer) Decide(b board.Board) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, errors.ErrNoLegalMove
	}
	if col, ok := winningMove(b, board.Self); ok {
		return col, nil
	}
	if col, ok := winningMove(b, board.Opponent); ok {
		return col, nil
	}
	return moves[p.rng.Intn(len(moves))], nil
}

func (p *TeenagerPlayer) Name() string               { return "TeenagerPlayer" }
func (p *TeenagerPlayer) Rating() float64            { return 1500 }
func (p *TeenagerPlayer) Deterministic() bool        { return false }
func (p *TeenagerPlayer) withSeed(seed int64) Player { return NewTeenagerPlayer(seed) }

// NewAdultPlayer and NewAdultSmarterPlayer are fixed-strength engine
// instances used as rating anchors.
func NewAdultPlayer() Player {
	return engine.New(engine.Config{
		Name:         "AdultPlayer",
		Rating:       1800,
		MaxDepth:     2,
		UseHeuristic: true,
	})
}

func NewAdultSmarterPlayer() Player {
	return engine.New(engine.Config{
		Name:         "AdultSmarterPlayer",
		Rating:       2000,
		MaxDepth:     4,
		UseHeuristic: true,
	})
}

// winningMove scans the legal columns for one that completes four in a
// row for p right now.
func winningMove(b board.Board, p board.Cell) (int, bool) {
	for _, col := range b.LegalMoves() {
		next, row, err := b.Apply(col, p)
		if err != nil {
			continue
		}
		if next.CheckWin(p, row, col) {
			return col, true
		}
	}
	return -1, false
}
