package arena

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	eloK       = 32.0
	eloInitial = 1500.0
)

// RatingEntry is what gets persisted after a rating run.
type RatingEntry struct {
	Player        string    `json:"player" bson:"player"`
	Rating        float64   `json:"rating" bson:"rating"`
	Games         int       `json:"games" bson:"games"`
	Deterministic bool      `json:"deterministic" bson:"deterministic"`
	RatedAt       time.Time `json:"rated_at" bson:"rated_at"`
}

// RatingStore persists leaderboard results.
type RatingStore interface {
	SaveRating(ctx context.Context, entry RatingEntry) error
}

// Leaderboard estimates a player's Elo by running matches against a set
// of anchors with known ratings. Matches may run in parallel; every game
// gets its own seeded player instances and the rating walk is folded in a
// fixed (anchor, game) order, so the estimate does not depend on
// scheduling.
type Leaderboard struct {
	log     *zap.SugaredLogger
	store   RatingStore
	anchors []Player
	matches int
	workers int
	seed    int64
}

type LeaderboardConfig struct {
	Matches  int
	Parallel int
	Seed     int64
	Store    RatingStore // optional
	Anchors  []Player    // defaults to the standard roster
}

func NewLeaderboard(log *zap.SugaredLogger, cfg LeaderboardConfig) *Leaderboard {
	if cfg.Matches < 1 {
		cfg.Matches = 10
	}
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	anchors := cfg.Anchors
	if len(anchors) == 0 {
		anchors = []Player{
			NewBabyPlayer(cfg.Seed + 1),
			NewChildPlayer(cfg.Seed + 2),
			NewTeenagerPlayer(cfg.Seed + 3),
			NewAdultPlayer(),
			NewAdultSmarterPlayer(),
		}
	}
	return &Leaderboard{
		log:     log,
		store:   cfg.Store,
		anchors: anchors,
		matches: cfg.Matches,
		workers: cfg.Parallel,
		seed:    cfg.Seed,
	}
}

type matchJob struct {
	anchor int
	game   int
}

// GetElo plays l.matches games against every anchor, colors alternating,
// and folds the results into a K=32 Elo walk starting from 1500.
func (l *Leaderboard) GetElo(ctx context.Context, p Player) (float64, error) {
	scores := make([][]float64, len(l.anchors))
	for i := range scores {
		scores[i] = make([]float64, l.matches)
	}

	jobs := make(chan matchJob)
	errOnce := sync.Once{}
	var firstErr error

	var wg sync.WaitGroup
	for w := 0; w < l.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				anchor := l.anchors[job.anchor]
				seed := l.seed + int64(job.anchor*l.matches+job.game)
				score, err := l.playGame(p, anchor, job.game%2 == 1, seed)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				scores[job.anchor][job.game] = score
			}
		}()
	}

	for a := range l.anchors {
		for g := 0; g < l.matches; g++ {
			jobs <- matchJob{anchor: a, game: g}
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return 0, fmt.Errorf("rating run: %w", firstErr)
	}

	rating := eloInitial
	for a, anchor := range l.anchors {
		for g := 0; g < l.matches; g++ {
			expected := 1.0 / (1.0 + math.Pow(10, (anchor.Rating()-rating)/400.0))
			rating += eloK * (scores[a][g] - expected)
		}
		l.log.Infow("rated against anchor",
			"player", p.Name(),
			"anchor", anchor.Name(),
			"rating", rating,
		)
	}

	if l.store != nil {
		entry := RatingEntry{
			Player:        p.Name(),
			Rating:        rating,
			Games:         len(l.anchors) * l.matches,
			Deterministic: p.Deterministic(),
			RatedAt:       time.Now(),
		}
		if err := l.store.SaveRating(ctx, entry); err != nil {
			return rating, fmt.Errorf("save rating: %w", err)
		}
	}

	return rating, nil
}

// playGame runs one game of p against anchor and maps the final reward to
// a match score: 1 win, 0.5 draw, 0 loss. Stochastic players are replaced
// by fresh instances seeded from the game index, so concurrent games never
// share a rand.Rand and the outcome is fixed by (anchor, game) alone.
func (l *Leaderboard) playGame(p Player, anchor Player, anchorStarts bool, seed int64) (float64, error) {
	if s, ok := anchor.(seeded); ok {
		anchor = s.withSeed(2 * seed)
	}
	if s, ok := p.(seeded); ok {
		p = s.withSeed(2*seed + 1)
	}
	env := NewEnv(anchor, seed)
	obs, err := env.ResetStarting(anchorStarts)
	if err != nil {
		return 0, err
	}
	for {
		col, err := p.Decide(obs)
		if err != nil {
			return 0, err
		}
		next, reward, done, err := env.Step(col)
		if err != nil {
			return 0, err
		}
		if done {
			return (reward + 1.0) / 2.0, nil
		}
		obs = next
	}
}
