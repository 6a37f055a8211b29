package bot

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
	"github.com/rocketscienceinc/tictactoe-variants/internal/tictactoe"
)

// mediumOptimalRate is the share of medium-tier moves that come from the full search.
const mediumOptimalRate = 0.6

// SearchRecorder receives statistics of every full search.
type SearchRecorder interface {
	ObserveSearch(variant entity.Variant, difficulty entity.Difficulty, duration time.Duration, nodes int)
}

// Option configures an Opponent.
type Option func(opponent *Opponent)

// WithMark - the mark the bot plays and maximizes for. Defaults to O.
func WithMark(mark entity.Mark) Option {
	return func(opponent *Opponent) {
		if mark.IsPlayer() {
			opponent.mark = mark
		}
	}
}

// WithThinkingDelay - waits base plus a random share of jitter before answering.
func WithThinkingDelay(base, jitter time.Duration) Option {
	return func(opponent *Opponent) {
		opponent.thinkDelay = base
		opponent.thinkJitter = jitter
	}
}

// WithSeed - makes the easy and medium tiers reproducible.
func WithSeed(seed uint64) Option {
	return func(opponent *Opponent) {
		opponent.rnd = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(opponent *Opponent) {
		opponent.logger = logger
	}
}

func WithRecorder(recorder SearchRecorder) Option {
	return func(opponent *Opponent) {
		opponent.recorder = recorder
	}
}

// Opponent picks moves for one side of a game. It is not safe for concurrent use.
type Opponent struct {
	difficulty entity.Difficulty
	variant    entity.Variant
	mark       entity.Mark

	rnd *rand.Rand
	// jitter draws come from their own source so the delay never shifts move choices
	jitterRnd *rand.Rand

	thinkDelay  time.Duration
	thinkJitter time.Duration

	logger   *slog.Logger
	recorder SearchRecorder
}

func New(difficulty entity.Difficulty, variant entity.Variant, options ...Option) *Opponent {
	seed := uint64(time.Now().UnixNano())

	opponent := &Opponent{
		difficulty: difficulty,
		variant:    variant,
		mark:       entity.PlayerO,
		rnd:        rand.New(rand.NewSource(seed)),
		jitterRnd:  rand.New(rand.NewSource(seed ^ 0x9e3779b97f4a7c15)),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(opponent)
	}

	return opponent
}

func (that *Opponent) Difficulty() entity.Difficulty {
	return that.difficulty
}

func (that *Opponent) Variant() entity.Variant {
	return that.variant
}

func (that *Opponent) Mark() entity.Mark {
	return that.mark
}

// GetMove - picks a move for the game without touching it. ok is false when no legal move exists.
func (that *Opponent) GetMove(ctx context.Context, game *tictactoe.Game) (entity.Move, bool) {
	that.think(ctx)

	switch that.difficulty {
	case entity.MediumDifficulty:
		return that.mediumMove(game)
	case entity.HardDifficulty:
		return that.optimalMove(game)
	default:
		return that.randomMove(game)
	}
}

func (that *Opponent) randomMove(game *tictactoe.Game) (entity.Move, bool) {
	moves := game.ValidMoves()
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	return moves[that.rnd.Intn(len(moves))], true
}

func (that *Opponent) mediumMove(game *tictactoe.Game) (entity.Move, bool) {
	if that.rnd.Float64() < mediumOptimalRate {
		return that.optimalMove(game)
	}

	return that.randomMove(game)
}

func (that *Opponent) optimalMove(game *tictactoe.Game) (entity.Move, bool) {
	log := that.logger.With("method", "optimalMove", "variant", that.variant, "difficulty", that.difficulty)

	started := time.Now()
	s := newSearch(that.mark, that.variant, game)

	move, score, ok := s.bestMove(game)

	elapsed := time.Since(started)
	if that.recorder != nil {
		that.recorder.ObserveSearch(that.variant, that.difficulty, elapsed, s.nodes)
	}

	if !ok {
		log.Debug("no legal moves")
		return entity.Move{}, false
	}

	log.Debug("search finished", "move", move, "score", score, "nodes", s.nodes, "duration", elapsed)

	return move, true
}

// think - the cosmetic pause before answering. It returns early when ctx is done.
func (that *Opponent) think(ctx context.Context) {
	delay := that.thinkDelay
	if that.thinkJitter > 0 {
		delay += time.Duration(that.jitterRnd.Int63n(int64(that.thinkJitter)))
	}

	if delay <= 0 {
		return
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
