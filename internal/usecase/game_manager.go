package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-variants/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-variants/internal/bot"
	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
	"github.com/rocketscienceinc/tictactoe-variants/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-variants/internal/repository"
	"github.com/rocketscienceinc/tictactoe-variants/internal/tictactoe"
)

type statsRepo interface {
	CreateOrUpdate(ctx context.Context, stats *entity.Stats) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error)
	DeleteByPlayerID(ctx context.Context, playerID string) error
}

type gameMetrics interface {
	ObserveMove(variant entity.Variant, actor string)
	ObserveGameFinished(variant entity.Variant, outcome string)
	bot.SearchRecorder
}

// Settings - defaults applied to every new session.
type Settings struct {
	DefaultVariant    entity.Variant
	DefaultDifficulty entity.Difficulty
	ThinkDelay        time.Duration
	ThinkJitter       time.Duration
	SessionTTL        time.Duration
	// BotOptions are appended to the options of every session's bot.
	BotOptions []bot.Option
}

type session struct {
	mu sync.Mutex

	id       string
	playerID string
	game     *tictactoe.Game
	opponent *bot.Opponent
	human    entity.Mark

	startedAt  time.Time
	lastActive time.Time
	recorded   bool
}

// GameManager keeps the live human-versus-bot sessions. Sessions live in memory only.
type GameManager struct {
	logger    *slog.Logger
	statsRepo statsRepo
	metrics   gameMetrics
	settings  Settings
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, statsRepo statsRepo, observer gameMetrics, settings Settings) *GameManager {
	if settings.DefaultVariant == "" {
		settings.DefaultVariant = entity.StandardVariant
	}

	if settings.DefaultDifficulty == "" {
		settings.DefaultDifficulty = entity.EasyDifficulty
	}

	return &GameManager{
		logger:    logger,
		statsRepo: statsRepo,
		metrics:   observer,
		settings:  settings,
		now:       time.Now,

		sessions: make(map[string]*session),
	}
}

// NewGame - starts a session where the player moves first as X against the bot as O.
// Empty variant or difficulty take the configured defaults; unknown ones degrade to standard and easy.
func (that *GameManager) NewGame(_ context.Context, playerID string, variant entity.Variant, difficulty entity.Difficulty) (*entity.Session, error) {
	if variant == "" {
		variant = that.settings.DefaultVariant
	}
	variant = tictactoe.ParseVariant(string(variant))

	if difficulty == "" {
		difficulty = that.settings.DefaultDifficulty
	}
	difficulty = entity.ParseDifficulty(string(difficulty))

	log := that.logger.With("method", "NewGame", "playerID", playerID, "variant", variant, "difficulty", difficulty)

	options := []bot.Option{
		bot.WithMark(entity.PlayerO),
		bot.WithThinkingDelay(that.settings.ThinkDelay, that.settings.ThinkJitter),
		bot.WithLogger(that.logger.With("component", "bot")),
		bot.WithRecorder(that.metrics),
	}
	options = append(options, that.settings.BotOptions...)

	now := that.now()
	s := &session{
		id:         uuid.NewString(),
		playerID:   playerID,
		game:       tictactoe.New(variant),
		opponent:   bot.New(difficulty, variant, options...),
		human:      entity.PlayerX,
		startedAt:  now,
		lastActive: now,
	}

	that.mu.Lock()
	that.sessions[s.id] = s
	that.mu.Unlock()

	log.Info("game created", "sessionID", s.id)

	return s.snapshot(nil), nil
}

// MakeTurn - applies the player's move and, while the game goes on, the bot's reply.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, x, y int) (*entity.Session, error) {
	s, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := that.logger.With("method", "MakeTurn", "sessionID", sessionID)

	if s.game.IsOver() {
		return s.snapshot(nil), apperror.ErrGameFinished
	}

	if s.game.CurrentPlayer() != s.human {
		return s.snapshot(nil), apperror.ErrNotYourTurn
	}

	if !s.game.MakeMove(x, y) {
		return s.snapshot(nil), fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidMove, x, y)
	}

	s.lastActive = that.now()
	that.metrics.ObserveMove(s.game.Variant(), metrics.ActorHuman)

	if s.game.IsOver() {
		that.finishGame(ctx, s)

		return s.snapshot(nil), nil
	}

	move, ok := s.opponent.GetMove(ctx, s.game)
	if !ok || !s.game.MakeMove(move.X, move.Y) {
		log.Warn("bot has no move", "turn", s.game.TurnCount())

		return s.snapshot(nil), apperror.ErrNoAvailableMoves
	}

	that.metrics.ObserveMove(s.game.Variant(), metrics.ActorBot)
	log.Debug("bot replied", "move", move)

	if s.game.IsOver() {
		that.finishGame(ctx, s)
	}

	return s.snapshot(&move), nil
}

// Undo - takes back moves until it is the player's turn again, so a bot reply goes together with the move it answered.
func (that *GameManager) Undo(_ context.Context, sessionID string) (*entity.Session, error) {
	s, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.IsOver() {
		return s.snapshot(nil), apperror.ErrGameFinished
	}

	if !s.game.Undo() {
		return s.snapshot(nil), apperror.ErrNothingToUndo
	}

	for s.game.CurrentPlayer() != s.human && s.game.Undo() {
	}

	s.lastActive = that.now()

	return s.snapshot(nil), nil
}

// Reset - starts the same variant and difficulty over in the same session.
func (that *GameManager) Reset(_ context.Context, sessionID string) (*entity.Session, error) {
	s, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Reset()
	s.recorded = false
	s.startedAt = that.now()
	s.lastActive = s.startedAt

	return s.snapshot(nil), nil
}

func (that *GameManager) GetState(_ context.Context, sessionID string) (*entity.Session, error) {
	s, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot(nil), nil
}

// EndGame - drops the session. Unfinished games are not counted in the statistics.
func (that *GameManager) EndGame(_ context.Context, sessionID string) error {
	log := that.logger.With("method", "EndGame")

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[sessionID]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, sessionID)

	log.Info("game deleted", "sessionID", sessionID)

	return nil
}

// GetStats - the player's statistics; a player without finished games gets empty ones.
func (that *GameManager) GetStats(ctx context.Context, playerID string) (*entity.Stats, error) {
	stats, err := that.statsRepo.GetByPlayerID(ctx, playerID)
	if errors.Is(err, repository.ErrStatsNotFound) {
		return entity.NewStats(playerID), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (that *GameManager) ResetStats(ctx context.Context, playerID string) error {
	if err := that.statsRepo.DeleteByPlayerID(ctx, playerID); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}

	return nil
}

// Cleanup - drops sessions idle for longer than the session TTL and returns how many were dropped.
func (that *GameManager) Cleanup() int {
	if that.settings.SessionTTL <= 0 {
		return 0
	}

	deadline := that.now().Add(-that.settings.SessionTTL)

	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for id, s := range that.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(deadline)
		s.mu.Unlock()

		if idle {
			delete(that.sessions, id)
			removed++
		}
	}

	return removed
}

// RunCleanup - calls Cleanup every interval until ctx is done.
func (that *GameManager) RunCleanup(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "RunCleanup")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := that.Cleanup(); removed > 0 {
				log.Info("idle sessions removed", "count", removed)
			}
		}
	}
}

func (that *GameManager) getSession(id string) (*session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	s, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return s, nil
}

// finishGame - counts a finished game once per round. Storage failures are logged, the move stands.
func (that *GameManager) finishGame(ctx context.Context, s *session) {
	if s.recorded {
		return
	}
	s.recorded = true

	log := that.logger.With("method", "finishGame", "sessionID", s.id)

	state := s.game.State()
	winner := state.Winner
	that.metrics.ObserveGameFinished(s.game.Variant(), metrics.Outcome(&state, s.human))

	stats, err := that.GetStats(ctx, s.playerID)
	if err != nil {
		log.Error("failed to get stats", "error", err)
		return
	}

	stats.Record(entity.GameResult{
		Variant:    s.game.Variant(),
		PlayerMark: s.human,
		Winner:     winner,
		Moves:      s.game.TurnCount(),
		Duration:   that.now().Sub(s.startedAt),
	})

	if err = that.statsRepo.CreateOrUpdate(ctx, stats); err != nil {
		log.Error("failed to save stats", "error", err)
		return
	}

	log.Info("game finished", "winner", winner)
}

func (that *session) snapshot(botMove *entity.Move) *entity.Session {
	return &entity.Session{
		ID:         that.id,
		PlayerID:   that.playerID,
		Variant:    that.game.Variant(),
		Difficulty: that.opponent.Difficulty(),
		HumanMark:  that.human,
		BotMark:    that.opponent.Mark(),
		StartedAt:  that.startedAt,
		State:      that.game.State(),
		BotMove:    botMove,
	}
}
