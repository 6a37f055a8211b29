package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

var ErrStatsNotFound = errors.New("stats not found")

const statsKeyPrefix = "stats:"

type StatsRepository interface {
	CreateOrUpdate(ctx context.Context, stats *entity.Stats) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error)
	DeleteByPlayerID(ctx context.Context, playerID string) error
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) CreateOrUpdate(ctx context.Context, stats *entity.Stats) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err = that.client.Set(ctx, statsKeyPrefix+stats.PlayerID, statsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set stats: %w", err)
	}

	return nil
}

func (that *dbStats) GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error) {
	response, err := that.client.Get(ctx, statsKeyPrefix+playerID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrStatsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get stats by player ID: %w", err)
	}

	var stats entity.Stats
	if err = json.Unmarshal([]byte(response), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	if stats.ModeStats == nil {
		stats.ModeStats = make(map[entity.Variant]*entity.ModeStats)
	}

	return &stats, nil
}

func (that *dbStats) DeleteByPlayerID(ctx context.Context, playerID string) error {
	if err := that.client.Del(ctx, statsKeyPrefix+playerID).Err(); err != nil {
		return fmt.Errorf("failed to delete stats: %w", err)
	}

	return nil
}
