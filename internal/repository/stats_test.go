package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
	"github.com/rocketscienceinc/tictactoe-variants/testing/suite"
)

func TestStatsRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage)

	// Given: stats of a player with one game
	stats := entity.NewStats("player-1")
	stats.Record(entity.GameResult{
		Variant:    entity.FogVariant,
		PlayerMark: entity.PlayerX,
		Winner:     entity.PlayerX,
		Moves:      7,
		Duration:   time.Minute,
	})

	// When: CreateOrUpdate is called
	err := statsRepo.CreateOrUpdate(ctx, stats)

	// Then: no error should be returned, and the JSON is stored under the player's key
	require.NoError(t, err)

	exists, err := st.Storage.Exists(ctx, "stats:player-1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestStatsRepository_GetByPlayerID(t *testing.T) {
	t.Run("GetByPlayerID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)

		// Given: stored stats with a per-mode breakdown
		stats := entity.NewStats("player-2")
		stats.Record(entity.GameResult{Variant: entity.GravityVariant, PlayerMark: entity.PlayerX, Winner: entity.PlayerO, Moves: 9})
		stats.Record(entity.GameResult{Variant: entity.GravityVariant, PlayerMark: entity.PlayerX, Moves: 18})

		require.NoError(t, statsRepo.CreateOrUpdate(ctx, stats))

		// When: GetByPlayerID is called with the existing ID
		retrieved, err := statsRepo.GetByPlayerID(ctx, "player-2")

		// Then: the retrieved stats match the saved ones
		require.NoError(t, err)
		require.Equal(t, stats, retrieved)
	})

	t.Run("GetByPlayerID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)

		// When: GetByPlayerID is called with a non-existent ID
		retrieved, err := statsRepo.GetByPlayerID(ctx, "nobody")

		// Then: an ErrStatsNotFound error should be returned
		require.ErrorIs(t, err, ErrStatsNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestStatsRepository_DeleteByPlayerID(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage)

	// Given: stored stats
	require.NoError(t, statsRepo.CreateOrUpdate(ctx, entity.NewStats("player-3")))

	// When: they are deleted
	err := statsRepo.DeleteByPlayerID(ctx, "player-3")

	// Then: they can no longer be read, and deleting again is not an error
	require.NoError(t, err)

	_, err = statsRepo.GetByPlayerID(ctx, "player-3")
	require.ErrorIs(t, err, ErrStatsNotFound)
	require.NoError(t, statsRepo.DeleteByPlayerID(ctx, "player-3"))
}
