package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
	assert.True(t, PlayerX.IsPlayer())
	assert.False(t, EmptyCell.IsPlayer())
	assert.False(t, Mark("Z").IsPlayer())
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, HardDifficulty, ParseDifficulty(" Hard "))
	assert.Equal(t, MediumDifficulty, ParseDifficulty("medium"))
	assert.Equal(t, EasyDifficulty, ParseDifficulty("easy"))
	assert.Equal(t, EasyDifficulty, ParseDifficulty("impossible"))
	assert.Equal(t, EasyDifficulty, ParseDifficulty(""))
}

func TestGameState_IsDraw(t *testing.T) {
	assert.True(t, (&GameState{GameOver: true}).IsDraw())
	assert.False(t, (&GameState{GameOver: true, Winner: PlayerX}).IsDraw())
	assert.False(t, (&GameState{}).IsDraw())
}

func TestStats_Record(t *testing.T) {
	t.Run("Counts outcomes per mode", func(t *testing.T) {
		// Given: empty stats
		stats := NewStats("player-1")

		// When: a win, a loss and a draw are recorded
		stats.Record(GameResult{Variant: FogVariant, PlayerMark: PlayerX, Winner: PlayerX, Moves: 9, Duration: 2 * time.Minute})
		stats.Record(GameResult{Variant: FogVariant, PlayerMark: PlayerX, Winner: PlayerO, Moves: 6, Duration: 4 * time.Minute})
		stats.Record(GameResult{Variant: GravityVariant, PlayerMark: PlayerX, Moves: 18})

		// Then: totals, per-mode counters and the favorite mode follow
		require.Equal(t, &Stats{
			PlayerID:        "player-1",
			GamesPlayed:     3,
			GamesWon:        1,
			GamesLost:       1,
			GamesDrawn:      1,
			TotalMoves:      33,
			AverageGameTime: 3 * time.Minute,
			FavoriteMode:    FogVariant,
			ModeStats: map[Variant]*ModeStats{
				FogVariant:     {Played: 2, Won: 1, Lost: 1},
				GravityVariant: {Played: 1, Drawn: 1},
			},
		}, stats)
		assert.Equal(t, 33, stats.WinRate())
	})

	t.Run("Favorite mode ties go to the earlier mode", func(t *testing.T) {
		stats := NewStats("player-1")

		stats.Record(GameResult{Variant: GravityVariant, PlayerMark: PlayerX})
		stats.Record(GameResult{Variant: FadingVariant, PlayerMark: PlayerX})

		assert.Equal(t, FadingVariant, stats.FavoriteMode)
	})

	t.Run("Zero value is usable", func(t *testing.T) {
		var stats Stats

		assert.Equal(t, 0, stats.WinRate())

		stats.Record(GameResult{Variant: StandardVariant, PlayerMark: PlayerO, Winner: PlayerO})

		assert.Equal(t, 100, stats.WinRate())
		assert.Equal(t, StandardVariant, stats.FavoriteMode)
	})
}
