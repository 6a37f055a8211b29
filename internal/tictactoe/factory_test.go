package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

func TestNew_Variants(t *testing.T) {
	cases := []struct {
		variant      entity.Variant
		width        int
		height       int
		winCondition int
	}{
		{entity.StandardVariant, 3, 3, 3},
		{entity.FadingVariant, 3, 3, 3},
		{entity.FogVariant, 5, 5, 4},
		{entity.GravityVariant, 3, 6, 4},
	}

	for _, tc := range cases {
		t.Run(string(tc.variant), func(t *testing.T) {
			// When: a game of the variant is created
			game := New(tc.variant)

			// Then: it has the variant's fixed dimensions
			assert.Equal(t, tc.variant, game.Variant())
			assert.Equal(t, tc.width, game.Width())
			assert.Equal(t, tc.height, game.Height())
			assert.Equal(t, tc.winCondition, game.WinCondition())
			assert.Len(t, game.State().Board, tc.height)
			assert.Len(t, game.State().Board[0], tc.width)
		})
	}
}

func TestNew_UnknownVariantFallsBackToStandard(t *testing.T) {
	// When: a game is created for an unknown id
	game := New("hexagonal")

	// Then: it is a standard game
	assert.Equal(t, entity.StandardVariant, game.Variant())
	assert.Equal(t, Lookup(entity.StandardVariant), game.Config())
}

func TestNew_OverridesOnlyApplyToTheirVariant(t *testing.T) {
	// When: overrides are passed to variants that do not use them
	standard := New(entity.StandardVariant, WithMarkLifespan(7), WithRevealRadius(3))
	fading := New(entity.FadingVariant, WithMarkLifespan(7), WithRevealRadius(3))
	fog := New(entity.FogVariant, WithMarkLifespan(7), WithRevealRadius(0))

	// Then: only the matching override is taken and invalid values are ignored
	assert.Equal(t, 0, standard.Config().MarkLifespan)
	assert.Equal(t, 0, standard.Config().RevealRadius)
	assert.Equal(t, 7, fading.Config().MarkLifespan)
	assert.Equal(t, 0, fading.Config().RevealRadius)
	assert.Equal(t, 1, fog.Config().RevealRadius)
	assert.Equal(t, 0, fog.Config().MarkLifespan)
}

func TestLookup(t *testing.T) {
	t.Run("Known variant", func(t *testing.T) {
		config := Lookup(entity.FogVariant)

		assert.Equal(t, "Fog of War", config.Name)
		assert.Equal(t, "Hard", config.Difficulty)
		assert.Equal(t, 1, config.RevealRadius)
	})

	t.Run("Unknown variant", func(t *testing.T) {
		assert.Equal(t, Lookup(entity.StandardVariant), Lookup("unknown"))
	})
}

func TestVariants(t *testing.T) {
	// When: listing variants
	configs := Variants()

	// Then: all four come back in display order
	require.Len(t, configs, 4)

	order := make([]entity.Variant, 0, len(configs))
	for _, config := range configs {
		order = append(order, config.Variant)
	}
	assert.Equal(t, []entity.Variant{
		entity.StandardVariant,
		entity.FadingVariant,
		entity.FogVariant,
		entity.GravityVariant,
	}, order)
}

func TestParseVariant(t *testing.T) {
	assert.Equal(t, entity.GravityVariant, ParseVariant(" Gravity "))
	assert.Equal(t, entity.FogVariant, ParseVariant("fog"))
	assert.Equal(t, entity.StandardVariant, ParseVariant("chess"))
	assert.Equal(t, entity.StandardVariant, ParseVariant(""))
	assert.True(t, IsValidVariant(entity.FadingVariant))
	assert.False(t, IsValidVariant("chess"))
}

func TestFromRows(t *testing.T) {
	t.Run("Loads a position", func(t *testing.T) {
		// When: a position is loaded
		game, err := FromRows(entity.StandardVariant, o, "OO.", "XXO", "XOX")

		// Then: the board, turn and move count match
		require.NoError(t, err)
		assert.Equal(t, [][]entity.Mark{{o, o, e}, {x, x, o}, {x, o, x}}, game.State().Board)
		assert.Equal(t, o, game.CurrentPlayer())
		assert.Equal(t, 8, game.TurnCount())
		assert.False(t, game.IsOver())
		assert.Equal(t, []entity.Move{{X: 2, Y: 0}}, game.ValidMoves())
	})

	t.Run("Fog reveals around loaded marks", func(t *testing.T) {
		game, err := FromRows(entity.FogVariant, x,
			"X....",
			".....",
			".....",
			".....",
			".....",
		)

		require.NoError(t, err)
		assert.True(t, game.IsCellVisible(1, 1))
		assert.True(t, game.IsCellVisible(2, 2))
		assert.False(t, game.IsCellVisible(4, 0))
	})

	t.Run("Wrong row count", func(t *testing.T) {
		_, err := FromRows(entity.StandardVariant, x, "...", "...")
		require.ErrorIs(t, err, ErrRowCount)
	})

	t.Run("Wrong row width", func(t *testing.T) {
		_, err := FromRows(entity.StandardVariant, x, "...", "....", "...")
		require.ErrorIs(t, err, ErrRowWidth)
	})

	t.Run("Unknown mark", func(t *testing.T) {
		_, err := FromRows(entity.StandardVariant, x, "...", ".Z.", "...")
		require.ErrorIs(t, err, ErrUnknownMark)
	})
}
