package tictactoe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

var (
	ErrRowCount    = errors.New("wrong number of rows")
	ErrRowWidth    = errors.New("wrong row width")
	ErrUnknownMark = errors.New("unknown mark")
)

const (
	defaultMarkLifespan = 4
	defaultRevealRadius = 1
)

var variantConfigs = map[entity.Variant]entity.VariantConfig{
	entity.StandardVariant: {
		Variant:      entity.StandardVariant,
		Width:        3,
		Height:       3,
		WinCondition: 3,
		Name:         "Standard Tic-Tac-Toe",
		Description:  "Classic 3x3 tic-tac-toe game",
		Difficulty:   "Easy",
	},
	entity.FadingVariant: {
		Variant:      entity.FadingVariant,
		Width:        3,
		Height:       3,
		WinCondition: 3,
		MarkLifespan: defaultMarkLifespan,
		Name:         "Fading Marks",
		Description:  "Marks disappear after 4 turns. Plan your strategy carefully!",
		Difficulty:   "Medium",
	},
	entity.FogVariant: {
		Variant:      entity.FogVariant,
		Width:        5,
		Height:       5,
		WinCondition: 4,
		RevealRadius: defaultRevealRadius,
		Name:         "Fog of War",
		Description:  "Limited board visibility. Reveal cells by playing nearby!",
		Difficulty:   "Hard",
	},
	entity.GravityVariant: {
		Variant:      entity.GravityVariant,
		Width:        3,
		Height:       6,
		WinCondition: 4,
		Name:         "Gravity Drop",
		Description:  "Pieces fall down like Connect Four. Think vertically!",
		Difficulty:   "Easy",
	},
}

var variantOrder = []entity.Variant{
	entity.StandardVariant,
	entity.FadingVariant,
	entity.FogVariant,
	entity.GravityVariant,
}

type Option func(config *entity.VariantConfig)

// WithMarkLifespan - overrides how many moves a fading mark survives. Non-positive values are ignored.
func WithMarkLifespan(lifespan int) Option {
	return func(config *entity.VariantConfig) {
		if lifespan > 0 && config.Variant == entity.FadingVariant {
			config.MarkLifespan = lifespan
		}
	}
}

// WithRevealRadius - overrides the fog reveal radius. Non-positive values are ignored.
func WithRevealRadius(radius int) Option {
	return func(config *entity.VariantConfig) {
		if radius > 0 && config.Variant == entity.FogVariant {
			config.RevealRadius = radius
		}
	}
}

// New - builds a game for the variant. Unknown variants get the standard rules.
func New(variant entity.Variant, options ...Option) *Game {
	config := Lookup(variant)
	for _, option := range options {
		option(&config)
	}

	return newGame(config, rulesFor(config.Variant))
}

// Lookup - the static configuration of a variant, standard for unknown ids.
func Lookup(variant entity.Variant) entity.VariantConfig {
	config, ok := variantConfigs[variant]
	if !ok {
		return variantConfigs[entity.StandardVariant]
	}

	return config
}

func IsValidVariant(variant entity.Variant) bool {
	_, ok := variantConfigs[variant]
	return ok
}

// ParseVariant - case-insensitive; unknown names degrade to standard.
func ParseVariant(value string) entity.Variant {
	variant := entity.Variant(strings.ToLower(strings.TrimSpace(value)))
	if !IsValidVariant(variant) {
		return entity.StandardVariant
	}

	return variant
}

// Variants - configurations of every variant in display order.
func Variants() []entity.VariantConfig {
	configs := make([]entity.VariantConfig, 0, len(variantOrder))
	for _, variant := range variantOrder {
		configs = append(configs, variantConfigs[variant])
	}

	return configs
}

// FromRows - sets up a position from text rows, top row first, using X, O and '.' for empty.
// Loaded marks have no history and, in the fading variant, never fade. In the fog variant
// the neighbourhood of every loaded mark is revealed.
func FromRows(variant entity.Variant, toMove entity.Mark, rows ...string) (*Game, error) {
	game := New(variant)

	if len(rows) != game.config.Height {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrRowCount, len(rows), game.config.Height)
	}

	for y, row := range rows {
		if len(row) != game.config.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, y, len(row), game.config.Width)
		}

		for x, cell := range row {
			switch cell {
			case 'X', 'x':
				game.pos.board[y][x] = entity.PlayerX
			case 'O', 'o':
				game.pos.board[y][x] = entity.PlayerO
			case '.', '-', ' ':
				continue
			default:
				return nil, fmt.Errorf("%w: %q at row %d", ErrUnknownMark, cell, y)
			}

			game.pos.turn++
			if game.config.Variant == entity.FogVariant {
				revealArea(game, x, y)
			}
		}
	}

	if toMove.IsPlayer() {
		game.pos.current = toMove
	}

	game.checkGameStatus()

	return game, nil
}
