package entity

import "strings"

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// Opponent returns the other player's mark; the empty mark has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

type Variant string

const (
	StandardVariant Variant = "standard"
	FadingVariant   Variant = "fading"
	FogVariant      Variant = "fog"
	GravityVariant  Variant = "gravity"
)

type Difficulty string

const (
	EasyDifficulty   Difficulty = "easy"
	MediumDifficulty Difficulty = "medium"
	HardDifficulty   Difficulty = "hard"
)

// ParseDifficulty - unknown values degrade to easy, the way an unknown tier plays.
func ParseDifficulty(value string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(value))) {
	case MediumDifficulty:
		return MediumDifficulty
	case HardDifficulty:
		return HardDifficulty
	default:
		return EasyDifficulty
	}
}

// Move addresses a cell. For the gravity variant X is the column and Y is the row the piece would land on.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type HistoryEntry struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Player Mark `json:"player"`
	Turn   int  `json:"turn"`
}

// GameState is a detached snapshot of a game. Mutating it never affects the game it came from.
type GameState struct {
	Variant       Variant        `json:"variant"`
	Board         [][]Mark       `json:"board"`
	CurrentPlayer Mark           `json:"current_player"`
	Winner        Mark           `json:"winner"`
	GameOver      bool           `json:"game_over"`
	MoveHistory   []HistoryEntry `json:"move_history"`
	TurnCount     int            `json:"turn_count"`

	MarkAges     [][]int `json:"mark_ages,omitempty"`
	MarkLifespan int     `json:"mark_lifespan,omitempty"`

	Visibility   [][]bool `json:"visibility,omitempty"`
	RevealRadius int      `json:"reveal_radius,omitempty"`
}

func (that *GameState) IsDraw() bool {
	return that.GameOver && that.Winner == EmptyCell
}

// VariantConfig is the static, read-only description of a variant.
type VariantConfig struct {
	Variant      Variant `json:"mode"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	WinCondition int     `json:"win_condition"`
	MarkLifespan int     `json:"mark_lifespan,omitempty"`
	RevealRadius int     `json:"reveal_radius,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Difficulty   string  `json:"difficulty"`
}
