package entity

import "time"

type ModeStats struct {
	Played int `json:"played"`
	Won    int `json:"won"`
	Lost   int `json:"lost"`
	Drawn  int `json:"drawn"`
}

// Stats accumulates finished games of one player.
type Stats struct {
	PlayerID        string                 `json:"player_id"`
	GamesPlayed     int                    `json:"games_played"`
	GamesWon        int                    `json:"games_won"`
	GamesLost       int                    `json:"games_lost"`
	GamesDrawn      int                    `json:"games_drawn"`
	TotalMoves      int                    `json:"total_moves"`
	AverageGameTime time.Duration          `json:"average_game_time"`
	FavoriteMode    Variant                `json:"favorite_mode,omitempty"`
	ModeStats       map[Variant]*ModeStats `json:"mode_stats,omitempty"`
}

// GameResult is the outcome of one finished game from the human player's side.
type GameResult struct {
	Variant    Variant
	PlayerMark Mark
	Winner     Mark
	Moves      int
	Duration   time.Duration
}

func NewStats(playerID string) *Stats {
	return &Stats{
		PlayerID:  playerID,
		ModeStats: make(map[Variant]*ModeStats),
	}
}

func (that *Stats) Record(result GameResult) {
	if that.ModeStats == nil {
		that.ModeStats = make(map[Variant]*ModeStats)
	}

	that.GamesPlayed++
	that.TotalMoves += result.Moves

	mode, ok := that.ModeStats[result.Variant]
	if !ok {
		mode = &ModeStats{}
		that.ModeStats[result.Variant] = mode
	}
	mode.Played++

	switch result.Winner {
	case EmptyCell:
		that.GamesDrawn++
		mode.Drawn++
	case result.PlayerMark:
		that.GamesWon++
		mode.Won++
	default:
		that.GamesLost++
		mode.Lost++
	}

	if result.Duration > 0 {
		total := that.AverageGameTime*time.Duration(that.GamesPlayed-1) + result.Duration
		that.AverageGameTime = total / time.Duration(that.GamesPlayed)
	}

	that.FavoriteMode = that.favoriteMode()
}

// WinRate is a whole percentage, zero when nothing has been played.
func (that *Stats) WinRate() int {
	if that.GamesPlayed == 0 {
		return 0
	}

	return that.GamesWon * 100 / that.GamesPlayed
}

// favoriteMode picks the most played variant; ties go to the variant listed first.
func (that *Stats) favoriteMode() Variant {
	var (
		favorite Variant
		played   int
	)

	for _, variant := range []Variant{StandardVariant, FadingVariant, FogVariant, GravityVariant} {
		mode, ok := that.ModeStats[variant]
		if ok && mode.Played > played {
			favorite = variant
			played = mode.Played
		}
	}

	return favorite
}
