package entity

import "time"

// Session is a snapshot of one human-versus-bot game.
type Session struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"player_id"`
	Variant    Variant    `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	HumanMark  Mark       `json:"human_mark"`
	BotMark    Mark       `json:"bot_mark"`
	StartedAt  time.Time  `json:"started_at"`
	State      GameState  `json:"state"`
	// BotMove is the reply to the last human move, if the bot made one.
	BotMove *Move `json:"bot_move,omitempty"`
}
