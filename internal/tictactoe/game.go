package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

// Game is the board state machine shared by all variants. The variant only decides
// where a move lands, which cells are legal and what happens to the board afterwards.
type Game struct {
	config entity.VariantConfig
	rules  rules

	pos  position
	undo []snapshot

	// scratch games come from Simulate and keep no undo stack
	scratch bool
}

func newGame(config entity.VariantConfig, variantRules rules) *Game {
	game := &Game{
		config: config,
		rules:  variantRules,
	}
	game.Reset()

	return game
}

// MakeMove - places the current player's mark. For the gravity variant x is the column and y is ignored.
func (that *Game) MakeMove(x, y int) bool {
	return that.MakeMoveAs(x, y, that.pos.current)
}

// MakeMoveAs - places a mark for an explicit player. On success the current player
// toggles unless the move ended the game, whoever placed the mark.
func (that *Game) MakeMoveAs(x, y int, player entity.Mark) bool {
	if !player.IsPlayer() || !that.IsValidMove(x, y) {
		return false
	}

	cellX, cellY, ok := that.rules.target(that, x, y)
	if !ok {
		return false
	}

	that.saveForUndo()

	that.pos.board[cellY][cellX] = player
	that.pos.history = append(that.pos.history, entity.HistoryEntry{
		X:      cellX,
		Y:      cellY,
		Player: player,
		Turn:   that.pos.turn,
	})
	that.pos.turn++

	that.checkGameStatus()
	if !that.pos.over {
		that.pos.current = that.pos.current.Opponent()
	}

	that.rules.settle(that, cellX, cellY)

	return true
}

func (that *Game) IsValidMove(x, y int) bool {
	return that.rules.valid(that, x, y)
}

// ValidMoves - legal moves in row-major order (columns left to right for gravity).
// Callers rely on this order to break ties.
func (that *Game) ValidMoves() []entity.Move {
	return that.rules.moves(that)
}

// Undo - restores the position before the last move. Not available once the game is over.
func (that *Game) Undo() bool {
	if !that.CanUndo() {
		return false
	}

	last := that.undo[len(that.undo)-1]
	that.undo = that.undo[:len(that.undo)-1]

	history := that.pos.history[:last.historyLen]
	that.pos = last.pos
	that.pos.history = history

	return true
}

func (that *Game) CanUndo() bool {
	return len(that.undo) > 0 && !that.pos.over
}

func (that *Game) Reset() {
	that.pos = position{current: entity.PlayerX}
	that.undo = nil
	that.rules.prepare(that)
}

// Clone - an independent copy, undo stack included.
func (that *Game) Clone() *Game {
	cloned := &Game{
		config:  that.config,
		rules:   that.rules,
		pos:     that.pos,
		scratch: that.scratch,
	}

	if that.pos.history != nil {
		cloned.pos.history = make([]entity.HistoryEntry, len(that.pos.history))
		copy(cloned.pos.history, that.pos.history)
	}

	if that.undo != nil {
		cloned.undo = make([]snapshot, len(that.undo))
		copy(cloned.undo, that.undo)
	}

	return cloned
}

// Simulate - a detached copy with the move applied for player. The copy has no undo
// stack and never gets one, which keeps deep searches cheap. ok is false when the move is illegal.
func (that *Game) Simulate(move entity.Move, player entity.Mark) (*Game, bool) {
	simulated := &Game{
		config:  that.config,
		rules:   that.rules,
		pos:     that.pos,
		scratch: true,
	}

	simulated.pos.history = make([]entity.HistoryEntry, len(that.pos.history), len(that.pos.history)+1)
	copy(simulated.pos.history, that.pos.history)

	ok := simulated.MakeMoveAs(move.X, move.Y, player)

	return simulated, ok
}

// State - a deep copy of the observable state.
func (that *Game) State() entity.GameState {
	state := entity.GameState{
		Variant:       that.config.Variant,
		Board:         copyGrid(&that.pos.board, that.config.Width, that.config.Height),
		CurrentPlayer: that.pos.current,
		Winner:        that.pos.winner,
		GameOver:      that.pos.over,
		MoveHistory:   make([]entity.HistoryEntry, len(that.pos.history)),
		TurnCount:     that.pos.turn,
	}
	copy(state.MoveHistory, that.pos.history)

	that.rules.describe(that, &state)

	return state
}

func (that *Game) saveForUndo() {
	if that.scratch {
		return
	}

	saved := that.pos
	saved.history = nil

	that.undo = append(that.undo, snapshot{
		pos:        saved,
		historyLen: len(that.pos.history),
	})
}

func (that *Game) Variant() entity.Variant {
	return that.config.Variant
}

func (that *Game) Config() entity.VariantConfig {
	return that.config
}

func (that *Game) Width() int {
	return that.config.Width
}

func (that *Game) Height() int {
	return that.config.Height
}

func (that *Game) WinCondition() int {
	return that.config.WinCondition
}

func (that *Game) CurrentPlayer() entity.Mark {
	return that.pos.current
}

// Winner - the empty mark while the game runs and after a draw.
func (that *Game) Winner() entity.Mark {
	return that.pos.winner
}

func (that *Game) IsOver() bool {
	return that.pos.over
}

func (that *Game) TurnCount() int {
	return that.pos.turn
}

// Cell - the mark at (x, y); empty when out of bounds.
func (that *Game) Cell(x, y int) entity.Mark {
	if !that.inBounds(x, y) {
		return entity.EmptyCell
	}

	return that.pos.board[y][x]
}

func copyGrid[T any](source *grid[T], width, height int) [][]T {
	rows := make([][]T, height)
	for y := range rows {
		rows[y] = make([]T, width)
		copy(rows[y], source[y][:width])
	}

	return rows
}
