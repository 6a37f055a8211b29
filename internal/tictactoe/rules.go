package tictactoe

import "github.com/rocketscienceinc/tictactoe-variants/internal/entity"

// rules is what makes a variant. Implementations keep no state of their own:
// whatever a variant tracks lives in the game's position so undo and clone cover it.
type rules interface {
	// valid reports whether a move request is legal right now.
	valid(game *Game, x, y int) bool
	// target resolves a legal move request to the cell that receives the mark.
	target(game *Game, x, y int) (int, int, bool)
	// moves lists the legal move requests in a stable order.
	moves(game *Game) []entity.Move
	// settle runs after a mark is placed and the outcome is checked.
	settle(game *Game, x, y int)
	// prepare sets up variant state on an empty position.
	prepare(game *Game)
	// describe adds variant state to a snapshot.
	describe(game *Game, state *entity.GameState)
}

func rulesFor(variant entity.Variant) rules {
	switch variant {
	case entity.FadingVariant:
		return fadingRules{}
	case entity.FogVariant:
		return fogRules{}
	case entity.GravityVariant:
		return gravityRules{}
	default:
		return standardRules{}
	}
}

type standardRules struct{}

func (standardRules) valid(game *Game, x, y int) bool {
	return game.inBounds(x, y) &&
		game.pos.board[y][x] == entity.EmptyCell &&
		!game.pos.over
}

func (standardRules) target(game *Game, x, y int) (int, int, bool) {
	return x, y, game.inBounds(x, y)
}

func (standardRules) moves(game *Game) []entity.Move {
	return cellMoves(game)
}

func (standardRules) settle(*Game, int, int) {}

func (standardRules) prepare(game *Game) {
	markAllVisible(game)
}

func (standardRules) describe(*Game, *entity.GameState) {}

// cellMoves - every cell the game accepts, row by row.
func cellMoves(game *Game) []entity.Move {
	moves := make([]entity.Move, 0, game.config.Width*game.config.Height)
	for y := 0; y < game.config.Height; y++ {
		for x := 0; x < game.config.Width; x++ {
			if game.IsValidMove(x, y) {
				moves = append(moves, entity.Move{X: x, Y: y})
			}
		}
	}

	return moves
}

func markAllVisible(game *Game) {
	for y := 0; y < game.config.Height; y++ {
		for x := 0; x < game.config.Width; x++ {
			game.pos.visible[y][x] = true
		}
	}
}
