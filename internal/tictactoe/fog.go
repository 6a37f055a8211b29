package tictactoe

import "github.com/rocketscienceinc/tictactoe-variants/internal/entity"

// fogRules - only revealed cells can be played; playing a cell reveals its neighbourhood.
type fogRules struct {
	standardRules
}

func (fogRules) valid(game *Game, x, y int) bool {
	return standardRules{}.valid(game, x, y) && game.pos.visible[y][x]
}

func (fogRules) settle(game *Game, x, y int) {
	revealArea(game, x, y)
}

// prepare - everything starts hidden except the centre cell.
func (fogRules) prepare(game *Game) {
	game.pos.visible = grid[bool]{}
	game.pos.visible[game.config.Height/2][game.config.Width/2] = true
}

func (fogRules) describe(game *Game, state *entity.GameState) {
	state.Visibility = copyGrid(&game.pos.visible, game.config.Width, game.config.Height)
	state.RevealRadius = game.config.RevealRadius
}

func revealArea(game *Game, centerX, centerY int) {
	radius := game.config.RevealRadius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := centerX+dx, centerY+dy
			if game.inBounds(x, y) {
				game.pos.visible[y][x] = true
			}
		}
	}
}

// IsCellVisible - whether (x, y) has been revealed. Every in-bounds cell is visible outside the fog variant.
func (that *Game) IsCellVisible(x, y int) bool {
	if !that.inBounds(x, y) {
		return false
	}

	return that.pos.visible[y][x]
}
