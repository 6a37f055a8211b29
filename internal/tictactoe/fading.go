package tictactoe

import "github.com/rocketscienceinc/tictactoe-variants/internal/entity"

// fadingRules - every mark lives for MarkLifespan moves, counting the move that placed it.
type fadingRules struct {
	standardRules
}

func (fadingRules) settle(game *Game, x, y int) {
	game.pos.ages[y][x] = game.config.MarkLifespan
	ageAllMarks(game)

	// fading only removes marks, but a finished board may have lost cells
	game.checkGameStatus()
}

func (fadingRules) prepare(game *Game) {
	markAllVisible(game)
}

func (fadingRules) describe(game *Game, state *entity.GameState) {
	state.MarkAges = copyGrid(&game.pos.ages, game.config.Width, game.config.Height)
	state.MarkLifespan = game.config.MarkLifespan
}

func ageAllMarks(game *Game) {
	for y := 0; y < game.config.Height; y++ {
		for x := 0; x < game.config.Width; x++ {
			if game.pos.ages[y][x] <= 0 {
				continue
			}

			game.pos.ages[y][x]--
			if game.pos.ages[y][x] == 0 {
				game.pos.board[y][x] = entity.EmptyCell
			}
		}
	}
}

// MarkAge - moves left before the mark at (x, y) disappears; zero for empty cells and non-fading games.
func (that *Game) MarkAge(x, y int) int {
	if !that.inBounds(x, y) {
		return 0
	}

	return that.pos.ages[y][x]
}

// CellOpacity - remaining life of the mark at (x, y) as a fraction of its lifespan, 1 when it does not fade.
func (that *Game) CellOpacity(x, y int) float64 {
	age := that.MarkAge(x, y)
	if age == 0 || that.config.MarkLifespan <= 0 {
		return 1
	}

	return float64(age) / float64(that.config.MarkLifespan)
}
