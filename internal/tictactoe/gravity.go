package tictactoe

import "github.com/rocketscienceinc/tictactoe-variants/internal/entity"

// gravityRules - a move names a column and the mark drops to the lowest empty row.
type gravityRules struct {
	standardRules
}

func (gravityRules) valid(game *Game, column, _ int) bool {
	if column < 0 || column >= game.config.Width || game.pos.over {
		return false
	}

	return game.pos.board[0][column] == entity.EmptyCell
}

func (gravityRules) target(game *Game, column, _ int) (int, int, bool) {
	row := game.DropRow(column)
	if row < 0 {
		return 0, 0, false
	}

	return column, row, true
}

func (gravityRules) moves(game *Game) []entity.Move {
	moves := make([]entity.Move, 0, game.config.Width)
	for column := 0; column < game.config.Width; column++ {
		if game.IsValidMove(column, 0) {
			moves = append(moves, entity.Move{X: column, Y: game.DropRow(column)})
		}
	}

	return moves
}

// DropPiece - drops the current player's mark into a column.
func (that *Game) DropPiece(column int) bool {
	return that.MakeMove(column, 0)
}

// DropRow - the row a piece dropped into column would land on, -1 when the column is full or out of range.
func (that *Game) DropRow(column int) int {
	if column < 0 || column >= that.config.Width {
		return -1
	}

	for row := that.config.Height - 1; row >= 0; row-- {
		if that.pos.board[row][column] == entity.EmptyCell {
			return row
		}
	}

	return -1
}

func (that *Game) IsColumnFull(column int) bool {
	if column < 0 || column >= that.config.Width {
		return true
	}

	return that.pos.board[0][column] != entity.EmptyCell
}

// ColumnHeight - number of stacked marks counted from the bottom up to the first gap.
func (that *Game) ColumnHeight(column int) int {
	if column < 0 || column >= that.config.Width {
		return 0
	}

	height := 0
	for row := that.config.Height - 1; row >= 0; row-- {
		if that.pos.board[row][column] == entity.EmptyCell {
			break
		}
		height++
	}

	return height
}
