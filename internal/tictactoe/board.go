package tictactoe

import "github.com/rocketscienceinc/tictactoe-variants/internal/entity"

// The largest board any variant uses: fog is 5 wide, gravity is 6 tall.
const (
	MaxWidth  = 5
	MaxHeight = 6
)

// grid is indexed [y][x]. Cells outside the variant's width and height stay zero.
type grid[T any] [MaxHeight][MaxWidth]T

// directions are right, down, down-right and down-left.
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{-1, 1},
}

// position is everything undo has to restore. All grids are arrays, so assigning a position copies it.
type position struct {
	board   grid[entity.Mark]
	ages    grid[int]
	visible grid[bool]

	current entity.Mark
	winner  entity.Mark
	over    bool
	turn    int

	history []entity.HistoryEntry
}

// snapshot is a position without its history; undo truncates the live history back to historyLen.
type snapshot struct {
	pos        position
	historyLen int
}

// checkLine - counts same-player marks from (x, y) along (dx, dy), stopping at winCondition.
func (that *Game) checkLine(x, y, dx, dy int, player entity.Mark) bool {
	count := 0
	for i := 0; i < that.config.WinCondition; i++ {
		cx, cy := x+i*dx, y+i*dy
		if !that.inBounds(cx, cy) || that.pos.board[cy][cx] != player {
			break
		}
		count++
	}

	return count >= that.config.WinCondition
}

// checkGameStatus - the first complete line wins; a full board without one is a draw.
// It only ever ends the game, it never reopens it.
func (that *Game) checkGameStatus() {
	for y := 0; y < that.config.Height; y++ {
		for x := 0; x < that.config.Width; x++ {
			player := that.pos.board[y][x]
			if player == entity.EmptyCell {
				continue
			}

			for _, dir := range directions {
				if that.checkLine(x, y, dir[0], dir[1], player) {
					that.pos.winner = player
					that.pos.over = true
					return
				}
			}
		}
	}

	if that.isBoardFull() {
		that.pos.over = true
	}
}

func (that *Game) isBoardFull() bool {
	for y := 0; y < that.config.Height; y++ {
		for x := 0; x < that.config.Width; x++ {
			if that.pos.board[y][x] == entity.EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Game) inBounds(x, y int) bool {
	return x >= 0 && x < that.config.Width && y >= 0 && y < that.config.Height
}
