package bot

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
	"github.com/rocketscienceinc/tictactoe-variants/internal/tictactoe"
)

const (
	// maxDepth bounds the search: the root move is depth 0 and positions at depth maxDepth are evaluated statically.
	maxDepth = 6

	winScore    = 100
	centerBonus = 10
)

type search struct {
	mark        entity.Mark
	centerBonus bool
	nodes       int
}

func newSearch(mark entity.Mark, variant entity.Variant, game *tictactoe.Game) *search {
	return &search{
		mark: mark,
		// center control only means something on the plain 3x3 boards
		centerBonus: variant != entity.GravityVariant && game.Width() == 3 && game.Height() == 3,
	}
}

// bestMove - the first move with the strictly highest score, in ValidMoves order.
func (that *search) bestMove(game *tictactoe.Game) (entity.Move, int, bool) {
	moves := game.ValidMoves()
	if len(moves) == 0 {
		return entity.Move{}, 0, false
	}

	best := moves[0]
	bestScore := math.MinInt

	for _, move := range moves {
		score := that.minimax(game, move, 0, that.mark, math.MinInt, math.MaxInt)
		if score > bestScore {
			best = move
			bestScore = score
		}
	}

	return best, bestScore, true
}

// minimax - scores the position after mover plays move. The layer below belongs to
// mover's opponent: it maximizes when that is the bot and minimizes otherwise.
func (that *search) minimax(game *tictactoe.Game, move entity.Move, depth int, mover entity.Mark, alpha, beta int) int {
	next, ok := game.Simulate(move, mover)
	that.nodes++

	if !ok {
		return that.evaluate(game)
	}

	if next.IsOver() || depth >= maxDepth {
		return that.evaluate(next)
	}

	moves := next.ValidMoves()
	if len(moves) == 0 {
		return that.evaluate(next)
	}

	player := mover.Opponent()

	if player == that.mark {
		maxEval := math.MinInt
		for _, reply := range moves {
			eval := that.minimax(next, reply, depth+1, player, alpha, beta)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}

		return maxEval
	}

	minEval := math.MaxInt
	for _, reply := range moves {
		eval := that.minimax(next, reply, depth+1, player, alpha, beta)
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}

	return minEval
}

// evaluate - win and loss dominate; a draw or an open position is level except for the centre.
func (that *search) evaluate(game *tictactoe.Game) int {
	switch game.Winner() {
	case that.mark:
		return winScore
	case that.mark.Opponent():
		return -winScore
	}

	if game.IsOver() {
		return 0
	}

	score := 0
	if that.centerBonus {
		switch game.Cell(1, 1) {
		case that.mark:
			score += centerBonus
		case that.mark.Opponent():
			score -= centerBonus
		}
	}

	return score
}
