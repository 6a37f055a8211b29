package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

const namespace = "tictactoe"

const (
	ActorHuman = "human"
	ActorBot   = "bot"
)

const (
	OutcomeWon   = "won"
	OutcomeLost  = "lost"
	OutcomeDrawn = "drawn"
)

type Metrics struct {
	moves          *prometheus.CounterVec
	finishedGames  *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	searchNodes    *prometheus.HistogramVec
}

// New - registers the game collectors on registerer.
func New(registerer prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "moves_total",
				Help:      "Moves applied to games",
			},
			[]string{"variant", "actor"},
		),
		finishedGames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "games_finished_total",
				Help:      "Finished games by outcome for the human player",
			},
			[]string{"variant", "outcome"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "bot_search_duration_seconds",
				Help:      "Duration of full bot searches",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"variant", "difficulty"},
		),
		searchNodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "bot_search_nodes",
				Help:      "Positions visited by full bot searches",
				Buckets:   prometheus.ExponentialBuckets(10, 4, 10),
			},
			[]string{"variant", "difficulty"},
		),
	}

	registerer.MustRegister(metrics.moves, metrics.finishedGames, metrics.searchDuration, metrics.searchNodes)

	return metrics
}

func (that *Metrics) ObserveMove(variant entity.Variant, actor string) {
	that.moves.WithLabelValues(string(variant), actor).Inc()
}

func (that *Metrics) ObserveGameFinished(variant entity.Variant, outcome string) {
	that.finishedGames.WithLabelValues(string(variant), outcome).Inc()
}

func (that *Metrics) ObserveSearch(variant entity.Variant, difficulty entity.Difficulty, duration time.Duration, nodes int) {
	that.searchDuration.WithLabelValues(string(variant), string(difficulty)).Observe(duration.Seconds())
	that.searchNodes.WithLabelValues(string(variant), string(difficulty)).Observe(float64(nodes))
}

// Outcome - the label for a finished game seen from playerMark.
func Outcome(state *entity.GameState, playerMark entity.Mark) string {
	switch {
	case state.IsDraw():
		return OutcomeDrawn
	case state.Winner == playerMark:
		return OutcomeWon
	default:
		return OutcomeLost
	}
}
