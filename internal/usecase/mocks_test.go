package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

type mockStatsRepo struct {
	mock.Mock
}

func (that *mockStatsRepo) CreateOrUpdate(ctx context.Context, stats *entity.Stats) error {
	args := that.Called(ctx, stats)

	return args.Error(0)
}

func (that *mockStatsRepo) GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error) {
	args := that.Called(ctx, playerID)

	stats, _ := args.Get(0).(*entity.Stats)

	return stats, args.Error(1)
}

func (that *mockStatsRepo) DeleteByPlayerID(ctx context.Context, playerID string) error {
	args := that.Called(ctx, playerID)

	return args.Error(0)
}

type fakeMetrics struct {
	mu       sync.Mutex
	moves    map[string]int
	outcomes map[string]int
	searches int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		moves:    make(map[string]int),
		outcomes: make(map[string]int),
	}
}

func (that *fakeMetrics) ObserveMove(_ entity.Variant, actor string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.moves[actor]++
}

func (that *fakeMetrics) ObserveGameFinished(_ entity.Variant, outcome string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.outcomes[outcome]++
}

func (that *fakeMetrics) ObserveSearch(entity.Variant, entity.Difficulty, time.Duration, int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.searches++
}
