package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

var errStorage = errors.New("storage down")

type fakeStats struct {
	stats   map[string]*entity.Stats
	err     error
	deleted []string
}

func (that *fakeStats) GetStats(_ context.Context, playerID string) (*entity.Stats, error) {
	if that.err != nil {
		return nil, that.err
	}

	if stats, ok := that.stats[playerID]; ok {
		return stats, nil
	}

	return entity.NewStats(playerID), nil
}

func (that *fakeStats) ResetStats(_ context.Context, playerID string) error {
	if that.err != nil {
		return that.err
	}

	that.deleted = append(that.deleted, playerID)

	return nil
}

func newTestServer(stats *fakeStats) *Server {
	gin.SetMode(gin.TestMode)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tictactoe_moves_total 1\n"))
	})

	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), stats, metrics)
}

func doRequest(t *testing.T, server *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, nil)
	server.Handler().ServeHTTP(recorder, request)

	return recorder
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(&fakeStats{})

	t.Run("Ping", func(t *testing.T) {
		response := doRequest(t, server, http.MethodGet, "/ping")

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "pong", response.Body.String())
	})

	t.Run("Liveness", func(t *testing.T) {
		response := doRequest(t, server, http.MethodGet, "/healthz")

		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"status":"ok"}`, response.Body.String())
	})

	t.Run("Metrics", func(t *testing.T) {
		response := doRequest(t, server, http.MethodGet, "/metrics")

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "tictactoe_moves_total")
	})
}

func TestServer_Modes(t *testing.T) {
	server := newTestServer(&fakeStats{})

	t.Run("List modes", func(t *testing.T) {
		// When: the modes are listed
		response := doRequest(t, server, http.MethodGet, "/api/modes")

		// Then: the four variants come back in order
		require.Equal(t, http.StatusOK, response.Code)

		var body struct {
			Modes []entity.VariantConfig `json:"modes"`
		}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
		require.Len(t, body.Modes, 4)
		assert.Equal(t, entity.StandardVariant, body.Modes[0].Variant)
		assert.Equal(t, entity.GravityVariant, body.Modes[3].Variant)
	})

	t.Run("Get one mode", func(t *testing.T) {
		// When: the gravity mode is requested
		response := doRequest(t, server, http.MethodGet, "/api/modes/gravity")

		// Then: its board geometry is returned
		require.Equal(t, http.StatusOK, response.Code)

		var config entity.VariantConfig
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &config))
		assert.Equal(t, 3, config.Width)
		assert.Equal(t, 6, config.Height)
		assert.Equal(t, 4, config.WinCondition)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		response := doRequest(t, server, http.MethodGet, "/api/modes/hexagonal")

		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}

func TestServer_Stats(t *testing.T) {
	t.Run("Get stats", func(t *testing.T) {
		// Given: a player with one win in three games
		stats := entity.NewStats("player-1")
		stats.Record(entity.GameResult{Variant: entity.FogVariant, PlayerMark: entity.PlayerX, Winner: entity.PlayerX})
		stats.Record(entity.GameResult{Variant: entity.FogVariant, PlayerMark: entity.PlayerX, Winner: entity.PlayerO})
		stats.Record(entity.GameResult{Variant: entity.StandardVariant, PlayerMark: entity.PlayerX})
		server := newTestServer(&fakeStats{stats: map[string]*entity.Stats{"player-1": stats}})

		// When: the stats are requested
		response := doRequest(t, server, http.MethodGet, "/api/stats/player-1")

		// Then: counters, favorite mode and win rate are returned
		require.Equal(t, http.StatusOK, response.Code)

		var body struct {
			GamesPlayed  int            `json:"games_played"`
			GamesWon     int            `json:"games_won"`
			FavoriteMode entity.Variant `json:"favorite_mode"`
			WinRate      int            `json:"win_rate"`
		}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
		assert.Equal(t, 3, body.GamesPlayed)
		assert.Equal(t, 1, body.GamesWon)
		assert.Equal(t, entity.FogVariant, body.FavoriteMode)
		assert.Equal(t, 33, body.WinRate)
	})

	t.Run("Storage failure", func(t *testing.T) {
		server := newTestServer(&fakeStats{err: errStorage})

		response := doRequest(t, server, http.MethodGet, "/api/stats/player-1")

		assert.Equal(t, http.StatusInternalServerError, response.Code)
	})

	t.Run("Reset stats", func(t *testing.T) {
		// Given: a stats service
		stats := &fakeStats{}
		server := newTestServer(stats)

		// When: the player's stats are reset
		response := doRequest(t, server, http.MethodDelete, "/api/stats/player-1")

		// Then: the service deleted them
		assert.Equal(t, http.StatusNoContent, response.Code)
		assert.Equal(t, []string{"player-1"}, stats.deleted)
	})
}
