package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-variants/internal/config"
	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
	"github.com/rocketscienceinc/tictactoe-variants/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-variants/internal/repository"
	"github.com/rocketscienceinc/tictactoe-variants/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-variants/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-variants/transport/rest"
	"github.com/rocketscienceinc/tictactoe-variants/transport/websocket"
)

const cleanupInterval = time.Minute

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameMetrics := metrics.New(prometheus.DefaultRegisterer)
	statsRepo := repository.NewStatsRepository(redisStorage)
	gameManager := usecase.NewGameManager(logger, statsRepo, gameMetrics, usecase.Settings{
		DefaultVariant:    entity.Variant(conf.Game.DefaultVariant),
		DefaultDifficulty: entity.Difficulty(conf.Game.DefaultDifficulty),
		ThinkDelay:        conf.Game.ThinkDelay,
		ThinkJitter:       conf.Game.ThinkJitter,
		SessionTTL:        conf.Game.SessionTTL,
	})

	go gameManager.RunCleanup(ctx, cleanupInterval)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameManager, promhttp.Handler())
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
