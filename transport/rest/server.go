package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type statsService interface {
	GetStats(ctx context.Context, playerID string) (*entity.Stats, error)
	ResetStats(ctx context.Context, playerID string) error
}

type Server struct {
	logger *slog.Logger
	stats  statsService
	engine *gin.Engine
}

// New - builds the router. metricsHandler is mounted at /metrics when it is not nil.
func New(logger *slog.Logger, stats statsService, metricsHandler http.Handler) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		stats:  stats,
		engine: gin.New(),
	}

	server.engine.Use(gin.Recovery(), requestLogger(server.logger))

	server.engine.GET("/ping", server.ping)
	server.engine.GET("/healthz", server.liveness)

	if metricsHandler != nil {
		server.engine.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := server.engine.Group("/api")
	{
		api.GET("/modes", server.listModes)
		api.GET("/modes/:variant", server.getMode)
		api.GET("/stats/:playerID", server.getStats)
		api.DELETE("/stats/:playerID", server.resetStats)
	}

	return server
}

func (that *Server) Handler() http.Handler {
	return that.engine
}

// Start - serves HTTP on port until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return serve(ctx, srv)
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		c.Next()

		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(started),
		)
	}
}
