package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

const (
	sessionCookie   = "user_session"
	shutdownTimeout = 5 * time.Second
)

type gameService interface {
	NewGame(ctx context.Context, playerID string, variant entity.Variant, difficulty entity.Difficulty) (*entity.Session, error)
	MakeTurn(ctx context.Context, sessionID string, x, y int) (*entity.Session, error)
	Undo(ctx context.Context, sessionID string) (*entity.Session, error)
	Reset(ctx context.Context, sessionID string) (*entity.Session, error)
	GetState(ctx context.Context, sessionID string) (*entity.Session, error)
	EndGame(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger   *slog.Logger
	games    gameService
	upgrader websocket.Upgrader
	engine   *gin.Engine

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameService) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		engine: gin.New(),

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameUndo] = server.handleGameUndo
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameLeave] = server.handleGameLeave

	server.engine.Use(gin.Recovery())
	server.engine.GET("/ws", server.upgradeToWebSocket)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.engine
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.engine,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

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

// upgradeToWebSocket - upgrades the connection and serves its messages until the client goes away.
func (that *Server) upgradeToWebSocket(c *gin.Context) {
	log := that.logger.With("method", "upgradeToWebSocket")

	playerID, header := that.playerSession(c)

	wsConn, err := that.upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(wsConn, playerID)
	defer that.handleDisconnect(conn)

	log.Info("WebSocket connection established", "playerID", playerID)

	if err = that.handleMessages(c.Request.Context(), conn); err != nil {
		log.Debug("connection closed", "playerID", playerID, "error", err)
	}
}

// playerSession - the player id from the query or the session cookie. A new cookie is issued when neither is set.
func (that *Server) playerSession(c *gin.Context) (string, http.Header) {
	if playerID := c.Query("player_id"); playerID != "" {
		return playerID, nil
	}

	if cookie, err := c.Request.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:    sessionCookie,
		Value:   uuid.NewString(),
		Expires: time.Now().Add(24 * time.Hour),
		Path:    "/ws",
	}

	return cookie.Value, http.Header{"Set-Cookie": {cookie.String()}}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "playerID", conn.playerID)

	stopPing := conn.keepAlive()
	defer stopPing()

	for {
		message, err := conn.readMessage()
		if errors.Is(err, errMalformedMessage) {
			log.Warn("failed to unmarshal message", "error", err)

			if err = conn.sendError("", errMalformedMessage); err != nil {
				return err
			}

			continue
		}

		if err != nil {
			return err
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = conn.sendError(message.Action, errUnknownAction); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, conn, message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// handleDisconnect - ends the sessions the connection started.
func (that *Server) handleDisconnect(conn *connection) {
	log := that.logger.With("method", "handleDisconnect", "playerID", conn.playerID)

	for _, sessionID := range conn.ownedSessions() {
		if err := that.games.EndGame(context.Background(), sessionID); err != nil {
			log.Debug("session already gone", "sessionID", sessionID, "error", err)
		}
	}

	_ = conn.close()

	log.Info("player disconnected")
}
