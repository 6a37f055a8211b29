package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-variants/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxMessageSize = 4096
)

var (
	errMalformedMessage = errors.New("malformed message")
	errUnknownAction    = errors.New("unknown action")
	errSessionRequired  = errors.New("session_id is required")
	errMoveRequired     = errors.New("move is required")
	errSessionForbidden = errors.New("session belongs to another player")
	errInternal         = errors.New("internal error")
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID  string            `json:"session_id,omitempty"`
	Mode       entity.Variant    `json:"mode,omitempty"`
	Difficulty entity.Difficulty `json:"difficulty,omitempty"`
	Move       *entity.Move      `json:"move,omitempty"`
}

type ResponsePayload struct {
	SessionID string          `json:"session_id,omitempty"`
	Game      *entity.Session `json:"game,omitempty"`
	Move      *entity.Move    `json:"move,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type connection struct {
	conn     *websocket.Conn
	playerID string

	writeMu sync.Mutex

	sessionsMu sync.Mutex
	sessions   map[string]struct{}
}

func newConnection(conn *websocket.Conn, playerID string) *connection {
	conn.SetReadLimit(maxMessageSize)

	return &connection{
		conn:     conn,
		playerID: playerID,
		sessions: make(map[string]struct{}),
	}
}

// keepAlive - pings the client until the returned stop function is called; a missing pong fails the next read.
func (that *connection) keepAlive() func() {
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	return func() { close(done) }
}

func (that *connection) readMessage() (*Message, error) {
	_, data, err := that.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	var message Message
	if err = json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedMessage, err)
	}

	return &message, nil
}

func (that *connection) sendMessage(action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err = that.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// sendError - reports err to the client. Errors the client can act on are sent as they are, anything else is hidden.
func (that *connection) sendError(action string, err error) error {
	return that.sendMessage(action, ResponsePayload{Error: publicError(err)})
}

func (that *connection) own(sessionID string) {
	that.sessionsMu.Lock()
	defer that.sessionsMu.Unlock()

	that.sessions[sessionID] = struct{}{}
}

func (that *connection) release(sessionID string) {
	that.sessionsMu.Lock()
	defer that.sessionsMu.Unlock()

	delete(that.sessions, sessionID)
}

func (that *connection) ownedSessions() []string {
	that.sessionsMu.Lock()
	defer that.sessionsMu.Unlock()

	ids := make([]string, 0, len(that.sessions))
	for id := range that.sessions {
		ids = append(ids, id)
	}

	return ids
}

func (that *connection) close() error {
	return that.conn.Close()
}

func publicError(err error) string {
	for _, known := range []error{
		apperror.ErrSessionNotFound,
		apperror.ErrGameFinished,
		apperror.ErrInvalidMove,
		apperror.ErrNotYourTurn,
		apperror.ErrNothingToUndo,
		apperror.ErrNoAvailableMoves,
		errMalformedMessage,
		errUnknownAction,
		errSessionRequired,
		errMoveRequired,
		errSessionForbidden,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return errInternal.Error()
}
