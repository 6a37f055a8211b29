package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
)

const (
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameUndo  = "game:undo"
	actionGameReset = "game:reset"
	actionGameState = "game:state"
	actionGameLeave = "game:leave"
)

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleNewGame", "playerID", conn.playerID)

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	session, err := that.games.NewGame(ctx, conn.playerID, payloadReq.Mode, payloadReq.Difficulty)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return conn.sendError(msg.Action, err)
	}

	conn.own(session.ID)

	log.Info("game created", "sessionID", session.ID)

	return conn.sendMessage(msg.Action, ResponsePayload{SessionID: session.ID, Game: session})
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn", "playerID", conn.playerID)

	payloadReq, err := decodeSessionPayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	if payloadReq.Move == nil {
		return conn.sendError(msg.Action, errMoveRequired)
	}

	if err = that.checkOwner(ctx, conn, payloadReq.SessionID); err != nil {
		log.Warn("turn refused", "sessionID", payloadReq.SessionID, "error", err)
		return conn.sendError(msg.Action, err)
	}

	session, err := that.games.MakeTurn(ctx, payloadReq.SessionID, payloadReq.Move.X, payloadReq.Move.Y)
	if err != nil {
		log.Info("turn rejected", "sessionID", payloadReq.SessionID, "error", err)

		return conn.sendMessage(msg.Action, ResponsePayload{
			SessionID: payloadReq.SessionID,
			Game:      session,
			Error:     publicError(err),
		})
	}

	return conn.sendMessage(msg.Action, ResponsePayload{
		SessionID: session.ID,
		Game:      session,
		Move:      session.BotMove,
	})
}

func (that *Server) handleGameUndo(ctx context.Context, conn *connection, msg *Message) error {
	return that.handleSessionAction(ctx, conn, msg, that.games.Undo)
}

func (that *Server) handleGameReset(ctx context.Context, conn *connection, msg *Message) error {
	return that.handleSessionAction(ctx, conn, msg, that.games.Reset)
}

func (that *Server) handleGameState(ctx context.Context, conn *connection, msg *Message) error {
	return that.handleSessionAction(ctx, conn, msg, that.games.GetState)
}

func (that *Server) handleGameLeave(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGameLeave", "playerID", conn.playerID)

	payloadReq, err := decodeSessionPayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	if err = that.checkOwner(ctx, conn, payloadReq.SessionID); err != nil {
		log.Warn("leave refused", "sessionID", payloadReq.SessionID, "error", err)
		return conn.sendError(msg.Action, err)
	}

	conn.release(payloadReq.SessionID)

	if err = that.games.EndGame(ctx, payloadReq.SessionID); err != nil {
		return conn.sendError(msg.Action, err)
	}

	log.Info("player left", "sessionID", payloadReq.SessionID)

	return conn.sendMessage(msg.Action, ResponsePayload{SessionID: payloadReq.SessionID})
}

// handleSessionAction - the shape shared by the actions that only need a session id.
func (that *Server) handleSessionAction(
	ctx context.Context,
	conn *connection,
	msg *Message,
	action func(ctx context.Context, sessionID string) (*entity.Session, error),
) error {
	payloadReq, err := decodeSessionPayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	if err = that.checkOwner(ctx, conn, payloadReq.SessionID); err != nil {
		return conn.sendError(msg.Action, err)
	}

	session, err := action(ctx, payloadReq.SessionID)
	if err != nil {
		return conn.sendMessage(msg.Action, ResponsePayload{
			SessionID: payloadReq.SessionID,
			Game:      session,
			Error:     publicError(err),
		})
	}

	return conn.sendMessage(msg.Action, ResponsePayload{SessionID: session.ID, Game: session})
}

// checkOwner - only the player who started a session may act on it.
func (that *Server) checkOwner(ctx context.Context, conn *connection, sessionID string) error {
	session, err := that.games.GetState(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.PlayerID != conn.playerID {
		return errSessionForbidden
	}

	return nil
}

func decodePayload(msg *Message) (*RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedMessage, err)
	}

	return &payload, nil
}

func decodeSessionPayload(msg *Message) (*RequestPayload, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payload.SessionID == "" {
		return nil, errSessionRequired
	}

	return payload, nil
}
