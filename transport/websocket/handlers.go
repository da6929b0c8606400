package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, c *client, msg *Message) error {
	session, err := that.gameUseCase.NewGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	c.sessionID = session.ID

	return that.sendSession(c, msg.Action, session)
}

func (that *Server) handleConnect(ctx context.Context, c *client, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payload.ID == "" {
		return fmt.Errorf("%w: id is required", apperror.ErrInvalidArgument)
	}

	session, err := that.gameUseCase.GetGame(ctx, payload.ID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	c.sessionID = session.ID

	return that.sendSession(c, msg.Action, session)
}

func (that *Server) handleCellClick(ctx context.Context, c *client, msg *Message) error {
	if err := requireSession(c); err != nil {
		return err
	}

	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payload.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrInvalidArgument)
	}

	session, err := that.gameUseCase.ClickCell(ctx, c.sessionID, *payload.Cell)
	if err != nil {
		return fmt.Errorf("failed to click cell: %w", err)
	}

	return that.sendSession(c, msg.Action, session)
}

func (that *Server) handleHistoryJump(ctx context.Context, c *client, msg *Message) error {
	if err := requireSession(c); err != nil {
		return err
	}

	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payload.Move == nil {
		return fmt.Errorf("%w: move is required", apperror.ErrInvalidArgument)
	}

	session, err := that.gameUseCase.JumpTo(ctx, c.sessionID, *payload.Move)
	if err != nil {
		return fmt.Errorf("failed to jump: %w", err)
	}

	return that.sendSession(c, msg.Action, session)
}

func (that *Server) handleHistorySort(ctx context.Context, c *client, msg *Message) error {
	if err := requireSession(c); err != nil {
		return err
	}

	session, err := that.gameUseCase.ToggleSort(ctx, c.sessionID)
	if err != nil {
		return fmt.Errorf("failed to toggle sort: %w", err)
	}

	return that.sendSession(c, msg.Action, session)
}

func (that *Server) sendSession(c *client, action string, session *entity.Session) error {
	state := entity.Render(session.State)

	return that.sendMessage(c, action, ResponsePayload{
		ID:    session.ID,
		State: &state,
	})
}

func requireSession(c *client) error {
	if c.sessionID == "" {
		return fmt.Errorf("%w: no game on this connection", apperror.ErrSessionNotFound)
	}

	return nil
}

func decodePayload(msg *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%w: failed to unmarshal payload: %v", apperror.ErrInvalidArgument, err)
	}

	return payload, nil
}
