package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/event"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/tictactoe"
)

// handleUserOnline registers the identity behind a fresh connection in
// the presence ledger and answers with the player record.
func (that *Server) handleUserOnline(ctx context.Context, address string, msg *Message) error {
	var payload UserOnlinePayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal player info: %w", err)
	}

	player, err := that.playerService.GetOrCreate(ctx, payload.Player.ID, payload.Player.Name)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	events := that.presence.MarkOnline(player, address)
	that.dispatcher.Dispatch(events)

	that.logger.Info("player online", "playerID", player.ID, "address", address)

	return that.reply(address, msg.Action, player)
}

// handleMakeMove applies one move. Rejections answer the acting caller
// only; accepted moves fan out through the dispatcher.
func (that *Server) handleMakeMove(ctx context.Context, address string, msg *Message) error {
	var payload MakeMovePayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal move info: %w", err)
	}

	_, events, err := that.gamePlayService.MakeTurn(ctx, payload.Game.ID, payload.Player.ID, payload.Cell)
	if err != nil {
		return that.reply(address, event.ActionMoveRejected, MoveRejectedPayload{
			Reason: rejectionReason(err),
		})
	}

	that.dispatcher.Dispatch(events)

	return nil
}

// reply sends a message directly to the originating address, outside the
// dispatcher: rejections and acknowledgements are never broadcast.
func (that *Server) reply(address, action string, payload any) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{
		Action:  action,
		Payload: payloadJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return that.SendTo(address, message)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, apperror.ErrGameFinished):
		return "game_finished"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "cell_occupied"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, tictactoe.ErrInvalidCell):
		return "invalid_cell"
	default:
		return "internal_error"
	}
}
