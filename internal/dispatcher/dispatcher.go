package dispatcher

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/event"
)

// Publisher is the transport primitive the dispatcher delivers through.
// Sends are best-effort: a dead address is the publisher's problem, not
// the engine's.
type Publisher interface {
	SendTo(address string, message []byte) error
	Broadcast(message []byte) error
}

type addressResolver interface {
	AddressOf(playerID string) (string, bool)
}

// Message is the wire envelope for every outbound event.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Dispatcher fans state-change events out to connected clients. Delivery
// is fire-and-forget: the authoritative state lives in the store, and a
// client that misses an event re-fetches by identifier.
type Dispatcher struct {
	logger    *slog.Logger
	publisher Publisher
	presence  addressResolver
}

func New(logger *slog.Logger, publisher Publisher, presence addressResolver) *Dispatcher {
	return &Dispatcher{
		logger:    logger,
		publisher: publisher,
		presence:  presence,
	}
}

// Dispatch delivers each event according to its scope. Player-scoped
// events whose target is offline are dropped silently.
func (that *Dispatcher) Dispatch(events []event.Event) {
	log := that.logger.With("method", "Dispatch")

	for _, evt := range events {
		message, err := marshalMessage(evt)
		if err != nil {
			log.Error("failed to marshal event", "action", evt.Action, "error", err)
			continue
		}

		switch evt.Scope {
		case event.ScopeBroadcast:
			if err = that.publisher.Broadcast(message); err != nil {
				log.Error("failed to broadcast event", "action", evt.Action, "error", err)
			}
		case event.ScopePlayer:
			address, ok := that.presence.AddressOf(evt.PlayerID)
			if !ok {
				log.Debug("player offline, event dropped", "action", evt.Action, "playerID", evt.PlayerID)
				continue
			}
			that.sendTo(address, evt.Action, message)
		case event.ScopeAddress:
			that.sendTo(evt.Address, evt.Action, message)
		}
	}
}

func (that *Dispatcher) sendTo(address, action string, message []byte) {
	if err := that.publisher.SendTo(address, message); err != nil {
		// Best effort: the address may have gone stale between the
		// presence lookup and the send.
		that.logger.Debug("failed to send event", "action", action, "address", address, "error", err)
	}
}

func marshalMessage(evt event.Event) ([]byte, error) {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{
		Action:  evt.Action,
		Payload: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return message, nil
}
