package service

import (
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/event"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// OnlineEntry is one row of the presence ledger.
type OnlineEntry struct {
	PlayerID string    `json:"player_id"`
	Name     string    `json:"name,omitempty"`
	Address  string    `json:"-"`
	LastSeen time.Time `json:"last_seen"`
	Status   string    `json:"status"`
}

// PresenceService tracks which players are currently reachable and on
// which address. The ledger is process-lifetime state: entries exist only
// while the player is connected.
type PresenceService interface {
	MarkOnline(player *entity.Player, address string) []event.Event
	MarkOffline(address string) []event.Event
	AddressOf(playerID string) (string, bool)
	Online() []OnlineEntry
}

type presenceService struct {
	mu        sync.RWMutex
	byPlayer  map[string]OnlineEntry
	byAddress map[string]string
}

func NewPresenceService() PresenceService {
	return &presenceService{
		byPlayer:  make(map[string]OnlineEntry),
		byAddress: make(map[string]string),
	}
}

// MarkOnline upserts the player's entry. A player holds at most one live
// address: a reconnect replaces the previous one, last writer wins.
func (that *presenceService) MarkOnline(player *entity.Player, address string) []event.Event {
	that.mu.Lock()

	if prev, ok := that.byPlayer[player.ID]; ok {
		delete(that.byAddress, prev.Address)
	}

	that.byPlayer[player.ID] = OnlineEntry{
		PlayerID: player.ID,
		Name:     player.Name,
		Address:  address,
		LastSeen: time.Now().UTC(),
		Status:   StatusOnline,
	}
	that.byAddress[address] = player.ID

	snapshot := that.onlineLocked()
	that.mu.Unlock()

	return []event.Event{
		event.Broadcast(event.ActionUserStatusChanged, StatusChangedPayload{
			PlayerID: player.ID,
			Status:   StatusOnline,
		}),
		event.ToAddress(address, event.ActionOnlineUsers, snapshot),
	}
}

// MarkOffline removes the entry owning the given address. An address with
// no owner (already replaced by a reconnect) is a no-op.
func (that *presenceService) MarkOffline(address string) []event.Event {
	that.mu.Lock()

	playerID, ok := that.byAddress[address]
	if !ok {
		that.mu.Unlock()
		return nil
	}

	delete(that.byAddress, address)
	delete(that.byPlayer, playerID)
	that.mu.Unlock()

	return []event.Event{
		event.Broadcast(event.ActionUserStatusChanged, StatusChangedPayload{
			PlayerID: playerID,
			Status:   StatusOffline,
		}),
	}
}

func (that *presenceService) AddressOf(playerID string) (string, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.byPlayer[playerID]
	if !ok {
		return "", false
	}

	return entry.Address, true
}

func (that *presenceService) Online() []OnlineEntry {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.onlineLocked()
}

func (that *presenceService) onlineLocked() []OnlineEntry {
	entries := make([]OnlineEntry, 0, len(that.byPlayer))
	for _, entry := range that.byPlayer {
		entries = append(entries, entry)
	}

	return entries
}

type StatusChangedPayload struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
}
