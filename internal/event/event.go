package event

// Delivery scope of an outbound event. Player-scoped events are resolved
// to a live address through the presence ledger at dispatch time and are
// dropped silently when the player is offline.
type Scope int

const (
	ScopeBroadcast Scope = iota
	ScopePlayer
	ScopeAddress
)

// Wire actions understood by connected clients.
const (
	ActionMoveMade          = "move_made"
	ActionGameFinished      = "game_finished"
	ActionGameInvite        = "game_invite"
	ActionInviteAccepted    = "invite_accepted"
	ActionGameStarted       = "game_started"
	ActionUserStatusChanged = "user_status_changed"
	ActionOnlineUsers       = "online_users"
	ActionMoveRejected      = "move_rejected"
)

// Event is one notification produced by a state-mutating operation.
// The engine only produces events; delivery belongs to the dispatcher.
type Event struct {
	Scope    Scope
	PlayerID string
	Address  string
	Action   string
	Payload  any
}

func Broadcast(action string, payload any) Event {
	return Event{Scope: ScopeBroadcast, Action: action, Payload: payload}
}

func ToPlayer(playerID, action string, payload any) Event {
	return Event{Scope: ScopePlayer, PlayerID: playerID, Action: action, Payload: payload}
}

func ToAddress(address, action string, payload any) Event {
	return Event{Scope: ScopeAddress, Address: address, Action: action, Payload: payload}
}
