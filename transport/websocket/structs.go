package websocket

import "encoding/json"

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type UserOnlinePayload struct {
	Player struct {
		ID   string `json:"id"`
		Name string `json:"name,omitempty"`
	} `json:"player"`
}

type MakeMovePayload struct {
	Game struct {
		ID string `json:"id"`
	} `json:"game"`
	Player struct {
		ID string `json:"id"`
	} `json:"player"`
	Cell int `json:"cell"`
}

type MoveRejectedPayload struct {
	Reason string `json:"reason"`
}
