package pkg

import "github.com/google/uuid"

// GenerateGameID - generates a unique identifier for a game.
func GenerateGameID() string {
	return "game_" + uuid.NewString()
}

// GenerateInviteID - generates a unique identifier for an invite.
func GenerateInviteID() string {
	return "invite_" + uuid.NewString()
}

// GenerateAddress - generates a unique address for a connection.
func GenerateAddress() string {
	return uuid.NewString()
}
