package entity

import "time"

const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteDeclined = "declined"
)

// Invite is a proposal from one player to another to start a game.
// Status moves from pending to accepted or declined exactly once.
type Invite struct {
	ID         string     `json:"id"`
	FromID     string     `json:"from_id"`
	ToID       string     `json:"to_id"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func NewInvite(id, fromID, toID string) *Invite {
	return &Invite{
		ID:        id,
		FromID:    fromID,
		ToID:      toID,
		Status:    InvitePending,
		CreatedAt: time.Now().UTC(),
	}
}

func (that *Invite) IsPending() bool {
	return that.Status == InvitePending
}

// Resolve marks the invite accepted or declined.
func (that *Invite) Resolve(status string) {
	now := time.Now().UTC()
	that.Status = status
	that.ResolvedAt = &now
}
