package entity

import "time"

const (
	StatusActive   = "active"
	StatusFinished = "finished"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// Move is one recorded turn. The move log is append-only.
type Move struct {
	PlayerID string    `json:"player_id"`
	Mark     string    `json:"mark"`
	Cell     int       `json:"cell"`
	PlayedAt time.Time `json:"played_at"`
}

// Game is the canonical record of one match. The player listed first
// always owns X and moves first.
type Game struct {
	ID          string    `json:"id"`
	PlayerX     *Player   `json:"player_x"`
	PlayerO     *Player   `json:"player_o"`
	Board       [9]string `json:"board"`
	Turn        string    `json:"turn,omitempty"`
	Status      string    `json:"status"`
	Winner      string    `json:"winner,omitempty"`
	WinningLine *[3]int   `json:"winning_line,omitempty"`
	Moves       []Move    `json:"moves"`
	CreatedAt   time.Time `json:"created_at"`
	LastMoveAt  time.Time `json:"last_move_at"`
}

func NewGame(id string, playerX, playerO *Player) *Game {
	now := time.Now().UTC()

	return &Game{
		ID:         id,
		PlayerX:    playerX,
		PlayerO:    playerO,
		Board:      [9]string{},
		Turn:       PlayerX,
		Status:     StatusActive,
		CreatedAt:  now,
		LastMoveAt: now,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

// MarkOf returns the mark owned by the given player, or false when the
// player is not a participant of this game.
func (that *Game) MarkOf(playerID string) (string, bool) {
	switch {
	case that.PlayerX != nil && that.PlayerX.ID == playerID:
		return PlayerX, true
	case that.PlayerO != nil && that.PlayerO.ID == playerID:
		return PlayerO, true
	default:
		return "", false
	}
}

// Opponent returns the other participant of the game.
func (that *Game) Opponent(playerID string) *Player {
	if that.PlayerX != nil && that.PlayerX.ID == playerID {
		return that.PlayerO
	}
	return that.PlayerX
}

// RecordMove appends a move to the log and bumps the last-move timestamp.
func (that *Game) RecordMove(playerID, mark string, cell int) {
	now := time.Now().UTC()

	that.Moves = append(that.Moves, Move{
		PlayerID: playerID,
		Mark:     mark,
		Cell:     cell,
		PlayedAt: now,
	})
	that.LastMoveAt = now
}

// ParticipantIDs returns both player IDs in X, O order.
func (that *Game) ParticipantIDs() []string {
	ids := make([]string, 0, 2)
	if that.PlayerX != nil {
		ids = append(ids, that.PlayerX.ID)
	}
	if that.PlayerO != nil {
		ids = append(ids, that.PlayerO.ID)
	}
	return ids
}
