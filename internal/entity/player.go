package entity

import "time"

const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Stats     Stats     `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats holds the cumulative record of a player across all finished games.
type Stats struct {
	GamesPlayed   int `json:"games_played"`
	GamesWon      int `json:"games_won"`
	GamesLost     int `json:"games_lost"`
	GamesDrawn    int `json:"games_drawn"`
	WinStreak     int `json:"win_streak"`
	BestWinStreak int `json:"best_win_streak"`
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// ApplyResult updates the player record after a finished game.
// A loss or a draw resets the current win streak.
func (that *Player) ApplyResult(result string) {
	that.Stats.GamesPlayed++

	switch result {
	case ResultWin:
		that.Stats.GamesWon++
		that.Stats.WinStreak++
		if that.Stats.WinStreak > that.Stats.BestWinStreak {
			that.Stats.BestWinStreak = that.Stats.WinStreak
		}
	case ResultLoss:
		that.Stats.GamesLost++
		that.Stats.WinStreak = 0
	case ResultDraw:
		that.Stats.GamesDrawn++
		that.Stats.WinStreak = 0
	}
}
