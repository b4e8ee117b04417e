package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
)

// ArchiveRepository keeps a durable row per finished game. The archive
// backs the lifetime statistics totals and survives redis flushes.
type ArchiveRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	CountFinished(ctx context.Context) (int64, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) Save(ctx context.Context, game *entity.Game) error {
	query := `INSERT OR REPLACE INTO finished_games
		(id, player_x, player_o, winner, moves, created_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		game.ID,
		game.PlayerX.ID,
		game.PlayerO.ID,
		game.Winner,
		len(game.Moves),
		game.CreatedAt,
		game.LastMoveAt,
	)
	if err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

func (that *dbArchive) CountFinished(ctx context.Context) (int64, error) {
	var count int64

	query := `SELECT COUNT(*) FROM finished_games`
	if err := that.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count archived games: %w", err)
	}

	return count, nil
}
