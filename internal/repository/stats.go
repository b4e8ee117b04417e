package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	totalGamesKey     = "stats:games:total"
	completedGamesKey = "stats:games:completed"
)

// StatsRepository tracks the lifetime game counters behind the
// statistics snapshot.
type StatsRepository interface {
	IncrementGamesCreated(ctx context.Context) error
	IncrementGamesCompleted(ctx context.Context) error
	Totals(ctx context.Context) (created, completed int64, err error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) IncrementGamesCreated(ctx context.Context) error {
	if err := that.client.Incr(ctx, totalGamesKey).Err(); err != nil {
		return fmt.Errorf("failed to increment total games: %w", err)
	}

	return nil
}

func (that *dbStats) IncrementGamesCompleted(ctx context.Context) error {
	if err := that.client.Incr(ctx, completedGamesKey).Err(); err != nil {
		return fmt.Errorf("failed to increment completed games: %w", err)
	}

	return nil
}

func (that *dbStats) Totals(ctx context.Context) (int64, int64, error) {
	created, err := that.counter(ctx, totalGamesKey)
	if err != nil {
		return 0, 0, err
	}

	completed, err := that.counter(ctx, completedGamesKey)
	if err != nil {
		return 0, 0, err
	}

	return created, completed, nil
}

func (that *dbStats) counter(ctx context.Context, key string) (int64, error) {
	count, err := that.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}

	return count, nil
}
