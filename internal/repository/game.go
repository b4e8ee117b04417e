package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
)

const activeGamesKey = "games:active"

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	MarkActive(ctx context.Context, id string) error
	MarkInactive(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := "game:" + game.ID
	if err = that.client.Set(ctx, gameKey, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	gameKey := "game:" + id

	response, err := that.client.Get(ctx, gameKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) MarkActive(ctx context.Context, id string) error {
	if err := that.client.SAdd(ctx, activeGamesKey, id).Err(); err != nil {
		return fmt.Errorf("failed to add game to active set: %w", err)
	}

	return nil
}

func (that *dbGame) MarkInactive(ctx context.Context, id string) error {
	if err := that.client.SRem(ctx, activeGamesKey, id).Err(); err != nil {
		return fmt.Errorf("failed to remove game from active set: %w", err)
	}

	return nil
}

func (that *dbGame) CountActive(ctx context.Context) (int64, error) {
	count, err := that.client.SCard(ctx, activeGamesKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count active games: %w", err)
	}

	return count, nil
}
