package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
)

type PlayerService interface {
	GetOrCreate(ctx context.Context, id, name string) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	UpdatePlayer(ctx context.Context, player *entity.Player) error
	ApplyResult(ctx context.Context, id, result string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	IncrementTotal(ctx context.Context) error
}

type playerService struct {
	playerRepo playerRepo
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

// GetOrCreate returns the player record, creating it on first contact.
func (that *playerService) GetOrCreate(ctx context.Context, id, name string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err == nil {
		return player, nil
	}

	if !errors.Is(err, apperror.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	player = entity.NewPlayer(id, name)
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	if err = that.playerRepo.IncrementTotal(ctx); err != nil {
		return nil, fmt.Errorf("failed to count new player: %w", err)
	}

	return player, nil
}

func (that *playerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *playerService) UpdatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

// ApplyResult records a finished-game outcome against the player's
// cumulative statistics.
func (that *playerService) ApplyResult(ctx context.Context, id, result string) error {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get player by id: %w", err)
	}

	player.ApplyResult(result)

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player stats: %w", err)
	}

	return nil
}
