package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/pkg"
)

type GameService interface {
	CreateGame(ctx context.Context, playerX, playerO *entity.Player) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeactivateGame(ctx context.Context, gameID string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	MarkActive(ctx context.Context, id string) error
	MarkInactive(ctx context.Context, id string) error
}

type statsRepo interface {
	IncrementGamesCreated(ctx context.Context) error
	IncrementGamesCompleted(ctx context.Context) error
}

type gameService struct {
	gameRepo  gameRepo
	statsRepo statsRepo
}

func NewGameService(gameRepo gameRepo, statsRepo statsRepo) GameService {
	return &gameService{
		gameRepo:  gameRepo,
		statsRepo: statsRepo,
	}
}

// CreateGame starts a new match. The first player owns X and moves first.
func (that *gameService) CreateGame(ctx context.Context, playerX, playerO *entity.Player) (*entity.Game, error) {
	game := entity.NewGame(pkg.GenerateGameID(), playerX, playerO)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := that.gameRepo.MarkActive(ctx, game.ID); err != nil {
		return nil, fmt.Errorf("failed to mark game active: %w", err)
	}

	if err := that.statsRepo.IncrementGamesCreated(ctx); err != nil {
		return nil, fmt.Errorf("failed to count new game: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// DeactivateGame removes the game from the active index and bumps the
// completed-games counter. The record itself stays fetchable.
func (that *gameService) DeactivateGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.MarkInactive(ctx, gameID); err != nil {
		return fmt.Errorf("failed to mark game inactive: %w", err)
	}

	if err := that.statsRepo.IncrementGamesCompleted(ctx); err != nil {
		return fmt.Errorf("failed to count completed game: %w", err)
	}

	return nil
}
