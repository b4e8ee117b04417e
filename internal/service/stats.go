package service

import (
	"context"
	"fmt"
)

// Statistics is the live snapshot exposed by the API.
type Statistics struct {
	TotalUsers  int64 `json:"total_users"`
	OnlineUsers int   `json:"online_users"`
	ActiveGames int64 `json:"active_games"`
	TotalGames  int64 `json:"total_games"`
	GamesPlayed int64 `json:"games_played"`
}

type StatsService interface {
	Statistics(ctx context.Context) (*Statistics, error)
}

type statsCountersRepo interface {
	Totals(ctx context.Context) (created, completed int64, err error)
}

type playerCounterRepo interface {
	CountTotal(ctx context.Context) (int64, error)
}

type activeGamesRepo interface {
	CountActive(ctx context.Context) (int64, error)
}

type statsService struct {
	statsRepo  statsCountersRepo
	playerRepo playerCounterRepo
	gameRepo   activeGamesRepo
	presence   PresenceService
}

func NewStatsService(statsRepo statsCountersRepo, playerRepo playerCounterRepo, gameRepo activeGamesRepo, presence PresenceService) StatsService {
	return &statsService{
		statsRepo:  statsRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		presence:   presence,
	}
}

func (that *statsService) Statistics(ctx context.Context) (*Statistics, error) {
	totalUsers, err := that.playerRepo.CountTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}

	activeGames, err := that.gameRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active games: %w", err)
	}

	totalGames, gamesPlayed, err := that.statsRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read game counters: %w", err)
	}

	return &Statistics{
		TotalUsers:  totalUsers,
		OnlineUsers: len(that.presence.Online()),
		ActiveGames: activeGames,
		TotalGames:  totalGames,
		GamesPlayed: gamesPlayed,
	}, nil
}
