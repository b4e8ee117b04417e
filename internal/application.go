package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/config"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/dispatcher"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/repository"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/service"
	"github.com/rocketscienceinc/tictactoe-pro-backend/transport/rest"
	"github.com/rocketscienceinc/tictactoe-pro-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(redisStorage)
	gameRepo := repository.NewGameRepository(redisStorage)
	inviteRepo := repository.NewInviteRepository(redisStorage)
	statsRepo := repository.NewStatsRepository(redisStorage)
	archiveRepo := repository.NewArchiveRepository(sqliteStorage.Connection)

	playerService := service.NewPlayerService(playerRepo)
	gameService := service.NewGameService(gameRepo, statsRepo)
	gamePlayService := service.NewGamePlayService(logger, playerService, gameService, archiveRepo)
	inviteService := service.NewInviteService(playerService, gameService, inviteRepo)
	presenceService := service.NewPresenceService()
	statsService := service.NewStatsService(statsRepo, playerRepo, gameRepo, presenceService)

	wsServer := websocket.New(logger, playerService, gamePlayService, presenceService)
	eventDispatcher := dispatcher.New(logger, wsServer, presenceService)
	wsServer.SetDispatcher(eventDispatcher)

	restServer := rest.New(logger, playerService, gameService, inviteService, statsService, presenceService, eventDispatcher)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
