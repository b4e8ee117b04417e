package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/dispatcher"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/service"
)

// Server exposes the JSON API: invites, record fetches and statistics.
type Server struct {
	logger *slog.Logger

	playerService service.PlayerService
	gameService   service.GameService
	inviteService service.InviteService
	statsService  service.StatsService
	presence      service.PresenceService
	dispatcher    *dispatcher.Dispatcher
}

func New(logger *slog.Logger, playerService service.PlayerService, gameService service.GameService, inviteService service.InviteService, statsService service.StatsService, presence service.PresenceService, d *dispatcher.Dispatcher) *Server {
	return &Server{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		inviteService: inviteService,
		statsService:  statsService,
		presence:      presence,
		dispatcher:    d,
	}
}

func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("POST /api/send-invite", that.handleSendInvite)
	mux.HandleFunc("POST /api/respond-invite", that.handleRespondInvite)
	mux.HandleFunc("GET /api/pending-invites/{userID}", that.handlePendingInvites)
	mux.HandleFunc("GET /api/game/{gameID}", that.handleGetGame)
	mux.HandleFunc("GET /api/user/{userID}", that.handleGetUser)
	mux.HandleFunc("GET /api/online-users", that.handleOnlineUsers)
	mux.HandleFunc("GET /api/statistics", that.handleStatistics)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
