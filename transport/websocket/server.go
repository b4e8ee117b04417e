package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/dispatcher"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-pro-backend/internal/service"
)

var ErrAddressUnknown = errors.New("address is not connected")

// connection wraps one client socket. Writes are serialized per
// connection because gorilla allows a single concurrent writer.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (that *connection) write(message []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.WriteMessage(websocket.TextMessage, message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Server is the realtime transport: it owns the connection registry
// (addresses) and doubles as the dispatcher's publisher.
type Server struct {
	logger *slog.Logger

	playerService   service.PlayerService
	gamePlayService service.GamePlayService
	presence        service.PresenceService
	dispatcher      *dispatcher.Dispatcher

	upgrader websocket.Upgrader

	mu       sync.RWMutex
	conns    map[string]*connection
	handlers map[string]func(ctx context.Context, address string, message *Message) error
}

func New(logger *slog.Logger, playerService service.PlayerService, gamePlayService service.GamePlayService, presence service.PresenceService) *Server {
	server := &Server{
		logger:          logger,
		playerService:   playerService,
		gamePlayService: gamePlayService,
		presence:        presence,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		conns:    make(map[string]*connection),
		handlers: make(map[string]func(context.Context, string, *Message) error),
	}

	server.handlers["user_online"] = server.handleUserOnline
	server.handlers["make_move"] = server.handleMakeMove

	return server
}

// SetDispatcher wires the event dispatcher. The dispatcher publishes
// through this server, so it is constructed after it.
func (that *Server) SetDispatcher(d *dispatcher.Dispatcher) {
	that.dispatcher = d
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
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

// serveConnection upgrades the request and runs the read loop until the
// client goes away. Disconnect drives the presence ledger.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	address := pkg.GenerateAddress()
	conn := &connection{ws: ws}

	that.mu.Lock()
	that.conns[address] = conn
	that.mu.Unlock()

	log.Info("WebSocket connection established", "address", address)

	defer func() {
		that.mu.Lock()
		delete(that.conns, address)
		that.mu.Unlock()

		_ = ws.Close()

		events := that.presence.MarkOffline(address)
		that.dispatcher.Dispatch(events)

		log.Info("WebSocket connection closed", "address", address)
	}()

	that.readLoop(ctx, address, ws)
}

func (that *Server) readLoop(ctx context.Context, address string, ws *websocket.Conn) {
	log := that.logger.With("method", "readLoop", "address", address)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, address, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// SendTo delivers a message to one connected address.
func (that *Server) SendTo(address string, message []byte) error {
	that.mu.RLock()
	conn, ok := that.conns[address]
	that.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrAddressUnknown, address)
	}

	return conn.write(message)
}

// Broadcast delivers a message to every connected address.
func (that *Server) Broadcast(message []byte) error {
	that.mu.RLock()
	conns := make([]*connection, 0, len(that.conns))
	for _, conn := range that.conns {
		conns = append(conns, conn)
	}
	that.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.write(message); err != nil {
			that.logger.Debug("failed to broadcast to connection", "error", err)
		}
	}

	return nil
}
