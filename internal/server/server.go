package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjacktable/internal/game"
)

// Server is the websocket presentation boundary. It consumes table
// snapshots and feeds user intents back into the table; every table event
// triggers a snapshot broadcast so clients always render complete states.
type Server struct {
	addr       string
	table      *game.Table
	upgrader   websocket.Upgrader
	logger     *log.Logger
	mu         sync.RWMutex
	conns      map[*Connection]bool
	register   chan *Connection
	unregister chan *Connection
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewServer creates a server for the given table and subscribes it to the
// table's event bus
func NewServer(addr string, table *game.Table, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		addr:  addr,
		table: table,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:     logger.WithPrefix("server"),
		conns:      make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		ctx:        ctx,
		cancel:     cancel,
	}
	table.Bus().Subscribe(s)
	go s.run()
	return s
}

// Router returns the HTTP routes: the websocket endpoint and a health
// check
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	return r
}

// Start runs the connection registry and serves HTTP until ctx is
// cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.Stop()
	}()

	s.logger.Info("starting websocket server", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Stop closes all connections and halts the registry
func (s *Server) Stop() {
	s.cancel()
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.conns[conn] = true
			total := len(s.conns)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.conns[conn]; ok {
				delete(s.conns, conn)
				conn.Close()
			}
			total := len(s.conns)
			s.mu.Unlock()
			s.logger.Info("client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s, s.logger)
	select {
	case s.register <- conn:
	case <-s.ctx.Done():
		conn.Close()
		return
	}
	conn.Start()

	// New clients immediately get the current snapshot.
	if msg, err := SnapshotMessage(s.table.Snapshot()); err == nil {
		conn.Send(msg)
	}
}

// dropConnection unregisters a closed connection without blocking once
// the registry has shut down
func (s *Server) dropConnection(c *Connection) {
	select {
	case s.unregister <- c:
	case <-s.ctx.Done():
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

// OnEvent implements game.EventSubscriber: every table event republishes
// the snapshot to all clients
func (s *Server) OnEvent(event game.Event) {
	s.logger.Debug("table event", "type", event.EventType().String())
	s.broadcastSnapshot()
}

func (s *Server) broadcastSnapshot() {
	msg, err := SnapshotMessage(s.table.Snapshot())
	if err != nil {
		s.logger.Error("failed to build snapshot message", "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.conns {
		conn.Send(msg)
	}
}

// dispatch routes an intent message into the table. Turn-order and phase
// mismatches are expected from stale views and are absorbed; only
// malformed payloads are reported back to the sender.
func (s *Server) dispatch(conn *Connection, msg *Message) {
	var err error

	switch msg.Type {
	case MessageTypeSubmitBet:
		var data SubmitBetData
		if jsonErr := json.Unmarshal(msg.Data, &data); jsonErr != nil {
			conn.sendError("bad_payload", "submit_bet requires seatId and amount")
			return
		}
		err = s.table.SubmitBet(data.SeatID, data.Amount)

	case MessageTypeStartDealing:
		err = s.table.StartDealing()

	case MessageTypeStopDealing:
		s.table.StopDealing()

	case MessageTypeDealNext:
		err = s.table.DealNextCard()

	case MessageTypeHit, MessageTypeStand, MessageTypeDouble:
		var data SeatActionData
		if jsonErr := json.Unmarshal(msg.Data, &data); jsonErr != nil {
			conn.sendError("bad_payload", string(msg.Type)+" requires seatId")
			return
		}
		switch msg.Type {
		case MessageTypeHit:
			err = s.table.Hit(data.SeatID)
		case MessageTypeStand:
			err = s.table.Stand(data.SeatID)
		case MessageTypeDouble:
			err = s.table.Double(data.SeatID)
		}

	case MessageTypeRestart:
		s.table.Restart()

	case MessageTypeStartAutoPlay:
		err = s.table.StartAutoPlay()

	case MessageTypeStopAutoPlay:
		s.table.StopAutoPlay()

	default:
		conn.sendError("unknown_type", "unknown message type "+string(msg.Type))
		return
	}

	if err != nil {
		// Late or out-of-turn intents are normal; log and move on.
		s.logger.Debug("intent absorbed", "type", msg.Type, "error", err)
	}
}
