// Package server exposes one tracked hand over a websocket: clients send
// operator commands and every client receives the full engine state after
// each one. Rendering and hand-history layers are clients; nothing in here
// makes game decisions.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/handtracker/internal/engine"
)

// StateMessage is the broadcast payload pushed after every command.
type StateMessage struct {
	Type  string        `json:"type"`
	State *engine.State `json:"state"`
	Error string        `json:"error,omitempty"`
}

// Server is the websocket front end over a Service.
type Server struct {
	addr     string
	service  *Service
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu    sync.Mutex
	conns map[*conn]bool
}

type conn struct {
	ws *websocket.Conn
	// write guards concurrent broadcasts and replies on one socket.
	write sync.Mutex
}

// New creates a server for the given service.
func New(addr string, service *Service, logger *log.Logger) *Server {
	return &Server{
		addr:    addr,
		service: service,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
		conns:  make(map[*conn]bool),
	}
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{Addr: s.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.addr)
		err := httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		s.closeAll()
		return httpServer.Shutdown(context.Background())
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	c := &conn{ws: ws}
	s.mu.Lock()
	s.conns[c] = true
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info("client connected", "total", total)

	// New clients get the current state immediately.
	s.send(c, StateMessage{Type: "state", State: s.service.State()})

	go s.readLoop(c)
}

func (s *Server) readLoop(c *conn) {
	defer s.drop(c)

	for {
		var cmd Command
		if err := c.ws.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Error("read failed", "error", err)
			}
			return
		}

		state, err := s.service.Apply(cmd)
		if err != nil {
			s.logger.Warn("rejected command", "op", cmd.Op, "error", err)
			s.send(c, StateMessage{Type: "error", Error: err.Error()})
			continue
		}
		s.broadcast(StateMessage{Type: "state", State: state})
	}
}

// broadcast pushes a message to every connected client.
func (s *Server) broadcast(msg StateMessage) {
	s.mu.Lock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		s.send(c, msg)
	}
}

func (s *Server) send(c *conn, msg StateMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshal failed", "error", err)
		return
	}
	c.write.Lock()
	err = c.ws.WriteMessage(websocket.TextMessage, payload)
	c.write.Unlock()
	if err != nil {
		s.drop(c)
	}
}

func (s *Server) drop(c *conn) {
	s.mu.Lock()
	if !s.conns[c] {
		s.mu.Unlock()
		return
	}
	delete(s.conns, c)
	total := len(s.conns)
	s.mu.Unlock()

	_ = c.ws.Close()
	s.logger.Info("client disconnected", "total", total)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		_ = c.ws.Close()
	}
	s.conns = make(map[*conn]bool)
}
