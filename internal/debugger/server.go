// Package debugger lets an editor drive a running game remotely: trigger hot
// reloads, pause and resume, and receive the hot reload logs.
package debugger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/zeusync/hotreload/internal/core/events/bus"
	"github.com/zeusync/hotreload/internal/core/hotreload"
	"github.com/zeusync/hotreload/internal/core/observability/log"
)

const (
	CommandHotReload = "hotReload"
	CommandPause     = "pause"
	CommandPlay      = "play"

	ReplyLogs     = "hotReloader.logs"
	ReplyStarted  = "hotReloader.started"
	ReplyFinished = "hotReloader.finished"
)

// Message is the envelope of every websocket frame, in both directions.
type Message struct {
	Command string `json:"command"`
	Payload any    `json:"payload,omitempty"`
}

type Reloader interface {
	HotReload(ctx context.Context) ([]hotreload.LogEntry, error)
}

type Pauser interface {
	Pause(paused bool)
}

type Config struct {
	ListenAddr   string
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:   ":3030",
		WriteTimeout: 10 * time.Second,
	}
}

// Server is the remote debugger endpoint.
type Server struct {
	config   Config
	reloader Reloader
	game     Pauser
	logger   log.Log
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	events  bus.EventBus
	subs    []bus.Subscription
}

type Option func(*Server)

func WithLogger(l log.Log) Option {
	return func(s *Server) { s.logger = l }
}

// WithEventBus forwards hot reload lifecycle events to every connected client.
func WithEventBus(b bus.EventBus) Option {
	return func(s *Server) { s.events = b }
}

func NewServer(config Config, reloader Reloader, game Pauser, opts ...Option) *Server {
	s := &Server{
		config:   config,
		reloader: reloader,
		game:     game,
		logger:   log.Nop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The editor connects from a local page with its own origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.events != nil {
		s.forwardEvents()
	}
	return s
}

func (s *Server) forwardEvents() {
	forward := map[string]string{
		hotreload.EventStarted:  ReplyStarted,
		hotreload.EventFinished: ReplyFinished,
	}
	for eventType, command := range forward {
		sub, err := s.events.Subscribe(eventType, func(e bus.Event) error {
			s.broadcast(Message{Command: command, Payload: e.Data()})
			return nil
		})
		if err != nil {
			s.logger.Error("cannot forward hot reload events", log.String("event", eventType), log.Error(err))
			continue
		}
		s.subs = append(s.subs, sub)
	}
}

// Routes returns the HTTP handler of the debugger.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Post("/hot-reload", s.hotReload)
	r.Get("/ws", s.serveWS)
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("debugger listening", log.String("addr", s.config.ListenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Close()
		return server.Shutdown(shutdownCtx)
	}
}

// Close drops every websocket client and stops forwarding events.
func (s *Server) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	clients := s.clients
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Cancel()
	}
	for c := range clients {
		_ = c.conn.Close()
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) hotReload(w http.ResponseWriter, r *http.Request) {
	// A reload always runs to completion, even if the caller goes away.
	entries, err := s.reloader.HotReload(context.WithoutCancel(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []hotreload.LogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
