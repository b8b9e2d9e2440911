package debugger

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/hotreload/internal/core/hotreload"
	"github.com/zeusync/hotreload/internal/core/observability/log"
)

// client is one websocket connection. Writes are serialized since a connection
// supports a single concurrent writer.
type client struct {
	conn         *websocket.Conn
	writeMu      sync.Mutex
	writeTimeout time.Duration
}

func (c *client) send(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.conn.WriteJSON(msg)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	c := &client{conn: conn, writeTimeout: s.config.WriteTimeout}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.logger.Debug("debugger client connected", log.String("remote", r.RemoteAddr))

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		_ = conn.Close()
		s.logger.Debug("debugger client disconnected", log.String("remote", r.RemoteAddr))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", log.Error(err))
			}
			return
		}
		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("malformed debugger message", log.Error(err))
			continue
		}
		s.handle(c, msg)
	}
}

func (s *Server) handle(c *client, msg Message) {
	switch msg.Command {
	case CommandHotReload:
		entries, err := s.reloader.HotReload(context.Background())
		if err != nil {
			entries = []hotreload.LogEntry{{Kind: hotreload.KindFatal, Message: err.Error()}}
		}
		if entries == nil {
			entries = []hotreload.LogEntry{}
		}
		if err = c.send(Message{Command: ReplyLogs, Payload: entries}); err != nil {
			s.logger.Warn("cannot send hot reload logs", log.Error(err))
		}
	case CommandPause:
		s.game.Pause(true)
	case CommandPlay:
		s.game.Pause(false)
	default:
		s.logger.Warn("unknown debugger command", log.String("command", msg.Command))
	}
}

func (s *Server) broadcast(msg Message) {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.send(msg); err != nil {
			s.logger.Debug("dropping debugger message", log.String("command", msg.Command), log.Error(err))
		}
	}
}
