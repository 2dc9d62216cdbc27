// Package server exposes the command resolver over a WebSocket
// gateway. Each client sends JSON request frames and receives one JSON
// response frame per request; connections are independent, so one chat
// adapter process can multiplex many end users over a single socket.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/miskatonicsociety/keeperbot/internal/command"
	"github.com/miskatonicsociety/keeperbot/internal/config"
	"github.com/miskatonicsociety/keeperbot/internal/logger"
)

// Request is one inbound chat message frame.
type Request struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Text     string `json:"text"`
}

// Response is the resolver outcome for one request. Handled is false
// when the text was not a command of this plugin, so the adapter can
// route it elsewhere.
type Response struct {
	OK      bool   `json:"ok"`
	Handled bool   `json:"handled"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Server is the WebSocket gateway in front of a Resolver.
type Server struct {
	addr     string
	resolver *command.Resolver
	upgrader websocket.Upgrader

	mu         sync.Mutex
	httpServer *http.Server
	shutdown   bool
}

// NewServer creates a gateway listening on cfg.Server.Addr.
func NewServer(cfg *config.Config, resolver *command.Resolver) *Server {
	allowed := cfg.Server.AllowedOrigins
	s := &Server{
		addr:     cfg.Server.Addr,
		resolver: resolver,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if originAllowed(allowed, origin) {
				return true
			}
			logger.Warning("WebSocket connection rejected - origin not allowed",
				"origin", origin,
				"remote_addr", r.RemoteAddr)
			return false
		},
	}
	return s
}

// originAllowed checks an Origin header against the configured list.
// An empty origin (non-browser client) is always allowed.
func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// Handler returns the HTTP mux serving the gateway endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Start runs the gateway until Shutdown or a listener error.
func (s *Server) Start() error {
	s.mu.Lock()
	s.httpServer = &http.Server{Addr: s.addr, Handler: s.Handler()}
	srv := s.httpServer
	s.mu.Unlock()

	logger.Info("WebSocket gateway listening", "addr", s.addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the listener. Safe to call more than once.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return
	}
	s.shutdown = true
	if s.httpServer != nil {
		s.httpServer.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	go s.handleConnection(conn)
}

// handleConnection serves one adapter connection. Frames are handled
// in arrival order so per-connection command ordering is preserved.
func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	logger.Info("Adapter connected", "remote_addr", remote)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			logger.Info("Adapter disconnected", "remote_addr", remote, "error", err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			s.write(conn, Response{Error: "malformed request frame"})
			continue
		}

		result := s.resolver.Execute(req.UserID, req.Nickname, req.Text)
		s.write(conn, Response{
			OK:      result.OK,
			Handled: result.Handled,
			Message: result.Message,
		})
	}
}

func (s *Server) write(conn *websocket.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Error("Failed to marshal response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logger.Warning("Failed to write response", "error", err)
	}
}
