package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
)

const (
	MessageNewGame     = "new_game"
	MessageMakeMove    = "make_move"
	MessageRestart     = "restart"
	MessageAbandonGame = "abandon_game"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Defaults       game.SessionOptions
	Upgrader       websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. New games without an explicit
// size or difficulty use the configured defaults.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, cfg *config.Config) *Handler {
	allowedOrigins := cfg.AllowedOrigins
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Defaults: game.SessionOptions{
			Rows:       cfg.Rows,
			Columns:    cfg.Columns,
			Difficulty: cfg.Difficulty,
			Depth:      cfg.SearchDepth,
		},
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	client := h.ConnManager.AddConnection(conn)
	log.Printf("[WS] Client %s connected", client.ID)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.ping(); err != nil {
					return
				}
			}
		}
	}()

	defer func() {
		close(done)
		h.dropSession(client)
		h.ConnManager.RemoveConnection(client.ID)
		log.Printf("[WS] Client %s disconnected", client.ID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client %s disconnected unexpectedly: %v", client.ID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			client.sendError("invalid message format")
			continue
		}

		h.processMessage(client, msg)
	}
}

func (h *Handler) processMessage(client *Client, msg domain.ClientMessage) {
	switch msg.Type {
	case MessageNewGame:
		h.handleNewGame(client, msg)
	case MessageMakeMove:
		h.handleMakeMove(client, msg)
	case MessageRestart:
		h.handleRestart(client)
	case MessageAbandonGame:
		h.handleAbandon(client)
	default:
		log.Printf("[WS] Unknown message type from %s: %q", client.ID, msg.Type)
		client.sendError("unknown message type")
	}
}

func (h *Handler) handleNewGame(client *Client, msg domain.ClientMessage) {
	opts := h.Defaults
	if msg.Rows != 0 || msg.Columns != 0 {
		opts.Rows, opts.Columns = msg.Rows, msg.Columns
	}
	if msg.Difficulty != "" {
		opts.Difficulty = bot.ParseDifficulty(msg.Difficulty)
		opts.Depth = 0
	}
	if err := config.ValidateGrid(opts.Rows, opts.Columns); err != nil {
		client.sendError(err.Error())
		return
	}

	h.dropSession(client)

	session, err := h.SessionManager.CreateSession(opts, client)
	if err != nil {
		client.sendError(err.Error())
		return
	}
	client.setGameID(session.GameID)
}

func (h *Handler) handleMakeMove(client *Client, msg domain.ClientMessage) {
	session, ok := h.currentSession(client)
	if !ok {
		return
	}
	if _, err := session.HandleMove(msg.Column); err != nil {
		client.sendError(err.Error())
	}
}

func (h *Handler) handleRestart(client *Client) {
	session, ok := h.currentSession(client)
	if !ok {
		return
	}
	session.Wait()
	if err := session.Restart(); err != nil {
		client.sendError(err.Error())
	}
}

func (h *Handler) handleAbandon(client *Client) {
	gameID := client.GameID()
	if gameID == "" {
		client.sendError("no active game")
		return
	}
	h.dropSession(client)
	_ = client.SendMessage(gameID, domain.ServerMessage{
		Type:   domain.MessageGameOver,
		GameID: gameID,
		Result: domain.OutcomeLose,
		Reason: "abandoned",
	})
}

func (h *Handler) currentSession(client *Client) (*game.GameSession, bool) {
	session, exists := h.SessionManager.GetSession(client.GameID())
	if !exists {
		client.sendError("no active game")
		return nil, false
	}
	return session, true
}

// dropSession forgets the client's current game, if any, once its pending
// computer reply has been played.
func (h *Handler) dropSession(client *Client) {
	gameID := client.GameID()
	if gameID == "" {
		return
	}
	client.setGameID("")
	if session, exists := h.SessionManager.GetSession(gameID); exists {
		session.Wait()
	}
	if err := h.SessionManager.RemoveSession(gameID); err != nil {
		log.Printf("[WS] Session %s already gone: %v", gameID, err)
	}
}
