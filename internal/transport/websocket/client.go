package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/pkg/uid"
)

const writeWait = 10 * time.Second

// Client is one browser connection. It owns at most one game session at a
// time and receives that session's notifications.
type Client struct {
	ID   string
	conn *websocket.Conn

	// conn supports one concurrent writer; the bot reply goroutine and the
	// pinger both write.
	writeMu sync.Mutex

	mu     sync.Mutex
	gameID string
}

// SendMessage implements game.Notifier.
func (c *Client) SendMessage(gameID string, message domain.ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *Client) sendError(text string) {
	_ = c.SendMessage(c.GameID(), domain.ServerMessage{Type: domain.MessageError, Message: text})
}

func (c *Client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *Client) GameID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameID
}

func (c *Client) setGameID(gameID string) {
	c.mu.Lock()
	c.gameID = gameID
	c.mu.Unlock()
}

// ConnectionManager handles active WebSocket connections thread-safely
type ConnectionManager struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{clients: make(map[string]*Client)}
}

// AddConnection registers conn under a fresh client ID.
func (cm *ConnectionManager) AddConnection(conn *websocket.Conn) *Client {
	client := &Client{ID: uid.GenerateClientID(), conn: conn}

	cm.mu.Lock()
	cm.clients[client.ID] = client
	cm.mu.Unlock()
	return client
}

// RemoveConnection closes and forgets a client.
func (cm *ConnectionManager) RemoveConnection(clientID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if client, exists := cm.clients[clientID]; exists {
		client.conn.Close()
		delete(cm.clients, clientID)
	}
}

func (cm *ConnectionManager) GetClient(clientID string) (*Client, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	client, exists := cm.clients[clientID]
	return client, exists
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// CloseAll drops every connection; used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for id, client := range cm.clients {
		client.conn.Close()
		delete(cm.clients, id)
	}
}
