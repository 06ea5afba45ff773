package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type testServer struct {
	*httptest.Server
	sm *game.SessionManager
	cm *ConnectionManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{Rows: 6, Columns: 7, Difficulty: bot.DifficultyEasy}
	sm := game.NewSessionManager(true, 0)
	cm := NewConnectionManager()
	h := NewHandler(cm, sm, cfg)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, sm: sm, cm: cm}
}

func (s *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg domain.ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func expect(t *testing.T, conn *websocket.Conn, msgType string) domain.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg domain.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read %s: %v", msgType, err)
	}
	if msg.Type != msgType {
		t.Fatalf("got %s (%+v), want %s", msg.Type, msg, msgType)
	}
	return msg
}

func TestPlayOverWebSocket(t *testing.T) {
	srv := newTestServer(t)
	conn := srv.dial(t)

	send(t, conn, domain.ClientMessage{Type: MessageNewGame, Rows: 7, Columns: 8, Difficulty: "hard"})
	start := expect(t, conn, domain.MessageGameStart)
	if start.Rows != 7 || start.Columns != 8 || start.Difficulty != string(bot.DifficultyHard) || start.GameID == "" {
		t.Fatalf("unexpected start %+v", start)
	}
	if _, ok := srv.sm.GetSession(start.GameID); !ok {
		t.Fatalf("session %s not registered", start.GameID)
	}

	send(t, conn, domain.ClientMessage{Type: MessageMakeMove, Column: 0})
	human := expect(t, conn, domain.MessageMoveMade)
	if human.Player != int(domain.PlayerA) || human.Column != 0 || human.Row != 6 {
		t.Fatalf("unexpected human move %+v", human)
	}
	reply := expect(t, conn, domain.MessageMoveMade)
	if reply.Player != int(domain.PlayerB) || reply.NextTurn != int(domain.PlayerA) {
		t.Fatalf("unexpected computer reply %+v", reply)
	}

	send(t, conn, domain.ClientMessage{Type: MessageMakeMove, Column: 42})
	if msg := expect(t, conn, domain.MessageError); msg.Message == "" {
		t.Fatalf("error without text")
	}

	send(t, conn, domain.ClientMessage{Type: MessageRestart})
	restarted := expect(t, conn, domain.MessageGameStart)
	if restarted.GameID != start.GameID {
		t.Fatalf("restart changed the game id")
	}

	send(t, conn, domain.ClientMessage{Type: MessageAbandonGame})
	over := expect(t, conn, domain.MessageGameOver)
	if over.Result != domain.OutcomeLose || over.Reason != "abandoned" {
		t.Fatalf("unexpected abandon result %+v", over)
	}
	if _, ok := srv.sm.GetSession(start.GameID); ok {
		t.Fatalf("abandoned session still registered")
	}

	send(t, conn, domain.ClientMessage{Type: MessageMakeMove, Column: 1})
	expect(t, conn, domain.MessageError)
}

func TestWebSocketRejectsBadRequests(t *testing.T) {
	srv := newTestServer(t)
	conn := srv.dial(t)

	send(t, conn, domain.ClientMessage{Type: "teleport"})
	expect(t, conn, domain.MessageError)

	send(t, conn, domain.ClientMessage{Type: MessageNewGame, Rows: 3, Columns: 3})
	expect(t, conn, domain.MessageError)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	expect(t, conn, domain.MessageError)

	// defaults apply when the size is omitted
	send(t, conn, domain.ClientMessage{Type: MessageNewGame})
	start := expect(t, conn, domain.MessageGameStart)
	if start.Rows != 6 || start.Columns != 7 || start.Difficulty != string(bot.DifficultyEasy) {
		t.Fatalf("unexpected defaults %+v", start)
	}
}

func TestDisconnectRemovesSession(t *testing.T) {
	srv := newTestServer(t)
	conn := srv.dial(t)

	send(t, conn, domain.ClientMessage{Type: MessageNewGame})
	start := expect(t, conn, domain.MessageGameStart)
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for {
		_, exists := srv.sm.GetSession(start.GameID)
		if !exists && srv.cm.Count() == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("session or connection left behind after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
