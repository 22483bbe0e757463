package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// waitForClients polls until the hub reports n clients or the deadline passes.
func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients, got %d", n, hub.ClientCount())
}

func dial(t *testing.T, serverURL string, header http.Header) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	return conn
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.clients == nil {
		t.Error("Hub clients map is nil")
	}
	if hub.IsStopped() {
		t.Error("New hub should not be stopped")
	}
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	if !hub.BroadcastEvent(Event{Type: "catalog:reloaded"}) {
		t.Error("Expected broadcast to succeed on a running hub")
	}
	if count := hub.ClientCount(); count != 0 {
		t.Errorf("Expected 0 clients, got %d", count)
	}
}

func TestHub_DeliversEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dial(t, server.URL, nil)
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.BroadcastEvent(Event{Type: "catalog:reloaded", Data: map[string]int{"stratagems": 12}})

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}

	var received struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(message, &received); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if received.Type != "catalog:reloaded" {
		t.Errorf("Expected type catalog:reloaded, got %s", received.Type)
	}
	if received.Data["stratagems"] != 12 {
		t.Errorf("Expected stratagems=12, got %d", received.Data["stratagems"])
	}
}

func TestHub_ReplaysLastEventOnConnect(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	hub.BroadcastEvent(Event{Type: "catalog:reload_failed"})
	hub.BroadcastEvent(Event{Type: "catalog:reloaded", Data: map[string]int{"stratagems": 7}})

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dial(t, server.URL, nil)
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read replayed message: %v", err)
	}

	var received Event
	if err := json.Unmarshal(message, &received); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if received.Type != "catalog:reloaded" {
		t.Errorf("Expected the latest event catalog:reloaded, got %s", received.Type)
	}
}

func TestHub_ClientDisconnect(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dial(t, server.URL, nil)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_Stop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dial(t, server.URL, nil)
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()
	waitForClients(t, hub, 0)

	deadline := time.Now().Add(2 * time.Second)
	for !hub.IsStopped() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !hub.IsStopped() {
		t.Fatal("Hub did not stop")
	}
	if hub.BroadcastEvent(Event{Type: "catalog:reloaded"}) {
		t.Error("Broadcast on a stopped hub should fail")
	}

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 after stop, got %d", resp.StatusCode)
	}
}

func TestHub_OriginCheck(t *testing.T) {
	hub := NewHub("http://allowed.example")
	go hub.Run()
	defer hub.Stop()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://evil.example"}})
	if err == nil {
		t.Fatal("Expected upgrade from a foreign origin to fail")
	}
	if resp != nil && resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", resp.StatusCode)
	}

	conn := dial(t, server.URL, http.Header{"Origin": {"http://allowed.example"}})
	defer conn.Close()
	waitForClients(t, hub, 1)
}

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no list", nil, "http://any.example", true},
		{"wildcard", []string{"*"}, "http://any.example", true},
		{"listed", []string{"http://a.example"}, "http://a.example", true},
		{"unlisted", []string{"http://a.example"}, "http://b.example", false},
		{"no origin header", []string{"http://a.example"}, "", true},
		{"port wildcard", []string{"http://localhost:*"}, "http://localhost:5173", true},
		{"port wildcard other host", []string{"http://localhost:*"}, "http://127.0.0.1:5173", false},
		{"same origin", []string{"http://a.example"}, "http://example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := originChecker(tt.allowed)(r); got != tt.want {
				t.Errorf("originChecker() = %v, want %v", got, tt.want)
			}
		})
	}
}
