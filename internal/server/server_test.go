package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/miskatonicsociety/keeperbot/internal/character"
	"github.com/miskatonicsociety/keeperbot/internal/command"
	"github.com/miskatonicsociety/keeperbot/internal/config"
	"github.com/miskatonicsociety/keeperbot/internal/dice"
)

type memBackend struct {
	records map[string]*character.Record
}

func (b *memBackend) Load() (map[string]*character.Record, error) { return b.records, nil }
func (b *memBackend) Save(records map[string]*character.Record) error {
	b.records = records
	return nil
}
func (b *memBackend) Close() error { return nil }

func newTestServer() *Server {
	cfg := config.DefaultConfig()
	store := character.NewStore(&memBackend{})
	roller := dice.NewRollerFunc(func(n int) int { return 0 })
	return NewServer(cfg, command.NewResolver(store, cfg, roller))
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	data, _ := json.Marshal(req)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("bad response frame: %v", err)
	}
	return resp
}

func TestGatewayCommandRoundTrip(t *testing.T) {
	s := newTestServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	resp := roundTrip(t, conn, Request{UserID: "u1", Nickname: "小明", Text: "/r 2d6"})
	if !resp.OK || !resp.Handled {
		t.Fatalf("roll over gateway failed: %+v", resp)
	}
	if !strings.Contains(resp.Message, "小明") {
		t.Errorf("message missing nickname:\n%s", resp.Message)
	}
}

func TestGatewayNonCommandPassesThrough(t *testing.T) {
	s := newTestServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	resp := roundTrip(t, conn, Request{UserID: "u1", Nickname: "小明", Text: "普通聊天"})
	if resp.Handled {
		t.Errorf("plain chat should not be handled: %+v", resp)
	}
}

func TestGatewayStatePersistsAcrossFrames(t *testing.T) {
	s := newTestServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	resp := roundTrip(t, conn, Request{UserID: "u1", Nickname: "小明", Text: "/st 力量80"})
	if !resp.OK {
		t.Fatalf("import failed: %+v", resp)
	}

	resp = roundTrip(t, conn, Request{UserID: "u1", Nickname: "小明", Text: "/查询角色"})
	if !resp.OK || !strings.Contains(resp.Message, "80") {
		t.Errorf("imported value not visible on next frame: %+v", resp)
	}
}

func TestGatewayMalformedFrame(t *testing.T) {
	s := newTestServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == "" {
		t.Errorf("malformed frame should report an error: %+v", resp)
	}

	// Connection stays usable afterwards
	good := roundTrip(t, conn, Request{UserID: "u1", Nickname: "小明", Text: "/help"})
	if !good.OK {
		t.Errorf("connection should survive a malformed frame: %+v", good)
	}
}

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		allowed []string
		origin  string
		want    bool
	}{
		{[]string{"*"}, "http://example.com", true},
		{[]string{"http://example.com"}, "http://example.com", true},
		{[]string{"http://example.com"}, "http://evil.com", false},
		{[]string{}, "http://example.com", false},
		{[]string{}, "", true},
	}
	for _, tt := range tests {
		if got := originAllowed(tt.allowed, tt.origin); got != tt.want {
			t.Errorf("originAllowed(%v, %q) = %v, want %v", tt.allowed, tt.origin, got, tt.want)
		}
	}
}

func TestShutdownCalledTwice(t *testing.T) {
	s := newTestServer()
	s.Shutdown()
	s.Shutdown()
}
