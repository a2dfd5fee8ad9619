package web

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func dial(t *testing.T, s *Server, query string) (*websocket.Conn, context.Context) {
	t.Helper()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn, ctx
}

type envelope struct {
	frame
	Message string `json:"message"`
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) envelope {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return env
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, msg string) {
	t.Helper()
	if err := conn.Write(ctx, websocket.MessageText, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// readUntil reads messages until one matches.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, match func(envelope) bool) envelope {
	t.Helper()
	for {
		env := readMessage(t, ctx, conn)
		if match(env) {
			return env
		}
	}
}

func TestSessionSendsIdleFrameOnConnect(t *testing.T) {
	conn, ctx := dial(t, newTestServer(t, nil, nil), "")

	env := readMessage(t, ctx, conn)
	if env.Type != "frame" || env.State != "idle" {
		t.Fatalf("first message = %+v, expected an idle frame", env)
	}
	if env.Width != 400 || env.Height != 600 {
		t.Errorf("bounds = %vx%v, expected 400x600", env.Width, env.Height)
	}
	if env.Actor.Y != 300 || env.Actor.Size != 70 {
		t.Errorf("actor = %+v, expected centred size-70 seal", env.Actor)
	}
	if len(env.Obstacles) != 0 {
		t.Errorf("idle frame should have no obstacles, got %d", len(env.Obstacles))
	}
}

func TestSessionJumpStartsTicking(t *testing.T) {
	conn, ctx := dial(t, newTestServer(t, nil, nil), "")
	readMessage(t, ctx, conn)

	send(t, ctx, conn, `{"type":"jump"}`)

	running := readUntil(t, ctx, conn, func(e envelope) bool { return e.State == "running" })
	if running.Score != 0 {
		t.Errorf("score = %d, expected 0 at start", running.Score)
	}

	ticked := readUntil(t, ctx, conn, func(e envelope) bool { return e.Tick > 0 })
	if ticked.State == "idle" {
		t.Errorf("ticking frame should not be idle")
	}
	if len(ticked.Obstacles) == 0 && ticked.State == "running" {
		t.Errorf("a running field should have spawned an obstacle")
	}
}

func TestSessionRejectsBadInput(t *testing.T) {
	conn, ctx := dial(t, newTestServer(t, nil, nil), "")
	readMessage(t, ctx, conn)

	tests := []struct {
		msg  string
		want string
	}{
		{`not json`, "malformed message"},
		{`{"type":"dance"}`, `unknown message type "dance"`},
		{`{"type":"resize","width":0,"height":600}`, "seal: invalid bounds"},
	}
	for _, tc := range tests {
		send(t, ctx, conn, tc.msg)
		env := readUntil(t, ctx, conn, func(e envelope) bool { return e.Type == "error" })
		if !strings.Contains(env.Message, tc.want) {
			t.Errorf("%s: error = %q, expected it to contain %q", tc.msg, env.Message, tc.want)
		}
	}
}

func TestSessionResize(t *testing.T) {
	conn, ctx := dial(t, newTestServer(t, nil, nil), "")
	readMessage(t, ctx, conn)

	send(t, ctx, conn, `{"type":"resize","width":800,"height":600}`)
	env := readUntil(t, ctx, conn, func(e envelope) bool { return e.Type == "frame" && e.Width == 800 })
	if env.Height != 600 {
		t.Errorf("height = %v, expected 600", env.Height)
	}
}
