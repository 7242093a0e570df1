package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sandevgo/campinnova/internal/config"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/chat"
	"github.com/sandevgo/campinnova/internal/service/command"
	"github.com/sandevgo/campinnova/internal/service/escalation"
	"github.com/sandevgo/campinnova/internal/service/relay"
	"github.com/sandevgo/campinnova/internal/service/telemetry"
	"github.com/sandevgo/campinnova/internal/service/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completerFunc func(context.Context, []core.Turn) (string, error)

func (f completerFunc) Complete(ctx context.Context, turns []core.Turn) (string, error) {
	return f(ctx, turns)
}

type testServer struct {
	*httptest.Server
	metrics *telemetry.Metrics

	mu   sync.Mutex
	seen [][]core.Turn
}

func (ts *testServer) calls() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.seen)
}

func newTestServer(t *testing.T, complete completerFunc) *testServer {
	t.Helper()
	ts := &testServer{}

	recording := completerFunc(func(ctx context.Context, turns []core.Turn) (string, error) {
		ts.mu.Lock()
		ts.seen = append(ts.seen, turns)
		ts.mu.Unlock()
		return complete(ctx, turns)
	})

	reg := prometheus.NewRegistry()
	ts.metrics = telemetry.NewMetrics(reg)

	rules := triage.Default()
	sessions := chat.NewSessions(chat.NewManager(chat.Config{}, chat.Deps{
		Classifier: rules,
		Escalation: escalation.NewController(rules, nil),
		Relay:      relay.New(recording, time.Second),
		Telemetry:  ts.metrics,
	}))

	srv := NewServer(&config.ServerConfig{Addr: ":0", ShutdownTimeout: time.Second}, Deps{
		Completer: recording,
		Sessions:  sessions,
		Router:    command.NewChatRouter(sessions),
		Gatherer:  reg,
	})
	ts.Server = httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postChat(t *testing.T, url, body string) (int, relay.Response) {
	t.Helper()
	resp, err := http.Post(url+"/api/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out relay.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleChat(t *testing.T) {
	ts := newTestServer(t, func(_ context.Context, turns []core.Turn) (string, error) {
		if turns[len(turns)-1].Content == "fail" {
			return "", errors.New("upstream returned 503")
		}
		return "Try short study sprints.", nil
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       relay.Response
	}{
		{
			name:       "success",
			body:       `{"messages":[{"role":"user","content":"How do I manage exam stress?"}]}`,
			wantStatus: http.StatusOK,
			want:       relay.Response{Response: "Try short study sprints."},
		},
		{
			name:       "no messages",
			body:       `{"messages":[]}`,
			wantStatus: http.StatusBadRequest,
			want:       relay.Response{Error: "No message provided"},
		},
		{
			name:       "bad json",
			body:       `{"messages":`,
			wantStatus: http.StatusBadRequest,
			want:       relay.Response{Error: "invalid request body"},
		},
		{
			name:       "upstream failure",
			body:       `{"messages":[{"role":"user","content":"fail"}]}`,
			wantStatus: http.StatusInternalServerError,
			want:       relay.Response{Error: "upstream returned 503"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := postChat(t, ts.URL, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestHandleChat_RelayClientRoundTrip(t *testing.T) {
	ts := newTestServer(t, func(context.Context, []core.Turn) (string, error) {
		return "Try short study sprints.", nil
	})

	reply, err := relay.NewClient(ts.URL+"/api/chat").Complete(context.Background(), []core.Turn{
		{Role: core.RoleUser, Content: "How do I manage exam stress?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Try short study sprints.", reply)
}

func TestHealthAndCORS(t *testing.T) {
	ts := newTestServer(t, func(context.Context, []core.Turn) (string, error) { return "", nil })

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/chat", nil)
	pre, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer pre.Body.Close()
	assert.Equal(t, http.StatusNoContent, pre.StatusCode)
}

func dial(t *testing.T, ts *testServer) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketChat(t *testing.T) {
	ts := newTestServer(t, func(context.Context, []core.Turn) (string, error) {
		return "Try short study sprints.", nil
	})
	conn := dial(t, ts)

	var hello outboundFrame
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, frameHistory, hello.Type)
	require.Len(t, hello.Messages, 1)
	assert.Equal(t, chat.Greeting, hello.Messages[0].Text)

	require.NoError(t, conn.WriteJSON(inboundFrame{Text: "How do I manage exam stress?"}))
	var turn outboundFrame
	require.NoError(t, conn.ReadJSON(&turn))
	assert.Equal(t, frameTurn, turn.Type)
	assert.Equal(t, hello.SessionID, turn.SessionID)
	require.Len(t, turn.Messages, 2)
	assert.Equal(t, core.SenderUser, turn.Messages[0].Sender)
	assert.Equal(t, "Try short study sprints.", turn.Messages[1].Text)
	require.NotNil(t, turn.Escalation)
	assert.False(t, turn.Escalation.Triggered)

	require.NoError(t, conn.WriteJSON(inboundFrame{Text: "I want to die"}))
	var crisis outboundFrame
	require.NoError(t, conn.ReadJSON(&crisis))
	assert.True(t, crisis.Escalation.Triggered)
	assert.Contains(t, crisis.Messages[1].Text, escalation.CrisisMessage)

	require.NoError(t, conn.WriteJSON(inboundFrame{Text: "  "}))
	var empty outboundFrame
	require.NoError(t, conn.ReadJSON(&empty))
	assert.Equal(t, frameError, empty.Type)
	assert.Equal(t, chat.ErrEmptyMessage.Error(), empty.Error)

	require.NoError(t, conn.WriteJSON(inboundFrame{Text: "/new"}))
	var reset outboundFrame
	require.NoError(t, conn.ReadJSON(&reset))
	assert.Equal(t, frameCommand, reset.Type)
	assert.Equal(t, chat.Greeting, reset.Text)
	assert.NotEqual(t, hello.SessionID, reset.SessionID)

	// Only the relay turn reached the completer.
	assert.Equal(t, 1, ts.calls())
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, func(context.Context, []core.Turn) (string, error) { return "ok", nil })
	conn := dial(t, ts)

	var hello outboundFrame
	require.NoError(t, conn.ReadJSON(&hello))
	require.NoError(t, conn.WriteJSON(inboundFrame{Text: "I feel hopeless"}))
	var turn outboundFrame
	require.NoError(t, conn.ReadJSON(&turn))

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `campinnova_turns_total{risk="moderate",sentiment="med"} 1`)
}
