package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
	got   []core.Turn
	delay time.Duration
	panic bool
}

func (s *stubCompleter) Complete(ctx context.Context, turns []core.Turn) (string, error) {
	s.got = turns
	if s.panic {
		panic("boom")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.reply, s.err
}

func window() []core.Message {
	return []core.Message{
		{ID: 1, Text: "Hi, what's on your mind?", Sender: core.SenderBot},
		{ID: 2, Text: "How do I manage exam stress?", Sender: core.SenderUser},
	}
}

func TestRelay_Reply(t *testing.T) {
	tests := []struct {
		name     string
		stub     *stubCompleter
		timeout  time.Duration
		want     string
		wantOK   bool
		contains []string
	}{
		{
			name:   "success",
			stub:   &stubCompleter{reply: "Try short study sprints."},
			want:   "Try short study sprints.",
			wantOK: true,
		},
		{
			name:     "error",
			stub:     &stubCompleter{err: errors.New("connection refused")},
			contains: []string{"Sorry, I’m having trouble connecting right now.", "(connection refused)"},
		},
		{
			name:     "timeout",
			stub:     &stubCompleter{reply: "late", delay: time.Second},
			timeout:  20 * time.Millisecond,
			contains: []string{"trouble connecting", "request timed out"},
		},
		{
			name:     "panic",
			stub:     &stubCompleter{panic: true},
			contains: []string{"trouble connecting", "completer panic: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.stub, tt.timeout)
			text, ok := r.Reply(context.Background(), window())

			assert.Equal(t, tt.wantOK, ok)
			if tt.want != "" {
				assert.Equal(t, tt.want, text)
			}
			for _, c := range tt.contains {
				assert.Contains(t, text, c)
			}
			assert.Equal(t, []core.Turn{
				{Role: core.RoleAssistant, Content: "Hi, what's on your mind?"},
				{Role: core.RoleUser, Content: "How do I manage exam stress?"},
			}, tt.stub.got)
		})
	}
}

func TestClient_Complete(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr string
	}{
		{name: "success", status: http.StatusOK, body: `{"response":"Try short study sprints."}`, want: "Try short study sprints."},
		{name: "error status with message", status: http.StatusInternalServerError, body: `{"error":"upstream exploded"}`, wantErr: "upstream exploded"},
		{name: "error status without body", status: http.StatusBadGateway, body: ``, wantErr: "Proxy/API error"},
		{name: "missing response field", status: http.StatusOK, body: `{}`, wantErr: "Proxy/API error"},
		{name: "success status with error field", status: http.StatusOK, body: `{"error":"quota"}`, wantErr: "quota"},
		{name: "malformed body", status: http.StatusOK, body: `<html>`, wantErr: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			got, err := NewClient(srv.URL).Complete(context.Background(), []core.Turn{{Role: core.RoleUser, Content: "hi"}})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"bad"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Complete(context.Background(), nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
}

func TestRelay_NetworkFailure(t *testing.T) {
	// Reserve a port and close it so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	r := New(NewClient("http://"+addr+"/api/chat"), time.Second)
	text, ok := r.Reply(context.Background(), window())

	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(text, "Sorry, I’m having trouble connecting right now. ("))
	assert.Contains(t, text, addr)
}
