package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sandevgo/campinnova/internal/core"
)

// ErrProxy is reported when the relay answers without a usable payload.
var ErrProxy = errors.New("Proxy/API error")

// Request is the body accepted by the relay server.
type Request struct {
	Messages []core.Turn `json:"messages"`
}

// Response is the body returned by the relay server.
type Response struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// StatusError carries the relay's error text for a non-success status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Client is a Completer backed by a relay server over HTTP.
type Client struct {
	url    string
	client *http.Client
}

// NewClient targets url (e.g. http://localhost:5174/api/chat). The client sets
// no timeout of its own; the caller's context bounds the call.
func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{},
	}
}

func (c *Client) Complete(ctx context.Context, turns []core.Turn) (string, error) {
	body, err := json.Marshal(Request{Messages: turns})
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	var out Response
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Error
		if decodeErr != nil || msg == "" {
			msg = ErrProxy.Error()
		}
		return "", &StatusError{Code: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode: %w", decodeErr)
	}
	if out.Response == "" {
		if out.Error != "" {
			return "", errors.New(out.Error)
		}
		return "", ErrProxy
	}
	return out.Response, nil
}
