package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	app_errors "rukmini-chat/backend/internal/errors"
)

// Request is what the widget sends for every user utterance.
type Request struct {
	Message string `json:"message"`
	Gender  string `json:"gender"`
	Mood    string `json:"mood"`
	// Name is the user's display name. It is not sent over the wire.
	Name string `json:"-"`
}

// Payload is a successful reply. Timestamp is zero when the service did not
// send one. Mood is set when the client inferred the user's mood from the
// message; the remote service never sets it.
type Payload struct {
	Response  string
	Timestamp time.Time
	Mood      string
}

// Client computes the assistant's answer to one utterance.
type Client interface {
	Send(ctx context.Context, req *Request) (*Payload, error)
}

type httpClient struct {
	client   *http.Client
	endpoint string
}

// NewHTTPClient returns a Client that POSTs to endpoint. A zero timeout
// leaves the request unbounded, as the widget did; cancel through ctx.
func NewHTTPClient(endpoint string, timeout time.Duration) Client {
	return &httpClient{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

type wireResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (c *httpClient) Send(ctx context.Context, req *Request) (*Payload, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: http request failed: %v", app_errors.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", app_errors.ErrUpstream, resp.StatusCode, string(bodyBytes))
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: could not decode response: %v", app_errors.ErrUpstream, err)
	}

	payload := &Payload{Response: wire.Response}
	if wire.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339Nano, wire.Timestamp); err == nil {
			payload.Timestamp = ts
		}
	}
	return payload, nil
}
