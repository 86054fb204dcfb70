// Package client talks to the calculation endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"web-calculator/internal/calculator"
)

// RejectedError is a calculation the server answered with success=false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "calculation rejected: " + e.Message
}

// TransportError is any failure to obtain a well-formed reply: connection
// errors, timeouts, non-200 statuses and undecodable bodies.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "calculation request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client posts calculation requests to a calculator server.
type Client struct {
	endpoint string
	http     *http.Client
}

// New returns a Client for the server at baseURL (e.g.
// "http://localhost:8080"). Requests are traced with otelhttp and bounded by
// timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewWithHTTPClient is New with a caller-provided http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + calculator.LegacyPath,
		http:     hc,
	}
}

// Calculate sends req and returns the formatted result. A server-side
// rejection is a *RejectedError; everything else is a *TransportError.
func (c *Client) Calculate(ctx context.Context, req calculator.Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var out calculator.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if !out.Success {
		return "", &RejectedError{Message: out.Message}
	}
	return out.Result, nil
}
