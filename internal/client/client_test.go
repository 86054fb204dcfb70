package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"

	"web-calculator/internal/calculator"
	"web-calculator/internal/server"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newCalculatorServer(t *testing.T) *httptest.Server {
	t.Helper()

	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	srv := httptest.NewServer(server.NewRouter())
	t.Cleanup(srv.Close)
	return srv
}

func TestCalculateAgainstServer(t *testing.T) {
	srv := newCalculatorServer(t)
	c := New(srv.URL+"/", 5*time.Second)
	ctx := context.Background()

	got, err := c.Calculate(ctx, calculator.Request{FirstNumber: "9", SecondNumber: "0", Operation: "√"})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got != "3" {
		t.Fatalf("expected 3, got %q", got)
	}

	_, err = c.Calculate(ctx, calculator.Request{FirstNumber: "10", SecondNumber: "0", Operation: "/"})
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected *RejectedError, got %T: %v", err, err)
	}
	if rejected.Message != "Cannot divide by zero!" {
		t.Fatalf("expected divide-by-zero message, got %q", rejected.Message)
	}
}

func TestCalculateTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			_, err := New(srv.URL, time.Second).Calculate(context.Background(), calculator.Request{})
			var transport *TransportError
			if !errors.As(err, &transport) {
				t.Fatalf("expected *TransportError, got %T: %v", err, err)
			}
		})
	}
}

func TestCalculateUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Calculate(context.Background(), calculator.Request{})
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestCalculateHonoursContext(t *testing.T) {
	srv := newCalculatorServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, time.Second).Calculate(ctx, calculator.Request{FirstNumber: "1", SecondNumber: "1", Operation: "+"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
