package bria

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
)

func pollClient(srvURL string, pollTimeout time.Duration) *Client {
	return NewClient(Options{
		APIKey:             "token",
		BaseURL:            srvURL,
		PollInterval:       5 * time.Millisecond,
		PollTimeout:        pollTimeout,
		PollRequestTimeout: 250 * time.Millisecond,
	})
}

func TestPollRunningThenCompleted(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) <= 3 {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "RUNNING"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "COMPLETED",
			"result": map[string]any{"image_url": "https://cdn/done.png", "seed": 11},
		})
	}))
	defer srv.Close()

	result, err := pollClient(srv.URL, time.Second).pollUntilTerminal(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ImageURL != "https://cdn/done.png" || result.Seed != 11 {
		t.Fatalf("result = %#v", result)
	}
}

func TestPollFailedStopsImmediately(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "FAILED", "error": "content rejected"})
	}))
	defer srv.Close()

	_, err := pollClient(srv.URL, time.Second).pollUntilTerminal(context.Background(), srv.URL)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Reason != "content rejected" {
		t.Fatalf("reason = %q", genErr.Reason)
	}
	if got := polls.Load(); got != 1 {
		t.Fatalf("polls = %d, want 1 (no polling past FAILED)", got)
	}
}

func TestPollToleratesTransientFailures(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch polls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusBadGateway)
		case 2:
			_, _ = w.Write([]byte("not json"))
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "COMPLETED",
				"result": map[string]any{"image_url": "https://cdn/late.png"},
			})
		}
	}))
	defer srv.Close()

	result, err := pollClient(srv.URL, time.Second).pollUntilTerminal(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ImageURL != "https://cdn/late.png" {
		t.Fatalf("result = %#v", result)
	}
}

func TestPollTimesOutWithoutTerminalState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "SUBMITTED"})
	}))
	defer srv.Close()

	_, err := pollClient(srv.URL, 40*time.Millisecond).pollUntilTerminal(context.Background(), srv.URL)
	var timeout *domain.TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("error = %v, want TimeoutError", err)
	}
}

func TestPollCompletedWithoutImageIsGenerationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "COMPLETED"})
	}))
	defer srv.Close()

	_, err := pollClient(srv.URL, time.Second).pollUntilTerminal(context.Background(), srv.URL)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}
