package bria

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(Options{
		APIKey:             "token",
		BaseURL:            baseURL,
		Sync:               true,
		SubmitTimeout:      2 * time.Second,
		PollInterval:       5 * time.Millisecond,
		PollTimeout:        time.Second,
		PollRequestTimeout: time.Second,
	})
}

func TestGenerateWithoutCredentials(t *testing.T) {
	c := NewClient(Options{})
	if _, err := c.Generate(context.Background(), blueprint.Scene{}, 1); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestGenerateSyncShape(t *testing.T) {
	var gotPayload submitPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api_token") != "token" {
			t.Errorf("missing api_token header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"image_url": "https://cdn/img.png", "seed": 99},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	img, err := c.Generate(context.Background(), blueprint.Scene{ShortDescription: "A vase"}, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.URL != "https://cdn/img.png" || img.Seed != 99 || img.Polled {
		t.Fatalf("image = %#v", img)
	}

	if gotPayload.Seed != 7 || !gotPayload.Sync {
		t.Fatalf("payload = %#v", gotPayload)
	}
	var doc blueprint.Scene
	if err := json.Unmarshal([]byte(gotPayload.StructuredPrompt), &doc); err != nil {
		t.Fatalf("structured prompt not a JSON document: %v", err)
	}
	if doc.ShortDescription != "A vase" || doc.Context == "" || doc.ArtisticStyle == "" {
		t.Fatalf("structured prompt not normalized: %#v", doc)
	}
}

func TestGenerateEchoesSubmittedSeedWhenBackendOmitsIt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"image_url": "https://cdn/img.png"},
		})
	}))
	defer srv.Close()

	img, err := testClient(t, srv.URL).Generate(context.Background(), blueprint.Scene{}, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Seed != 42 {
		t.Fatalf("seed = %d, want submitted seed 42", img.Seed)
	}
}

func TestGenerateAsyncShape(t *testing.T) {
	var polls atomic.Int32
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/image/generate", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status_url": srv.URL + "/status/abc"})
	})
	mux.HandleFunc("/status/abc", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) <= 2 {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "RUNNING"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "COMPLETED",
			"result": map[string]any{"image_url": "https://x/img.png", "seed": 42},
		})
	})

	scene := blueprint.Scene{AspectRatio: "16:9"}
	img, err := testClient(t, srv.URL).Generate(context.Background(), scene, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.URL != "https://x/img.png" || img.Seed != 42 || !img.Polled {
		t.Fatalf("image = %#v", img)
	}
	if got := polls.Load(); got != 3 {
		t.Fatalf("polls = %d, want 3", got)
	}
}

func TestGenerateSurfacesBackendValidationDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"message":"Field required","details":{"loc":["objects"]}}}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Generate(context.Background(), blueprint.Scene{}, 1)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if want := "Field required"; !strings.Contains(genErr.Reason, want) {
		t.Fatalf("reason = %q, want it to contain %q", genErr.Reason, want)
	}
}

func TestGenerateRejectsPayloadWithoutImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{"seed": 5}})
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Generate(context.Background(), blueprint.Scene{}, 1)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}

func TestGenerateRejectsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Generate(context.Background(), blueprint.Scene{}, 1)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}
