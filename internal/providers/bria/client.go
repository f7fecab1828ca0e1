package bria

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/infra"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/transport"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("bria: api token is required")

// Options configures the Bria v2 image engine client.
type Options struct {
	APIKey    string
	BaseURL   string
	Transport *transport.Client
	Logger    *infra.Logger

	// Sync asks the engine to answer with the image inline; the engine is
	// still free to respond with a status URL, which the client then polls.
	Sync bool

	SubmitTimeout      time.Duration // one generation POST
	PollInterval       time.Duration // gap between status checks
	PollTimeout        time.Duration // overall polling window
	PollRequestTimeout time.Duration // one status GET inside the window
}

// Client submits normalized scene documents to the Bria v2 REST engine and
// resolves both response shapes: an immediate result or a pending job that
// must be polled until terminal.
type Client struct {
	apiKey             string
	baseURL            string
	transport          *transport.Client
	logger             *infra.Logger
	sync               bool
	submitTimeout      time.Duration
	pollInterval       time.Duration
	pollTimeout        time.Duration
	pollRequestTimeout time.Duration
}

// Image is the normalized outcome of one successful generation.
type Image struct {
	URL  string
	Seed int
	// Polled is set when the result was delivered through the async
	// status-poll path rather than inline.
	Polled bool
}

type submitPayload struct {
	Prompt           string `json:"prompt"`
	StructuredPrompt string `json:"structured_prompt"`
	Seed             int    `json:"seed"`
	AspectRatio      string `json:"aspect_ratio"`
	Sync             bool   `json:"sync"`
}

type imageResult struct {
	ImageURL string `json:"image_url"`
	Seed     int    `json:"seed"`
}

// submission is the decoded engine reply: exactly one branch is populated.
// Keeping the two shapes as an explicit union keeps the dispatch exhaustive.
type submission struct {
	immediate *imageResult
	statusURL string
}

type submitResponse struct {
	Result    *imageResult `json:"result"`
	StatusURL string       `json:"status_url"`
}

type errorEnvelope struct {
	Error struct {
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://engine.prod.bria-api.com/v2"
	}
	tr := opts.Transport
	if tr == nil {
		tr = transport.NewClient(nil)
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	c := &Client{
		apiKey:             strings.TrimSpace(opts.APIKey),
		baseURL:            baseURL,
		transport:          tr,
		logger:             logger,
		sync:               opts.Sync,
		submitTimeout:      opts.SubmitTimeout,
		pollInterval:       opts.PollInterval,
		pollTimeout:        opts.PollTimeout,
		pollRequestTimeout: opts.PollRequestTimeout,
	}
	if c.submitTimeout <= 0 {
		c.submitTimeout = 90 * time.Second
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 2 * time.Second
	}
	if c.pollTimeout <= 0 {
		c.pollTimeout = 5 * time.Minute
	}
	if c.pollRequestTimeout <= 0 {
		c.pollRequestTimeout = 15 * time.Second
	}
	return c
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Generate normalizes the scene, submits it once, and resolves either
// response shape into an image. The returned seed is the engine's echo when
// present, otherwise the submitted one.
func (c *Client) Generate(ctx context.Context, scene blueprint.Scene, seed int) (*Image, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}

	normalized := blueprint.Normalized(scene)
	doc, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("bria: encode structured prompt: %w", err)
	}
	payload := submitPayload{
		Prompt:           blueprint.PromptSummary(normalized),
		StructuredPrompt: string(doc),
		Seed:             seed,
		AspectRatio:      normalized.AspectRatio,
		Sync:             c.sync,
	}

	sub, err := c.submit(ctx, payload)
	if err != nil {
		return nil, err
	}

	switch {
	case sub.immediate != nil:
		if strings.TrimSpace(sub.immediate.ImageURL) == "" {
			return nil, &domain.GenerationError{Backend: "bria", Reason: "success response without image_url"}
		}
		return &Image{URL: sub.immediate.ImageURL, Seed: echoSeed(sub.immediate.Seed, seed)}, nil
	case sub.statusURL != "":
		result, err := c.pollUntilTerminal(ctx, sub.statusURL)
		if err != nil {
			return nil, err
		}
		return &Image{URL: result.ImageURL, Seed: echoSeed(result.Seed, seed), Polled: true}, nil
	default:
		return nil, &domain.GenerationError{Backend: "bria", Reason: "response carries neither result nor status_url"}
	}
}

func (c *Client) submit(ctx context.Context, payload submitPayload) (submission, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return submission{}, fmt.Errorf("bria: encode request: %w", err)
	}
	endpoint := c.baseURL + "/image/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return submission{}, fmt.Errorf("bria: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_token", c.apiKey)

	resp, err := c.transport.Do(req, c.submitTimeout)
	if err != nil {
		return submission{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return submission{}, &domain.NetworkError{Op: "bria submit", Err: err}
	}
	if resp.StatusCode >= 300 {
		return submission{}, &domain.GenerationError{
			Backend: "bria",
			Reason:  fmt.Sprintf("status %d: %s", resp.StatusCode, backendErrorDetail(raw)),
		}
	}

	var decoded submitResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return submission{}, &domain.GenerationError{Backend: "bria", Reason: "undecodable response", Err: err}
	}
	return submission{immediate: decoded.Result, statusURL: strings.TrimSpace(decoded.StatusURL)}, nil
}

// backendErrorDetail extracts the engine's validation message, including
// nested field details, falling back to the raw body text.
func backendErrorDetail(raw []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		if len(envelope.Error.Details) > 0 {
			return fmt.Sprintf("%s (%s)", envelope.Error.Message, string(envelope.Error.Details))
		}
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(raw))
}

func echoSeed(echoed, submitted int) int {
	if echoed != 0 {
		return echoed
	}
	return submitted
}
