package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/infra"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/transport"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("mcp: api token is required")

// Options configures the MCP tool-call client used as the secondary
// generation route.
type Options struct {
	APIKey         string
	Endpoint       string
	Transport      *transport.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client speaks the JSON-RPC 2.0 tools/call envelope to the MCP image
// endpoint. It carries only a simplified text prompt, never the structured
// document.
type Client struct {
	apiKey         string
	endpoint       string
	transport      *transport.Client
	logger         *infra.Logger
	requestTimeout time.Duration
}

// Image is the normalized outcome of one successful tool call.
type Image struct {
	URL  string
	Seed int
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      string    `json:"id"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Name      string        `json:"name"`
	Arguments toolArguments `json:"arguments"`
}

type toolArguments struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	NumResults  int    `json:"num_results"`
	Seed        int    `json:"seed"`
}

type rpcResponse struct {
	Result *struct {
		Content []contentItem `json:"content"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

var urlPattern = regexp.MustCompile(`https?://[^\s"']+`)

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = "https://mcp.prod.bria-api.com/mcp"
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
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:         strings.TrimSpace(opts.APIKey),
		endpoint:       endpoint,
		transport:      tr,
		logger:         logger,
		requestTimeout: timeout,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// TextToImage invokes the text_to_image tool once. The response content may
// carry the asset either as an explicit image reference or as a URL embedded
// in free text; both shapes are accepted.
func (c *Client) TextToImage(ctx context.Context, prompt, aspectRatio string, seed int) (*Image, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("mcp: prompt is required")
	}

	callID := uuid.NewString()
	payload := rpcRequest{
		JSONRPC: "2.0",
		ID:      callID,
		Method:  "tools/call",
		Params: rpcParams{
			Name: "text_to_image",
			Arguments: toolArguments{
				Prompt:      prompt,
				AspectRatio: aspectRatio,
				NumResults:  1,
				Seed:        seed,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("mcp: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mcp: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_token", c.apiKey)

	resp, err := c.transport.Do(req, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Op: "mcp call", Err: err}
	}
	if resp.StatusCode >= 300 {
		return nil, &domain.GenerationError{Backend: "mcp", Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var decoded rpcResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &domain.GenerationError{Backend: "mcp", Reason: "undecodable response", Err: err}
	}
	if decoded.Error != nil {
		return nil, &domain.GenerationError{Backend: "mcp", Reason: decoded.Error.Message}
	}
	if decoded.Result == nil {
		return nil, &domain.GenerationError{Backend: "mcp", Reason: "response carries no result"}
	}

	url := extractImageURL(decoded.Result.Content)
	if url == "" {
		return nil, &domain.GenerationError{Backend: "mcp", Reason: "no image url in tool result"}
	}
	c.logger.Debug().Str("call_id", callID).Str("url", url).Msg("mcp: generated image asset")
	return &Image{URL: url, Seed: seed}, nil
}

func extractImageURL(content []contentItem) string {
	for _, item := range content {
		switch item.Type {
		case "text":
			if match := urlPattern.FindString(item.Text); match != "" {
				return match
			}
		case "image":
			if url := strings.TrimSpace(item.URL); url != "" {
				return url
			}
		}
	}
	return ""
}
