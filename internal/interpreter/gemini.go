package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
)

const geminiDefaultTimeout = 30 * time.Second

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Interpreter
}

// GeminiInterpreter asks a language model to produce scene documents as
// strict JSON. Without an API key every call is served by the fallback; with
// one, remote failures surface as InterpretationError rather than silently
// degrading, since the caller may want to retry.
type GeminiInterpreter struct {
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
	fallback Interpreter
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	CandidateCount   int     `json:"candidateCount,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiBatchPayload struct {
	Scenes []blueprint.Scene `json:"scenes"`
}

func NewGeminiInterpreter(opts GeminiOptions) *GeminiInterpreter {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = NewStaticInterpreter()
	}
	return &GeminiInterpreter{
		apiKey:   opts.APIKey,
		model:    model,
		baseURL:  baseURL,
		client:   client,
		fallback: fallback,
	}
}

func (g *GeminiInterpreter) HasCredentials() bool {
	return g.apiKey != ""
}

func (g *GeminiInterpreter) Interpret(ctx context.Context, req Request) (blueprint.Scene, error) {
	if !g.HasCredentials() {
		return g.fallback.Interpret(ctx, req)
	}
	text, err := g.generate(ctx, g.buildInterpretPrompt(req), 0.4)
	if err != nil {
		return blueprint.Scene{}, &domain.InterpretationError{Err: err}
	}
	var scene blueprint.Scene
	if err := decodePayload(text, &scene); err != nil {
		return blueprint.Scene{}, &domain.InterpretationError{Err: fmt.Errorf("decode scene: %w", err)}
	}
	return blueprint.Normalized(scene), nil
}

func (g *GeminiInterpreter) InterpretBatch(ctx context.Context, prompt string, count int, constraints string) ([]blueprint.Scene, error) {
	if count <= 0 {
		return nil, nil
	}
	if !g.HasCredentials() {
		scenes, err := g.fallback.InterpretBatch(ctx, prompt, count, constraints)
		if err != nil {
			return nil, err
		}
		return conformBatch(scenes, count)
	}
	text, err := g.generate(ctx, g.buildBatchPrompt(prompt, count, constraints), 0.8)
	if err != nil {
		return nil, &domain.InterpretationError{Err: err}
	}
	var payload geminiBatchPayload
	if err := decodePayload(text, &payload); err != nil {
		return nil, &domain.InterpretationError{Err: fmt.Errorf("decode scenes: %w", err)}
	}
	for i := range payload.Scenes {
		payload.Scenes[i] = blueprint.Normalized(payload.Scenes[i])
	}
	return conformBatch(payload.Scenes, count)
}

func (g *GeminiInterpreter) generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      temperature,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), &buf)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("language model returned status %d", resp.StatusCode)
	}
	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, cand := range out.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("response contains no text candidates")
}

func (g *GeminiInterpreter) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
}

const sceneSchemaHint = `{"short_description":string,"objects":[{"description":string,"location":string,"shape_and_color":string,"texture":string}],"background_setting":string,"lighting":{"conditions":string,"direction":string,"shadows":string},"aesthetics":{"composition":string,"color_scheme":string,"mood_atmosphere":string},"photographic_characteristics":{"depth_of_field":string,"focus":string,"camera_angle":string,"lens_focal_length":string},"style_medium":string,"context":string,"artistic_style":string,"aspect_ratio":string}`

func (g *GeminiInterpreter) buildInterpretPrompt(req Request) string {
	sb := &strings.Builder{}
	sb.WriteString("You are a visual production director. Respond strictly with one JSON scene document matching this schema: ")
	sb.WriteString(sceneSchemaHint)
	if req.Previous != nil {
		if doc, err := json.Marshal(req.Previous); err == nil {
			fmt.Fprintf(sb, ". Refine this existing scene, changing only what the instruction asks for: %s", doc)
		}
	}
	fmt.Fprintf(sb, ". Instruction: %q.", req.Prompt)
	if req.Constraints != "" {
		fmt.Fprintf(sb, " Constraints: %s.", req.Constraints)
	}
	return sb.String()
}

func (g *GeminiInterpreter) buildBatchPrompt(prompt string, count int, constraints string) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are a visual production director. Produce %d distinct scene interpretations of the same brief, varying composition, lighting, and camera work. Respond strictly as JSON: {\"scenes\":[...]} where each scene matches ", count)
	sb.WriteString(sceneSchemaHint)
	fmt.Fprintf(sb, ". Brief: %q.", prompt)
	if constraints != "" {
		fmt.Fprintf(sb, " Constraints: %s.", constraints)
	}
	return sb.String()
}

func decodePayload(raw string, out any) error {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return fmt.Errorf("empty payload")
	}
	return json.Unmarshal([]byte(cleaned), out)
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```JSON")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

var _ Interpreter = (*GeminiInterpreter)(nil)
