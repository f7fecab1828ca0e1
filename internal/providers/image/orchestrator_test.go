package image

import (
	"context"
	"errors"
	"testing"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/bria"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/mcp"
)

type stubPrimary struct {
	img   *bria.Image
	err   error
	creds bool

	calls int
	seeds []int
}

func (s *stubPrimary) Generate(_ context.Context, _ blueprint.Scene, seed int) (*bria.Image, error) {
	s.calls++
	s.seeds = append(s.seeds, seed)
	return s.img, s.err
}

func (s *stubPrimary) HasCredentials() bool { return s.creds }

type stubFallback struct {
	img   *mcp.Image
	err   error
	creds bool

	calls  int
	seeds  []int
	prompt string
	ratio  string
}

func (s *stubFallback) TextToImage(_ context.Context, prompt, aspectRatio string, seed int) (*mcp.Image, error) {
	s.calls++
	s.seeds = append(s.seeds, seed)
	s.prompt = prompt
	s.ratio = aspectRatio
	return s.img, s.err
}

func (s *stubFallback) HasCredentials() bool { return s.creds }

func newTestOrchestrator(p *stubPrimary, f *stubFallback, seed int) *Orchestrator {
	o := NewOrchestrator(p, f, nil)
	o.seedFn = func() int { return seed }
	return o
}

func TestGeneratePrimarySyncSuccess(t *testing.T) {
	primary := &stubPrimary{creds: true, img: &bria.Image{URL: "https://cdn/img.png", Seed: 42}}
	fallback := &stubFallback{creds: true}
	o := newTestOrchestrator(primary, fallback, 42)

	result, err := o.Generate(context.Background(), blueprint.Scene{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.URL != "https://cdn/img.png" || result.Seed != 42 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Source != SourcePrimarySync {
		t.Fatalf("source = %q, want %q", result.Source, SourcePrimarySync)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback called %d times on primary success", fallback.calls)
	}
}

func TestGeneratePolledPrimaryTaggedAsync(t *testing.T) {
	primary := &stubPrimary{creds: true, img: &bria.Image{URL: "https://cdn/img.png", Seed: 7, Polled: true}}
	o := newTestOrchestrator(primary, &stubFallback{creds: true}, 7)

	result, err := o.Generate(context.Background(), blueprint.Scene{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Source != SourcePrimaryAsync {
		t.Fatalf("source = %q, want %q", result.Source, SourcePrimaryAsync)
	}
}

func TestGenerateFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &stubPrimary{creds: true, err: &domain.GenerationError{Backend: "bria", Reason: "engine down"}}
	fallback := &stubFallback{creds: true, img: &mcp.Image{URL: "https://mcp/img.png", Seed: 99}}
	o := newTestOrchestrator(primary, fallback, 99)

	scene := blueprint.Scene{ShortDescription: "Red sneaker on concrete", AspectRatio: "16:9"}
	result, err := o.Generate(context.Background(), scene)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", result.Source, SourceFallback)
	}
	if result.URL != "https://mcp/img.png" {
		t.Fatalf("url = %q", result.URL)
	}
	if fallback.prompt != "Red sneaker on concrete" {
		t.Fatalf("fallback prompt = %q", fallback.prompt)
	}
	if fallback.ratio != "16:9" {
		t.Fatalf("fallback aspect ratio = %q", fallback.ratio)
	}
}

func TestGenerateSharesSeedAcrossStrategies(t *testing.T) {
	primary := &stubPrimary{creds: true, err: errors.New("boom")}
	fallback := &stubFallback{creds: true, img: &mcp.Image{URL: "https://mcp/img.png", Seed: 1234}}
	o := newTestOrchestrator(primary, fallback, 1234)

	if _, err := o.Generate(context.Background(), blueprint.Scene{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(primary.seeds) != 1 || len(fallback.seeds) != 1 {
		t.Fatalf("expected one seed per strategy, got %v and %v", primary.seeds, fallback.seeds)
	}
	if primary.seeds[0] != 1234 || fallback.seeds[0] != 1234 {
		t.Fatalf("seeds diverged: primary %d, fallback %d", primary.seeds[0], fallback.seeds[0])
	}
}

func TestGenerateBothFailSurfacesPrimaryError(t *testing.T) {
	primaryErr := &domain.GenerationError{Backend: "bria", Reason: "content rejected"}
	primary := &stubPrimary{creds: true, err: primaryErr}
	fallback := &stubFallback{creds: true, err: errors.New("mcp unreachable")}
	o := newTestOrchestrator(primary, fallback, 5)

	_, err := o.Generate(context.Background(), blueprint.Scene{})
	if err == nil {
		t.Fatal("expected error when both strategies fail")
	}
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error type = %T", err)
	}
	if !errors.Is(err, primaryErr) {
		t.Fatalf("error chain does not carry primary failure: %v", err)
	}
	if genErr.Reason != primaryErr.Error() {
		t.Fatalf("reason = %q, want primary message %q", genErr.Reason, primaryErr.Error())
	}
}

func TestGenerateMissingPrimaryCredentialsUsesFallback(t *testing.T) {
	primary := &stubPrimary{creds: false}
	fallback := &stubFallback{creds: true, img: &mcp.Image{URL: "https://mcp/img.png", Seed: 3}}
	o := newTestOrchestrator(primary, fallback, 3)

	result, err := o.Generate(context.Background(), blueprint.Scene{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if primary.calls != 0 {
		t.Fatalf("primary called without credentials")
	}
	if result.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", result.Source, SourceFallback)
	}
}

func TestGenerateNoCredentialsAnywhere(t *testing.T) {
	o := newTestOrchestrator(&stubPrimary{}, &stubFallback{}, 1)

	_, err := o.Generate(context.Background(), blueprint.Scene{})
	if !errors.Is(err, bria.ErrMissingAPIKey) {
		t.Fatalf("error = %v, want wrapped %v", err, bria.ErrMissingAPIKey)
	}
}
