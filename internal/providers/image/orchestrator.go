package image

import (
	"context"
	"io"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/infra"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/bria"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/mcp"
)

// seedSpace matches the seed range used by the studio UI.
const seedSpace = 10_000_000

type primaryClient interface {
	Generate(ctx context.Context, scene blueprint.Scene, seed int) (*bria.Image, error)
	HasCredentials() bool
}

type fallbackClient interface {
	TextToImage(ctx context.Context, prompt, aspectRatio string, seed int) (*mcp.Image, error)
	HasCredentials() bool
}

// Orchestrator composes the primary REST engine and the MCP fallback into one
// generate call with fixed precedence: primary first, fallback on any primary
// failure, and when both fail the primary's error is the one surfaced, since
// it is the more actionable of the two.
type Orchestrator struct {
	primary  primaryClient
	fallback fallbackClient
	logger   *infra.Logger
	seedFn   func() int
}

// NewOrchestrator wires the two strategies. Either client may lack
// credentials; the precedence rules treat that the same as a failed attempt.
func NewOrchestrator(primary primaryClient, fallback fallbackClient, logger *infra.Logger) *Orchestrator {
	if logger == nil {
		l := zerolog.New(io.Discard)
		logger = &l
	}
	return &Orchestrator{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		seedFn:   func() int { return rand.Intn(seedSpace) },
	}
}

// Generate fulfils the Generator interface. One uniformly random seed is
// drawn per call and reused across both strategies so a fallback render stays
// reproducible against the primary attempt.
func (o *Orchestrator) Generate(ctx context.Context, scene blueprint.Scene) (Result, error) {
	seed := o.seedFn()

	primaryErr := o.tryPrimary(ctx, scene, seed)
	if primaryErr.err == nil {
		return primaryErr.result, nil
	}
	o.logger.Warn().Err(primaryErr.err).Int("seed", seed).Msg("primary generation failed, trying fallback")

	if result, err := o.tryFallback(ctx, scene, seed); err == nil {
		return result, nil
	} else {
		o.logger.Warn().Err(err).Int("seed", seed).Msg("fallback generation failed")
	}

	return Result{}, &domain.GenerationError{
		Backend: "generate",
		Reason:  primaryErr.err.Error(),
		Err:     primaryErr.err,
	}
}

type primaryAttempt struct {
	result Result
	err    error
}

func (o *Orchestrator) tryPrimary(ctx context.Context, scene blueprint.Scene, seed int) primaryAttempt {
	if o.primary == nil || !o.primary.HasCredentials() {
		return primaryAttempt{err: bria.ErrMissingAPIKey}
	}
	img, err := o.primary.Generate(ctx, scene, seed)
	if err != nil {
		return primaryAttempt{err: err}
	}
	source := SourcePrimarySync
	if img.Polled {
		source = SourcePrimaryAsync
	}
	return primaryAttempt{result: Result{URL: img.URL, Seed: img.Seed, Source: source}}
}

func (o *Orchestrator) tryFallback(ctx context.Context, scene blueprint.Scene, seed int) (Result, error) {
	if o.fallback == nil || !o.fallback.HasCredentials() {
		return Result{}, mcp.ErrMissingAPIKey
	}
	normalized := blueprint.Normalized(scene)
	// The fallback protocol takes only the simplified prompt, never the
	// structured document.
	img, err := o.fallback.TextToImage(ctx, normalized.ShortDescription, normalized.AspectRatio, seed)
	if err != nil {
		return Result{}, err
	}
	return Result{URL: img.URL, Seed: img.Seed, Source: SourceFallback}, nil
}

var _ Generator = (*Orchestrator)(nil)
