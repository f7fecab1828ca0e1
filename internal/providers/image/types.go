package image

import (
	"context"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
)

// Source tags which route produced a result. The tag is the only reliable
// success signal: SourceError never accompanies a URL, and a non-error tag
// always does.
type Source string

const (
	SourcePrimarySync  Source = "primary_sync"
	SourcePrimaryAsync Source = "primary_async"
	SourceFallback     Source = "fallback"
	SourceError        Source = "error"
)

// Result is one generation outcome delivered to the UI.
type Result struct {
	URL    string `json:"url"`
	Seed   int    `json:"seed"`
	Source Source `json:"source"`
	// Reason carries a short human-readable failure description when
	// Source is SourceError.
	Reason string `json:"reason,omitempty"`
}

// Failed reports whether the result is the sentinel failure value.
func (r Result) Failed() bool {
	return r.Source == SourceError
}

// ErrorResult builds the sentinel failure value for a slot or a one-shot call.
func ErrorResult(reason string) Result {
	return Result{Source: SourceError, Reason: reason}
}

// Generator is the contract consumed by the batch scheduler and the handlers:
// one scene in, one delivered image or a typed failure out.
type Generator interface {
	Generate(ctx context.Context, scene blueprint.Scene) (Result, error)
}
