package interpreter

import (
	"context"
	"fmt"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
)

// Request carries one natural-language interpretation. Previous, when set,
// switches the interpreter into refinement mode: the prompt is applied as an
// edit on top of the existing document instead of starting from scratch.
type Request struct {
	Prompt      string
	Constraints string
	Previous    *blueprint.Scene
}

// Interpreter turns free text into scene blueprints.
type Interpreter interface {
	Interpret(ctx context.Context, req Request) (blueprint.Scene, error)
	InterpretBatch(ctx context.Context, prompt string, count int, constraints string) ([]blueprint.Scene, error)
}

// conformBatch forces an interpreter's batch output to exactly count scenes.
// Surplus scenes are dropped from the tail. A shortfall is padded by cloning
// the returned scenes round-robin with a variant marker, so every slot still
// renders something related to the request. Zero scenes is an error the
// caller must surface rather than paper over.
func conformBatch(scenes []blueprint.Scene, count int) ([]blueprint.Scene, error) {
	if len(scenes) == 0 {
		return nil, domain.ErrBatchEmpty
	}
	if len(scenes) >= count {
		return scenes[:count], nil
	}
	out := make([]blueprint.Scene, 0, count)
	out = append(out, scenes...)
	for i := len(scenes); i < count; i++ {
		clone := scenes[i%len(scenes)].Clone()
		clone.ShortDescription = fmt.Sprintf("%s (Variant %d)", clone.ShortDescription, i+1)
		out = append(out, clone)
	}
	return out, nil
}
