package interpreter

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
)

// Angle and lighting rotations for deterministic batch variety.
var (
	staticAngles = []string{"eye level", "high angle", "low angle", "three-quarter view"}

	staticLighting = []blueprint.Lighting{
		{Conditions: "Studio lighting", Direction: "Front", Shadows: "Soft"},
		{Conditions: "Golden hour", Direction: "Side", Shadows: "Long"},
		{Conditions: "Overcast daylight", Direction: "Top", Shadows: "Diffuse"},
		{Conditions: "Dramatic spotlight", Direction: "Back", Shadows: "Hard"},
	}
)

// StaticInterpreter builds scenes from the prompt text alone, with no remote
// calls. It backs the service when no language-model key is configured and
// doubles as the deterministic fallback in tests.
type StaticInterpreter struct {
	caser cases.Caser
}

func NewStaticInterpreter() *StaticInterpreter {
	return &StaticInterpreter{caser: cases.Title(language.Und)}
}

func (s *StaticInterpreter) Interpret(_ context.Context, req Request) (blueprint.Scene, error) {
	if req.Previous != nil {
		scene := req.Previous.Clone()
		if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
			scene.ShortDescription = prompt
		}
		return blueprint.Normalized(scene), nil
	}
	return s.build(req.Prompt, 0), nil
}

// InterpretBatch builds count deterministic variants. Constraints need the
// language model to be honored; the static path folds them into the subject
// text so they at least reach the rendered prompt.
func (s *StaticInterpreter) InterpretBatch(_ context.Context, prompt string, count int, constraints string) ([]blueprint.Scene, error) {
	if count <= 0 {
		return nil, nil
	}
	if c := strings.TrimSpace(constraints); c != "" {
		prompt = strings.TrimSpace(prompt) + ". " + c
	}
	scenes := make([]blueprint.Scene, count)
	for i := range scenes {
		scenes[i] = s.build(prompt, i)
	}
	return scenes, nil
}

// build derives a complete scene from free text. The variant index rotates
// camera angle and lighting so batch slots differ visibly.
func (s *StaticInterpreter) build(prompt string, variant int) blueprint.Scene {
	prompt = strings.TrimSpace(prompt)
	subject := prompt
	if subject == "" {
		subject = blueprint.DefaultObjectDescription
	}

	scene := blueprint.Scene{
		ShortDescription: prompt,
		Objects: []blueprint.Object{{
			Description: s.caser.String(subject),
			Location:    "center of frame",
		}},
		Lighting: staticLighting[variant%len(staticLighting)],
		PhotoChars: blueprint.PhotoCharacteristics{
			CameraAngle: staticAngles[variant%len(staticAngles)],
		},
	}
	return blueprint.Normalized(scene)
}

var _ Interpreter = (*StaticInterpreter)(nil)
