package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
)

func batchOf(descriptions ...string) []blueprint.Scene {
	scenes := make([]blueprint.Scene, len(descriptions))
	for i, d := range descriptions {
		scenes[i].ShortDescription = d
	}
	return scenes
}

func TestConformBatchPadsShortfall(t *testing.T) {
	scenes, err := conformBatch(batchOf("a", "b"), 4)
	if err != nil {
		t.Fatalf("conformBatch() error = %v", err)
	}
	if len(scenes) != 4 {
		t.Fatalf("len = %d, want 4", len(scenes))
	}
	if scenes[0].ShortDescription != "a" || scenes[1].ShortDescription != "b" {
		t.Fatalf("original scenes dislodged: %q, %q", scenes[0].ShortDescription, scenes[1].ShortDescription)
	}
	if scenes[2].ShortDescription != "a (Variant 3)" {
		t.Fatalf("slot 3 = %q", scenes[2].ShortDescription)
	}
	if scenes[3].ShortDescription != "b (Variant 4)" {
		t.Fatalf("slot 4 = %q", scenes[3].ShortDescription)
	}
}

func TestConformBatchTruncatesSurplus(t *testing.T) {
	scenes, err := conformBatch(batchOf("a", "b", "c", "d", "e", "f"), 4)
	if err != nil {
		t.Fatalf("conformBatch() error = %v", err)
	}
	if len(scenes) != 4 {
		t.Fatalf("len = %d, want 4", len(scenes))
	}
	if scenes[3].ShortDescription != "d" {
		t.Fatalf("last kept scene = %q, want d", scenes[3].ShortDescription)
	}
}

func TestConformBatchEmptyIsError(t *testing.T) {
	if _, err := conformBatch(nil, 4); !errors.Is(err, domain.ErrBatchEmpty) {
		t.Fatalf("error = %v, want %v", err, domain.ErrBatchEmpty)
	}
}

func TestConformBatchPadsAreClones(t *testing.T) {
	source := batchOf("a")
	source[0].Objects = []blueprint.Object{{Description: "thing"}}

	scenes, err := conformBatch(source, 2)
	if err != nil {
		t.Fatalf("conformBatch() error = %v", err)
	}
	scenes[1].Objects[0].Description = "mutated"
	if scenes[0].Objects[0].Description != "thing" {
		t.Fatal("padded scene shares object storage with source")
	}
}

func TestStaticInterpretBuildsCompleteScene(t *testing.T) {
	s := NewStaticInterpreter()
	scene, err := s.Interpret(context.Background(), Request{Prompt: "red sneaker on concrete"})
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if scene.ShortDescription != "red sneaker on concrete" {
		t.Fatalf("short description = %q", scene.ShortDescription)
	}
	if len(scene.Objects) == 0 || scene.Objects[0].Description != "Red Sneaker On Concrete" {
		t.Fatalf("objects = %+v", scene.Objects)
	}
	if scene.Lighting.Conditions == "" || scene.AspectRatio == "" || scene.Context == "" {
		t.Fatalf("scene not normalized: %+v", scene)
	}
}

func TestStaticInterpretRefinesPrevious(t *testing.T) {
	previous := blueprint.Normalized(blueprint.Scene{ShortDescription: "old", AspectRatio: "16:9"})
	s := NewStaticInterpreter()

	scene, err := s.Interpret(context.Background(), Request{Prompt: "new direction", Previous: &previous})
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if scene.ShortDescription != "new direction" {
		t.Fatalf("short description = %q", scene.ShortDescription)
	}
	if scene.AspectRatio != "16:9" {
		t.Fatalf("aspect ratio not carried from previous: %q", scene.AspectRatio)
	}
}

func TestStaticBatchVariesSlots(t *testing.T) {
	s := NewStaticInterpreter()
	scenes, err := s.InterpretBatch(context.Background(), "studio watch shot", 4, "")
	if err != nil {
		t.Fatalf("InterpretBatch() error = %v", err)
	}
	if len(scenes) != 4 {
		t.Fatalf("len = %d, want 4", len(scenes))
	}
	angles := make(map[string]struct{})
	for _, scene := range scenes {
		angles[scene.PhotoChars.CameraAngle] = struct{}{}
	}
	if len(angles) < 2 {
		t.Fatalf("batch slots do not vary camera angle: %v", angles)
	}
}

func TestStaticBatchIsDeterministic(t *testing.T) {
	s := NewStaticInterpreter()
	first, _ := s.InterpretBatch(context.Background(), "a", 3, "")
	second, _ := s.InterpretBatch(context.Background(), "a", 3, "")
	for i := range first {
		if fmt.Sprint(first[i]) != fmt.Sprint(second[i]) {
			t.Fatalf("slot %d differs between runs", i)
		}
	}
}

func TestExtractJSONFragmentStripsFence(t *testing.T) {
	raw := "```json\n{\"short_description\": \"x\"}\n```"
	got := extractJSONFragment(raw)
	if !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
		t.Fatalf("fragment = %q", got)
	}
}
