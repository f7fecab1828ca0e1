package blueprint

import (
	"strings"
	"testing"
)

func TestPromptSummaryFlattensScene(t *testing.T) {
	s := Scene{
		ShortDescription:  "A red sneaker on concrete",
		Objects:           []Object{{Description: "Running shoe", Location: "Center"}},
		BackgroundSetting: "Wet concrete floor",
		Lighting:          Lighting{Conditions: "Golden hour", Direction: "Side", Shadows: "Long"},
		PhotoChars:        PhotoCharacteristics{CameraAngle: "Low angle", LensFocalLength: "35mm", DepthOfField: "Shallow"},
		Aesthetics:        Aesthetics{MoodAtmosphere: "Energetic"},
		ArtisticStyle:     "realistic",
		StyleMedium:       StyleDigitalArt,
	}

	got := PromptSummary(s)
	for _, want := range []string{
		"A red sneaker on concrete",
		"Running shoe (Center)",
		"Background: Wet concrete floor.",
		"Golden hour",
		"Low angle",
		"Mood: Energetic.",
		"realistic digital art",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestPromptSummaryEmptySceneFallsBack(t *testing.T) {
	got := PromptSummary(Scene{})
	if !strings.Contains(got, DefaultShortDescription) {
		t.Fatalf("summary = %q", got)
	}
}
