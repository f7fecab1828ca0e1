package blueprint

import (
	"fmt"
	"strings"
)

// PromptSummary flattens a scene into a free-text instruction. Generation
// backends receive the structured document as well, but a textual summary is
// required alongside it and is the only thing the fallback protocol accepts
// beyond the short description.
func PromptSummary(s Scene) string {
	var lines []string

	if desc := strings.TrimSpace(s.ShortDescription); desc != "" {
		lines = append(lines, desc)
	} else {
		lines = append(lines, DefaultShortDescription)
	}

	var subjects []string
	for _, obj := range s.Objects {
		part := strings.TrimSpace(obj.Description)
		if part == "" {
			continue
		}
		if loc := strings.TrimSpace(obj.Location); loc != "" {
			part = fmt.Sprintf("%s (%s)", part, loc)
		}
		subjects = append(subjects, part)
	}
	if len(subjects) > 0 {
		lines = append(lines, "Subjects: "+strings.Join(subjects, "; ")+".")
	}

	if bg := strings.TrimSpace(s.BackgroundSetting); bg != "" {
		lines = append(lines, fmt.Sprintf("Background: %s.", bg))
	}

	var light []string
	if v := strings.TrimSpace(s.Lighting.Conditions); v != "" {
		light = append(light, v)
	}
	if v := strings.TrimSpace(s.Lighting.Direction); v != "" {
		light = append(light, "lit from "+strings.ToLower(v))
	}
	if v := strings.TrimSpace(s.Lighting.Shadows); v != "" {
		light = append(light, strings.ToLower(v)+" shadows")
	}
	if len(light) > 0 {
		lines = append(lines, "Lighting: "+strings.Join(light, ", ")+".")
	}

	var camera []string
	if v := strings.TrimSpace(s.PhotoChars.CameraAngle); v != "" {
		camera = append(camera, v)
	}
	if v := strings.TrimSpace(s.PhotoChars.LensFocalLength); v != "" {
		camera = append(camera, v+" lens")
	}
	if v := strings.TrimSpace(s.PhotoChars.DepthOfField); v != "" {
		camera = append(camera, strings.ToLower(v)+" depth of field")
	}
	if len(camera) > 0 {
		lines = append(lines, "Camera: "+strings.Join(camera, ", ")+".")
	}

	if mood := strings.TrimSpace(s.Aesthetics.MoodAtmosphere); mood != "" {
		lines = append(lines, fmt.Sprintf("Mood: %s.", mood))
	}

	style := strings.TrimSpace(s.ArtisticStyle)
	medium := string(NormalizeStyleMedium(string(s.StyleMedium)))
	if style != "" {
		lines = append(lines, fmt.Sprintf("Style: %s %s.", style, strings.ReplaceAll(medium, "_", " ")))
	} else {
		lines = append(lines, fmt.Sprintf("Style: %s.", strings.ReplaceAll(medium, "_", " ")))
	}

	return strings.Join(lines, "\n")
}
