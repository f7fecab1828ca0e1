package blueprint

import "strings"

// Defaults applied by Normalized. The generation backend rejects documents
// with absent required keys, so every hole is filled with a documented value
// rather than left empty.
const (
	DefaultShortDescription  = "High quality professional image"
	DefaultObjectDescription = "Object"
	DefaultBackground        = "Studio background"
	DefaultContext           = "Professional visual production"
	DefaultArtisticStyle     = "realistic"
	DefaultAspectRatio       = "1:1"
)

// DefaultLighting is used when lighting information is missing.
var DefaultLighting = Lighting{Conditions: "Studio lighting", Direction: "Front", Shadows: "Soft"}

// DefaultAesthetics is used when aesthetic direction is missing.
var DefaultAesthetics = Aesthetics{Composition: "Centered", ColorScheme: "Natural", MoodAtmosphere: "Professional"}

// DefaultPhotoChars is used when camera information is missing.
var DefaultPhotoChars = PhotoCharacteristics{DepthOfField: "Standard", Focus: "Sharp", CameraAngle: "Eye level", LensFocalLength: "50mm"}

// Normalized returns a transport-ready copy of the scene: every required field
// is present and non-empty afterwards. The function is total and pure; it
// never fails and never mutates its input, regardless of how the scene was
// produced (model output, a manual edit, or a library load).
func Normalized(s Scene) Scene {
	out := s.Clone()

	if strings.TrimSpace(out.ShortDescription) == "" {
		out.ShortDescription = DefaultShortDescription
	}
	if out.Objects == nil {
		out.Objects = []Object{}
	}
	for i := range out.Objects {
		if strings.TrimSpace(out.Objects[i].Description) == "" {
			out.Objects[i].Description = DefaultObjectDescription
		}
	}
	if strings.TrimSpace(out.BackgroundSetting) == "" {
		out.BackgroundSetting = DefaultBackground
	}

	if strings.TrimSpace(out.Lighting.Conditions) == "" {
		out.Lighting.Conditions = DefaultLighting.Conditions
	}
	if strings.TrimSpace(out.Lighting.Direction) == "" {
		out.Lighting.Direction = DefaultLighting.Direction
	}
	if strings.TrimSpace(out.Lighting.Shadows) == "" {
		out.Lighting.Shadows = DefaultLighting.Shadows
	}

	if strings.TrimSpace(out.Aesthetics.Composition) == "" {
		out.Aesthetics.Composition = DefaultAesthetics.Composition
	}
	if strings.TrimSpace(out.Aesthetics.ColorScheme) == "" {
		out.Aesthetics.ColorScheme = DefaultAesthetics.ColorScheme
	}
	if strings.TrimSpace(out.Aesthetics.MoodAtmosphere) == "" {
		out.Aesthetics.MoodAtmosphere = DefaultAesthetics.MoodAtmosphere
	}

	if strings.TrimSpace(out.PhotoChars.DepthOfField) == "" {
		out.PhotoChars.DepthOfField = DefaultPhotoChars.DepthOfField
	}
	if strings.TrimSpace(out.PhotoChars.Focus) == "" {
		out.PhotoChars.Focus = DefaultPhotoChars.Focus
	}
	if strings.TrimSpace(out.PhotoChars.CameraAngle) == "" {
		out.PhotoChars.CameraAngle = DefaultPhotoChars.CameraAngle
	}
	if strings.TrimSpace(out.PhotoChars.LensFocalLength) == "" {
		out.PhotoChars.LensFocalLength = DefaultPhotoChars.LensFocalLength
	}

	out.StyleMedium = NormalizeStyleMedium(string(out.StyleMedium))
	if strings.TrimSpace(out.Context) == "" {
		out.Context = DefaultContext
	}
	if strings.TrimSpace(out.ArtisticStyle) == "" {
		out.ArtisticStyle = DefaultArtisticStyle
	}
	if out.TextRender == nil {
		out.TextRender = []map[string]any{}
	}
	out.AspectRatio = NormalizeAspectRatio(out.AspectRatio)

	return out
}
