package blueprint

import "strings"

// StyleMedium enumerates supported rendering media for a scene.
type StyleMedium string

const (
	StylePhotograph  StyleMedium = "photograph"
	StyleDigitalArt  StyleMedium = "digital_art"
	Style3DRender    StyleMedium = "3d_render"
	StyleOilPainting StyleMedium = "oil_painting"
)

// Object describes one subject placed in the scene. Only the description is
// required; everything else refines placement and appearance.
type Object struct {
	Description       string `json:"description"`
	Location          string `json:"location,omitempty"`
	Relationship      string `json:"relationship,omitempty"`
	RelativeSize      string `json:"relative_size,omitempty"`
	ShapeAndColor     string `json:"shape_and_color,omitempty"`
	Texture           string `json:"texture,omitempty"`
	AppearanceDetails string `json:"appearance_details,omitempty"`
	NumberOfObjects   int    `json:"number_of_objects,omitempty"`
	Orientation       string `json:"orientation,omitempty"`
}

// Lighting captures the light setup of the scene.
type Lighting struct {
	Conditions string `json:"conditions"`
	Direction  string `json:"direction"`
	Shadows    string `json:"shadows"`
}

// Aesthetics captures compositional and tonal direction.
type Aesthetics struct {
	Composition    string `json:"composition"`
	ColorScheme    string `json:"color_scheme"`
	MoodAtmosphere string `json:"mood_atmosphere"`
}

// PhotoCharacteristics captures the virtual camera setup.
type PhotoCharacteristics struct {
	DepthOfField    string `json:"depth_of_field"`
	Focus           string `json:"focus"`
	CameraAngle     string `json:"camera_angle"`
	LensFocalLength string `json:"lens_focal_length"`
}

// Scene is the canonical structured prompt consumed by the image engine. The
// JSON tags mirror the engine's "structured prompt" schema so a normalized
// document can be forwarded verbatim.
type Scene struct {
	ShortDescription  string               `json:"short_description"`
	Objects           []Object             `json:"objects"`
	BackgroundSetting string               `json:"background_setting"`
	Lighting          Lighting             `json:"lighting"`
	Aesthetics        Aesthetics           `json:"aesthetics"`
	PhotoChars        PhotoCharacteristics `json:"photographic_characteristics"`
	StyleMedium       StyleMedium          `json:"style_medium"`
	Context           string               `json:"context"`
	ArtisticStyle     string               `json:"artistic_style"`
	TextRender        []map[string]any     `json:"text_render"`
	AspectRatio       string               `json:"aspect_ratio,omitempty"`
}

var allowedAspectRatios = map[string]struct{}{
	"1:1":  {},
	"16:9": {},
	"9:16": {},
	"4:3":  {},
}

// NormalizeAspectRatio sanitizes free-form input into a supported ratio token.
func NormalizeAspectRatio(aspect string) string {
	aspect = strings.TrimSpace(aspect)
	if _, ok := allowedAspectRatios[aspect]; ok {
		return aspect
	}
	return DefaultAspectRatio
}

// NormalizeStyleMedium sanitizes free-form input into a supported medium.
func NormalizeStyleMedium(medium string) StyleMedium {
	switch StyleMedium(strings.ToLower(strings.TrimSpace(medium))) {
	case StyleDigitalArt:
		return StyleDigitalArt
	case Style3DRender:
		return Style3DRender
	case StyleOilPainting:
		return StyleOilPainting
	default:
		return StylePhotograph
	}
}

// Clone returns a deep copy of the scene. Slices and nested maps are copied so
// the clone can be stored or mutated without aliasing the original.
func (s Scene) Clone() Scene {
	clone := s
	if s.Objects != nil {
		clone.Objects = append([]Object(nil), s.Objects...)
	}
	if s.TextRender != nil {
		clone.TextRender = make([]map[string]any, len(s.TextRender))
		for i, entry := range s.TextRender {
			copied := make(map[string]any, len(entry))
			for k, v := range entry {
				copied[k] = v
			}
			clone.TextRender[i] = copied
		}
	}
	return clone
}
