// Package library holds the built-in workflow presets and blueprint catalog
// served read-only to the studio UI.
package library

import "github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"

// Workflow is a preset that seeds the prompt box for a production style.
type Workflow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	BasePrompt  string `json:"base_prompt"`
}

// Blueprint is a curated ready-to-render scene with browsing metadata.
type Blueprint struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Scene       blueprint.Scene `json:"scene"`
}

var workflows = []Workflow{
	{
		ID:          "ecommerce",
		Name:        "E-Commerce Studio",
		Description: "Clean background, perfect product lighting",
		Icon:        "🛍️",
		BasePrompt:  "Create a high-end product shot on a clean background.",
	},
	{
		ID:          "gaming",
		Name:        "Gaming Asset",
		Description: "Dynamic poses, cinematic lighting",
		Icon:        "🎮",
		BasePrompt:  "Create a fantasy game character concept art.",
	},
	{
		ID:          "ads",
		Name:        "Ad Campaign",
		Description: "Lifestyle context, vibrant colors",
		Icon:        "📢",
		BasePrompt:  "Create a lifestyle advertisement scene.",
	},
}

var blueprints = []Blueprint{
	{
		ID:          "eco-cosmetic",
		Category:    "E-Commerce",
		Title:       "Minimalist Cosmetic Bottle",
		Description: "High-end skincare product on natural stone with soft dappled sunlight.",
		Tags:        []string{"product", "skincare", "natural", "luxury"},
		Scene: blueprint.Scene{
			ShortDescription: "A luxury skincare serum bottle sitting on a beige travertine stone. Soft dappled sunlight creates organic shadows.",
			Objects: []blueprint.Object{{
				Description:   "Glass serum bottle with gold dropper",
				Location:      "Center",
				ShapeAndColor: "Cylindrical amber glass",
			}},
			BackgroundSetting: "Beige travertine stone surface with a blurred natural background",
			Lighting:          blueprint.Lighting{Conditions: "Natural sunlight with gobos", Direction: "Side", Shadows: "Dappled foliage"},
			Aesthetics:        blueprint.Aesthetics{Composition: "Rule of thirds", ColorScheme: "Warm neutrals", MoodAtmosphere: "Serene and organic"},
			PhotoChars:        blueprint.PhotoCharacteristics{DepthOfField: "Shallow", Focus: "Sharp on label", CameraAngle: "Slightly high angle", LensFocalLength: "85mm"},
			StyleMedium:       blueprint.StylePhotograph,
			Context:           "Beauty advertisement",
			ArtisticStyle:     "realistic",
			TextRender:        []map[string]any{},
			AspectRatio:       "1:1",
		},
	},
	{
		ID:          "cyberpunk-street",
		Category:    "Gaming",
		Title:       "Cyberpunk Street Samurai",
		Description: "Neon-lit futuristic warrior in a rain-slicked alleyway.",
		Tags:        []string{"scifi", "character", "neon", "dark"},
		Scene: blueprint.Scene{
			ShortDescription: "A cybernetic street samurai standing in a rainy neon-lit alleyway at night.",
			Objects: []blueprint.Object{{
				Description:       "Cybernetic warrior holding a glowing katana",
				Location:          "Center",
				AppearanceDetails: "Chrome plating, LED accents",
			}},
			BackgroundSetting: "Futuristic city alleyway with neon signs reflecting in puddles",
			Lighting:          blueprint.Lighting{Conditions: "Neon city lights", Direction: "Backlit and rim lighting", Shadows: "High contrast"},
			Aesthetics:        blueprint.Aesthetics{Composition: "Centered heroic", ColorScheme: "Cyberpunk Cyan and Magenta", MoodAtmosphere: "Gritty and intense"},
			PhotoChars:        blueprint.PhotoCharacteristics{DepthOfField: "Cinematic", Focus: "Sharp on character", CameraAngle: "Low angle", LensFocalLength: "35mm"},
			StyleMedium:       blueprint.StyleDigitalArt,
			Context:           "Video game concept art",
			ArtisticStyle:     "realistic",
			TextRender:        []map[string]any{},
			AspectRatio:       "16:9",
		},
	},
	{
		ID:          "sneaker-float",
		Category:    "E-Commerce",
		Title:       "Levitating Sneaker",
		Description: "Dynamic floating sneaker shot with exploded elements.",
		Tags:        []string{"shoe", "sport", "dynamic", "tech"},
		Scene: blueprint.Scene{
			ShortDescription: "A high-tech running shoe levitating in mid-air with deconstructed elements floating around it.",
			Objects: []blueprint.Object{{
				Description: "Neon green and black running shoe",
				Location:    "Floating center",
				Orientation: "Dynamic tilt",
			}},
			BackgroundSetting: "Abstract gradient studio background",
			Lighting:          blueprint.Lighting{Conditions: "Studio high-key", Direction: "Multi-point", Shadows: "Minimal"},
			Aesthetics:        blueprint.Aesthetics{Composition: "Dynamic diagonal", ColorScheme: "Vibrant neon", MoodAtmosphere: "Energetic"},
			PhotoChars:        blueprint.PhotoCharacteristics{DepthOfField: "Deep", Focus: "Sharp throughout", CameraAngle: "Eye level", LensFocalLength: "50mm"},
			StyleMedium:       blueprint.StylePhotograph,
			Context:           "Sportswear advertisement",
			ArtisticStyle:     "realistic",
			TextRender:        []map[string]any{},
			AspectRatio:       "1:1",
		},
	},
	{
		ID:          "arch-modern",
		Category:    "Architecture",
		Title:       "Modern Concrete Villa",
		Description: "Minimalist concrete architecture at blue hour.",
		Tags:        []string{"house", "exterior", "modern", "dusk"},
		Scene: blueprint.Scene{
			ShortDescription: "Exterior of a modern concrete villa at dusk (blue hour) with warm interior lights glowing.",
			Objects: []blueprint.Object{{
				Description:       "Modern concrete house structure",
				Location:          "Mid-ground",
				AppearanceDetails: "Clean lines, glass windows",
			}},
			BackgroundSetting: "Manicured lawn and twilight sky",
			Lighting:          blueprint.Lighting{Conditions: "Blue hour twilight", Direction: "Ambient", Shadows: "Soft"},
			Aesthetics:        blueprint.Aesthetics{Composition: "Wide symmetrical", ColorScheme: "Cool blue and warm orange", MoodAtmosphere: "Luxurious and calm"},
			PhotoChars:        blueprint.PhotoCharacteristics{DepthOfField: "Deep", Focus: "Sharp", CameraAngle: "Eye level", LensFocalLength: "24mm"},
			StyleMedium:       blueprint.StylePhotograph,
			Context:           "Architectural visualization",
			ArtisticStyle:     "realistic",
			TextRender:        []map[string]any{},
			AspectRatio:       "16:9",
		},
	},
}

// Workflows returns the preset list in display order.
func Workflows() []Workflow {
	return append([]Workflow(nil), workflows...)
}

// Blueprints returns the curated catalog. Scenes are cloned so callers can
// edit a copy without touching the library.
func Blueprints() []Blueprint {
	out := make([]Blueprint, len(blueprints))
	for i, b := range blueprints {
		out[i] = b
		out[i].Tags = append([]string(nil), b.Tags...)
		out[i].Scene = b.Scene.Clone()
	}
	return out
}

// DefaultScene is the neutral editor document shown before any interpretation.
func DefaultScene() blueprint.Scene {
	return blueprint.Scene{
		ShortDescription:  "Waiting for input...",
		Objects:           []blueprint.Object{},
		BackgroundSetting: "Studio grey",
		Lighting:          blueprint.Lighting{Conditions: "Studio", Direction: "Front", Shadows: "Soft"},
		Aesthetics:        blueprint.Aesthetics{Composition: "Centered", ColorScheme: "Neutral", MoodAtmosphere: "Professional"},
		PhotoChars:        blueprint.PhotoCharacteristics{DepthOfField: "Deep", Focus: "Sharp", CameraAngle: "Eye level", LensFocalLength: "50mm"},
		StyleMedium:       blueprint.StylePhotograph,
		Context:           "Professional studio production",
		ArtisticStyle:     "realistic",
		TextRender:        []map[string]any{},
		AspectRatio:       "1:1",
	}
}
