package presets

// presetOrder - listing order for UI catalogs
var presetOrder = []string{
	"portrait-studio",
	"fashion-editorial",
	"beauty-closeup",
	"food-styling",
	"cinematic-scene",
	"product-hero",
	"cartoon-pop",
}

// presetTable - process-wide, read-only preset data
var presetTable = map[string]PresetConfig{
	"portrait-studio": {
		ID:            "portrait-studio",
		Name:          "Studio Portrait",
		Style:         "Classic studio portrait with clean seamless backdrop",
		Camera:        "85mm prime lens, eye-level framing, shallow depth of field",
		Lighting:      "Large softbox key with subtle rim light, soft shadow falloff",
		Mood:          "Calm, confident, timeless",
		Aspect:        "3:4",
		BeautyDefault: true,
	},
	"fashion-editorial": {
		ID:            "fashion-editorial",
		Name:          "Fashion Editorial",
		Style:         "High-end editorial fashion imagery with dynamic posing",
		Camera:        "35mm lens, full-body or three-quarter framing, dramatic angles",
		Lighting:      "Hard directional light with strong contrast and defined shadows",
		Mood:          "Bold, expressive, magazine-cover energy",
		Aspect:        "3:4",
		BeautyDefault: true,
	},
	"beauty-closeup": {
		ID:            "beauty-closeup",
		Name:          "Beauty Close-up",
		Style:         "Macro beauty photography focused on skin and makeup detail",
		Camera:        "100mm macro lens, tight face crop, razor-sharp focus on eyes",
		Lighting:      "Ring light with soft fill, no harsh facial shadows",
		Mood:          "Polished, luminous, flawless",
		Aspect:        "1:1",
		BeautyDefault: true,
	},
	"food-styling": {
		ID:            "food-styling",
		Name:          "Food Styling",
		Style:         "Appetizing culinary photography with careful prop styling",
		Camera:        "50mm lens, 45-degree or top-down angle, selective focus",
		Lighting:      "Window-style side light with gentle bounce fill",
		Mood:          "Fresh, warm, inviting",
		Aspect:        "4:3",
		BeautyDefault: false,
	},
	"cinematic-scene": {
		ID:            "cinematic-scene",
		Name:          "Cinematic Scene",
		Style:         "Film-quality narrative frame with environmental storytelling",
		Camera:        "Anamorphic wide lens, deliberate composition, leading lines",
		Lighting:      "Motivated practical lighting, strong mood, deep shadows",
		Mood:          "Dramatic, atmospheric, story-driven",
		Aspect:        "16:9",
		BeautyDefault: false,
	},
	"product-hero": {
		ID:            "product-hero",
		Name:          "Product Hero",
		Style:         "Commercial product hero shot on a minimal set",
		Camera:        "90mm tilt-shift lens, straight-on product framing",
		Lighting:      "Gradient sweep light with controlled specular highlights",
		Mood:          "Premium, precise, desirable",
		Aspect:        "",
		BeautyDefault: false,
	},
	"cartoon-pop": {
		ID:            "cartoon-pop",
		Name:          "Cartoon Pop",
		Style:         "Stylized animation look with bold shapes and clean lines",
		Camera:        "Flat illustrative perspective with exaggerated proportions",
		Lighting:      "Cel-shaded lighting with vivid rim accents",
		Mood:          "Playful, vibrant, energetic",
		Aspect:        "1:1",
		BeautyDefault: false,
	},
}

// Lookup - find a preset by id
func Lookup(presetID string) (PresetConfig, bool) {
	p, ok := presetTable[presetID]
	return p, ok
}

// List - all presets in catalog order
func List() []PresetConfig {
	out := make([]PresetConfig, 0, len(presetOrder))
	for _, id := range presetOrder {
		if p, ok := presetTable[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
