package presets

// PresetConfig - a named bundle of style/camera/lighting/mood defaults.
// Loaded once into the read-only registry, never mutated afterwards.
type PresetConfig struct {
	ID            string
	Name          string
	Style         string
	Camera        string
	Lighting      string
	Mood          string
	Aspect        string // optional, "" = use global fallback
	BeautyDefault bool
}

// DirectiveOverrides - per-request overrides applied at composition time only
type DirectiveOverrides struct {
	Aspect string // "" or "auto" = keep preset/global aspect
	Beauty *bool  // nil = keep preset default
}
