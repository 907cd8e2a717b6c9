package presets

import (
	"fmt"
	"strings"
)

// ErrUnknownPreset - 등록되지 않은 preset id
var ErrUnknownPreset = fmt.Errorf("unknown preset id")

// defaultAspect - global fallback when neither override nor preset sets one
const defaultAspect = "1:1"

// aspectAuto - sentinel meaning "no override, use the preset aspect"
const aspectAuto = "auto"

// qualityBlock - static quality/resolution directive, always first
const qualityBlock = `[QUALITY]
Ultra-high resolution output with professional studio-grade detail.
Sharp focus across the subject, rich micro-texture, no compression artifacts.`

// instructionBlock - static generation instruction, always last
const instructionBlock = `[INSTRUCTION]
Generate exactly ONE image following every directive above.
Single cohesive composition - no collages, no split screens, no text overlays.`

// ResolveAspect - override wins unless absent or "auto"; else preset; else "1:1"
func ResolveAspect(preset PresetConfig, o DirectiveOverrides) string {
	if o.Aspect != "" && o.Aspect != aspectAuto {
		return o.Aspect
	}
	if preset.Aspect != "" {
		return preset.Aspect
	}
	return defaultAspect
}

// ResolveBeauty - override wins if present, else preset default
func ResolveBeauty(preset PresetConfig, o DirectiveOverrides) bool {
	if o.Beauty != nil {
		return *o.Beauty
	}
	return preset.BeautyDefault
}

// Compose - build the full directive for a preset. Pure: identical inputs
// always yield byte-identical output. Section order is fixed:
// quality, global, preset, instruction.
func Compose(presetID string, o DirectiveOverrides) (string, error) {
	preset, ok := Lookup(presetID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, presetID)
	}

	aspect := ResolveAspect(preset, o)
	beauty := ResolveBeauty(preset, o)

	globalBlock := strings.Join([]string{
		"[GLOBAL]",
		"Aspect ratio: " + aspect,
		"Color pipeline: neutral professional grade with accurate skin tones",
		"Noise floor: clean shadows, no visible grain or banding",
	}, "\n")

	presetBlock := strings.Join([]string{
		"[PRESET " + preset.ID + "]",
		"Style: " + preset.Style,
		"Camera: " + preset.Camera,
		"Lighting: " + preset.Lighting,
		"Mood: " + preset.Mood,
		"Beauty retouch: " + beautyLabel(beauty),
	}, "\n")

	return strings.Join([]string{
		qualityBlock,
		globalBlock,
		presetBlock,
		instructionBlock,
	}, "\n\n"), nil
}

func beautyLabel(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
