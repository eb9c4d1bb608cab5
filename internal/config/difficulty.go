package config

import "fmt"

// presetScaling describes how a preset reshapes the obstacle stream.
// Both factors apply to the whole session, so gate speed and spacing stay
// constant while playing.
type presetScaling struct {
	speed   float64 // Multiplier on obstacle speed
	spacing float64 // Multiplier on gate spacing
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {speed: 0.75, spacing: 1.5},
	DifficultyNormal: {speed: 1.0, spacing: 1.0},
	DifficultyHard:   {speed: 1.25, spacing: 0.85},
}

// ParsePreset converts a CLI string into a preset.
// The empty string means "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(s)
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty or unknown preset leaves the config untouched.
func ApplyPreset(cfg *GatesConfig, preset DifficultyPreset) {
	scale, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Obstacles.Speed *= scale.speed
	cfg.Obstacles.GateSpacing *= scale.spacing
}
