package config

import (
	_ "embed"
)

//go:embed defaults/gates.yaml
var defaultGatesYAML []byte

// DefaultGatesConfig returns the built-in configuration. It matches the
// embedded defaults/gates.yaml and is used when that file cannot be parsed.
func DefaultGatesConfig() GatesConfig {
	return GatesConfig{
		Physics: PhysicsConfig{
			Gravity: 12.8,
		},
		Player: PlayerConfig{
			SpawnX:       -2,
			SpawnY:       5,
			HalfSize:     0.05,
			FlyImpulse:   8,
			MaxFlySpeed:  3.8,
			CeilingY:     7,
			CeilingNudge: -0.1,
			TiltMin:      -3,
			TiltMax:      3,
		},
		Obstacles: ObstaclesConfig{
			Speed:           -4,
			GateSpacing:     4,
			SpawnX:          8,
			CleanupX:        -8,
			OffsetRange:     4,
			HalfWidth:       0.5,
			UpperBaseY:      7,
			UpperHalfHeight: 4,
			LowerBaseY:      -1,
			LowerHalfHeight: 3,
		},
		Scoring: ScoringConfig{
			ThresholdX: -2.5,
		},
		Arena: ArenaConfig{
			FloorY:        -0.5,
			CeilingY:      11.5,
			HalfThickness: 0.5,
			HalfWidth:     64,
		},
		View: ViewConfig{
			MinX: -8,
			MaxX: 9,
			MinY: -1,
			MaxY: 12,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGatesYAML
}
