// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for the gates game.
package config

// GatesConfig contains all tunables of the game. Units are world units and
// seconds; the world's y axis points up.
type GatesConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Obstacles ObstaclesConfig `yaml:"obstacles"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Arena     ArenaConfig     `yaml:"arena"`
	View      ViewConfig      `yaml:"view"`
}

// PhysicsConfig defines the simulation parameters.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"` // Downward acceleration
}

// PlayerConfig defines the controllable body and lift control.
type PlayerConfig struct {
	SpawnX       float64 `yaml:"spawn_x"`
	SpawnY       float64 `yaml:"spawn_y"`
	HalfSize     float64 `yaml:"half_size"`
	FlyImpulse   float64 `yaml:"fly_impulse"`   // Added to max(vy, 0) on each lift press
	MaxFlySpeed  float64 `yaml:"max_fly_speed"` // Upper bound of vy after a lift
	CeilingY     float64 `yaml:"ceiling_y"`     // Soft ceiling altitude
	CeilingNudge float64 `yaml:"ceiling_nudge"` // vy forced above the soft ceiling
	TiltMin      float64 `yaml:"tilt_min"`      // vy mapped to full nose-down
	TiltMax      float64 `yaml:"tilt_max"`      // vy mapped to full nose-up
}

// ObstaclesConfig defines gate spawning, movement and cleanup.
type ObstaclesConfig struct {
	Speed           float64 `yaml:"speed"`        // Horizontal velocity, negative = leftward
	GateSpacing     float64 `yaml:"gate_spacing"` // Minimum distance between consecutive gates
	SpawnX          float64 `yaml:"spawn_x"`
	CleanupX        float64 `yaml:"cleanup_x"`
	OffsetRange     float64 `yaml:"offset_range"` // Vertical offset drawn from [0, offset_range)
	HalfWidth       float64 `yaml:"half_width"`
	UpperBaseY      float64 `yaml:"upper_base_y"`
	UpperHalfHeight float64 `yaml:"upper_half_height"`
	LowerBaseY      float64 `yaml:"lower_base_y"`
	LowerHalfHeight float64 `yaml:"lower_half_height"`
}

// ScoringConfig defines when a gate counts as passed.
type ScoringConfig struct {
	ThresholdX float64 `yaml:"threshold_x"`
}

// ArenaConfig defines the static floor and ceiling geometry.
type ArenaConfig struct {
	FloorY        float64 `yaml:"floor_y"`
	CeilingY      float64 `yaml:"ceiling_y"`
	HalfThickness float64 `yaml:"half_thickness"`
	HalfWidth     float64 `yaml:"half_width"`
}

// ViewConfig defines the world rectangle mapped onto the terminal.
type ViewConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
