package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the user and local config dirs.
const configFile = "gates.yaml"

// Load loads the game configuration and validates it.
// Search order: customPath -> ~/.gates/configs/gates.yaml -> ./configs/gates.yaml -> embedded default
func Load(customPath string) (GatesConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (GatesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GatesConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Decode(data)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Decode(defaultGatesYAML)
	if err != nil {
		return DefaultGatesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Decode parses YAML on top of the built-in defaults, so a partial file only
// overrides the keys it names.
func Decode(data []byte) (GatesConfig, error) {
	cfg := DefaultGatesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Encode serializes the config to YAML.
func Encode(cfg GatesConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gates", "configs", filename)
}

// Validate rejects configurations the simulation cannot run with.
func (c GatesConfig) Validate() error {
	var errs []error
	if c.Player.TiltMin == c.Player.TiltMax {
		errs = append(errs, errors.New("player.tilt_min must differ from player.tilt_max"))
	}
	if c.Player.MaxFlySpeed <= 0 {
		errs = append(errs, errors.New("player.max_fly_speed must be positive"))
	}
	if c.Player.HalfSize <= 0 {
		errs = append(errs, errors.New("player.half_size must be positive"))
	}
	if c.Obstacles.Speed >= 0 {
		errs = append(errs, errors.New("obstacles.speed must be negative (gates scroll left)"))
	}
	if c.Obstacles.GateSpacing <= 0 {
		errs = append(errs, errors.New("obstacles.gate_spacing must be positive"))
	}
	if c.Obstacles.OffsetRange < 0 {
		errs = append(errs, errors.New("obstacles.offset_range must not be negative"))
	}
	if c.Obstacles.CleanupX >= c.Obstacles.SpawnX {
		errs = append(errs, errors.New("obstacles.cleanup_x must be left of obstacles.spawn_x"))
	}
	if c.View.MaxX <= c.View.MinX || c.View.MaxY <= c.View.MinY {
		errs = append(errs, errors.New("view must have positive width and height"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
