package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDino loads the simulation configuration.
// Search order: customPath -> ~/.dino/config.yaml -> ./configs/dino.yaml -> embedded default.
// Files are decoded over the defaults, so a file may override only some keys.
func LoadDino(customPath string) (DinoConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DinoConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DinoConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/dino.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultDinoYAML)
	if err != nil {
		return DefaultDinoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Load loads the configuration, applies a preset and validates the result.
func Load(customPath string, preset DifficultyPreset) (DinoConfig, error) {
	cfg, err := LoadDino(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyDinoPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parse(data []byte) (DinoConfig, error) {
	cfg := DefaultDinoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DinoConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dino", filename)
}

// ApplyDinoPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyDinoPreset(cfg *DinoConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base = 4
		cfg.Speed.Growth = 1.05
	case DifficultyHard:
		cfg.Speed.Base = 6
		cfg.Speed.Growth = 1.15
		cfg.Obstacles.MinInterval = 36
		if cfg.Obstacles.MaxInterval < cfg.Obstacles.MinInterval {
			cfg.Obstacles.MaxInterval = cfg.Obstacles.MinInterval
		}
	case DifficultyNormal:
		def := DefaultDinoConfig()
		cfg.Speed = def.Speed
	}
}

// Encode returns the configuration as YAML.
func (c DinoConfig) Encode() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// WriteYAML saves the configuration to path.
func (c DinoConfig) WriteYAML(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
