package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "doom.yaml"

// LoadDoom loads the game configuration.
// Search order: customPath -> ~/.tui-doom/configs/doom.yaml -> ./configs/doom.yaml -> embedded default
//
// Files are decoded on top of the built-in defaults and normalized, so a
// config that only sets a few keys is valid.
func LoadDoom(customPath string) (DoomConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultDoomConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultDoomConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDoomYAML)
	if err != nil {
		return DefaultDoomConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and normalizes the result.
func Parse(data []byte) (DoomConfig, error) {
	cfg := DefaultDoomConfig()
	// Tables are replaced wholesale by the file when present, not merged.
	cfg.Enemies.Types = nil
	cfg.Weapons.Types = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultDoomConfig(), err
	}
	d := DefaultDoomConfig()
	if cfg.Enemies.Types == nil {
		cfg.Enemies.Types = d.Enemies.Types
	}
	if cfg.Weapons.Types == nil {
		cfg.Weapons.Types = d.Weapons.Types
	}
	cfg.Normalize()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tui-doom", "configs", filename)
}

// ApplyDoomPreset modifies the config based on a difficulty preset.
// The enemy stat table is scaled in place; call it once per loaded config.
func ApplyDoomPreset(cfg *DoomConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	m := MultipliersFor(preset)
	scaled := make(map[string]EnemyStats, len(cfg.Enemies.Types))
	for name, s := range cfg.Enemies.Types {
		s.Health *= m.EnemyHealth
		s.Damage *= m.EnemyDamage
		s.Speed *= m.EnemySpeed
		scaled[name] = s
	}
	cfg.Enemies.Types = scaled
}
