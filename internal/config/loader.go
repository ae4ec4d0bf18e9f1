package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEngine loads the engine configuration.
// Search order: customPath -> ~/.matchkit/config.yaml -> ./configs/matchkit.yaml -> embedded default
func LoadEngine(customPath string) (EngineConfig, error) {
	var cfg EngineConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return normalize(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return normalize(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/matchkit.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return normalize(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		return DefaultEngineConfig(), nil // Fallback to hardcoded if embed fails
	}
	return normalize(cfg), nil
}

// normalize fills unset fields with defaults so a partial config file
// stays usable.
func normalize(cfg EngineConfig) EngineConfig {
	def := DefaultEngineConfig()
	if cfg.Rules.TotalRounds == 0 {
		cfg.Rules.TotalRounds = def.Rules.TotalRounds
	}
	if cfg.Relay.TurnTimeoutSeconds == 0 {
		cfg.Relay.TurnTimeoutSeconds = def.Relay.TurnTimeoutSeconds
	}
	if cfg.Relay.MessageBuffer == 0 {
		cfg.Relay.MessageBuffer = def.Relay.MessageBuffer
	}
	if cfg.Archive.DBPath == "" {
		cfg.Archive.DBPath = def.Archive.DBPath
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".matchkit", filename)
}
