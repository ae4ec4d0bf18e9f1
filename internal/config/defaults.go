package config

import (
	_ "embed"
)

//go:embed defaults/matchkit.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Rules: RulesConfig{
			TotalRounds: 5,
		},
		Relay: RelayConfig{
			TurnTimeoutSeconds: 36000,
			MessageBuffer:      256,
		},
		Archive: ArchiveConfig{
			Enabled: true,
			DBPath:  "~/.matchkit/results.db",
		},
	}
}
