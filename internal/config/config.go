// Package config provides YAML-based engine configuration loading for
// the match coordination engine.
package config

// EngineConfig contains all configuration for the match engine.
type EngineConfig struct {
	Rules   RulesConfig   `yaml:"rules"`
	Relay   RelayConfig   `yaml:"relay"`
	Archive ArchiveConfig `yaml:"archive"`
}

// RulesConfig defines the match rules the outcome engine runs under.
type RulesConfig struct {
	// TotalRounds is the number of rounds per match. The responder's
	// submission of the final round concludes the match.
	TotalRounds int `yaml:"total_rounds"`
}

// RelayConfig defines parameters for instructions handed to the
// matchmaking relay.
type RelayConfig struct {
	// TurnTimeoutSeconds is the timeout hint attached to AdvanceTurn
	// instructions.
	TurnTimeoutSeconds int `yaml:"turn_timeout_seconds"`

	// MessageBuffer is the coordinator's inbound event channel capacity.
	MessageBuffer int `yaml:"message_buffer"`
}

// ArchiveConfig defines the concluded-match result archive.
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}
