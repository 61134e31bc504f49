package config

// Config represents the application configuration
type Config struct {
	Gmail    GmailConfig    `toml:"gmail"`
	Database DatabaseConfig `toml:"database"`
	Rules    RulesConfig    `toml:"rules"`
	Log      LogConfig      `toml:"log"`
}

// GmailConfig contains Gmail-specific settings
type GmailConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	TokenPath       string `toml:"token_path"`
	MaxResults      int    `toml:"max_results"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// RulesConfig contains rule-file settings
type RulesConfig struct {
	// Path of the JSON rule file
	Path string `toml:"path"`
	// Strict rejects rule files with unknown fields, operators, or actions
	// instead of silently matching nothing
	Strict bool `toml:"strict"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Gmail: GmailConfig{
			CredentialsPath: "~/.config/mailrules/credentials.json",
			TokenPath:       "~/.config/mailrules/token.json",
			MaxResults:      100,
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/mailrules/mailrules.db",
		},
		Rules: RulesConfig{
			Path:   "~/.config/mailrules/rules.json",
			Strict: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
