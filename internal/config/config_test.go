package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Gmail.MaxResults != 100 {
		t.Errorf("expected MaxResults=100, got %d", cfg.Gmail.MaxResults)
	}

	if cfg.Rules.Strict {
		t.Error("expected permissive rule handling by default")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected Level=info, got %s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid max_results",
			modify: func(c *Config) {
				c.Gmail.MaxResults = 0
			},
			wantErr: true,
		},
		{
			name: "missing database path",
			modify: func(c *Config) {
				c.Database.Path = ""
			},
			wantErr: true,
		},
		{
			name: "missing rules path",
			modify: func(c *Config) {
				c.Rules.Path = ""
			},
			wantErr: true,
		},
		{
			name: "bad log level",
			modify: func(c *Config) {
				c.Log.Level = "loud"
			},
			wantErr: true,
		},
		{
			name: "bad log format",
			modify: func(c *Config) {
				c.Log.Format = "yaml"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[gmail]
max_results = 25

[rules]
path = "` + filepath.Join(dir, "rules.json") + `"
strict = true

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Gmail.MaxResults != 25 {
		t.Errorf("expected MaxResults=25, got %d", cfg.Gmail.MaxResults)
	}
	if !cfg.Rules.Strict {
		t.Error("expected strict mode enabled")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	// Unset sections keep their defaults
	if cfg.Gmail.TokenPath == "" {
		t.Error("expected default token path to survive partial config")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gmail.MaxResults != 100 {
		t.Errorf("expected defaults, got MaxResults=%d", cfg.Gmail.MaxResults)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"

	log := cfg.NewLogger()
	if log.GetLevel().String() != "warning" {
		t.Errorf("expected warning level, got %s", log.GetLevel())
	}
}
