package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*EditorConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultEditorConfig
	v.SetDefault("editor.database_url", "sqlite://rulebuilder.db")
	v.SetDefault("editor.seed_bundle", "")
	v.SetDefault("editor.color_profile", "auto")
	v.SetDefault("editor.snapshot_debounce", "500ms")

	// Bind environment variables with RB_ prefix
	v.SetEnvPrefix("RB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &EditorConfig{
		DatabaseURL:      v.GetString("editor.database_url"),
		SeedBundle:       v.GetString("editor.seed_bundle"),
		ColorProfile:     v.GetString("editor.color_profile"),
		SnapshotDebounce: v.GetDuration("editor.snapshot_debounce"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the database URL scheme, color profile name, and
// debounce interval.
func validateConfig(cfg *EditorConfig) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url must not be empty")
	}
	if !strings.HasPrefix(cfg.DatabaseURL, "sqlite://") && !strings.HasPrefix(cfg.DatabaseURL, "postgres://") {
		return fmt.Errorf("database_url must use sqlite:// or postgres:// scheme, got %q", cfg.DatabaseURL)
	}
	switch cfg.ColorProfile {
	case "auto", "ansi", "ansi256", "truecolor", "none":
	default:
		return fmt.Errorf("color_profile must be one of auto, ansi, ansi256, truecolor, none, got %q", cfg.ColorProfile)
	}
	if cfg.SnapshotDebounce < 0 {
		return fmt.Errorf("snapshot_debounce must not be negative, got %v", cfg.SnapshotDebounce)
	}
	return nil
}
