// Package config provides configuration management for the rule builder.
package config

import "time"

// EditorConfig holds configuration for the interactive editor session.
type EditorConfig struct {
	DatabaseURL      string
	SeedBundle       string
	ColorProfile     string
	SnapshotDebounce time.Duration
}

// DefaultEditorConfig returns configuration with default values.
func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		DatabaseURL:      "sqlite://rulebuilder.db",
		SeedBundle:       "",
		ColorProfile:     "auto",
		SnapshotDebounce: 500 * time.Millisecond,
	}
}
