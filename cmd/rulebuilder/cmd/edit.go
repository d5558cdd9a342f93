package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/core/config"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/core/db"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/store"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/tui"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

const Version = "0.1.0"

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Start the interactive rule editor",
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("seed", "", "seed bundle path for first run")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetString("seed")
		cfg.SeedBundle = seed
	}

	applyColorProfile(cfg.ColorProfile)

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := db.MigrateUp(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}
	snapshots := db.NewSnapshotStore(queries)

	st := store.New()
	snap, err := snapshots.Load()
	switch {
	case err == nil:
		st.LoadSnapshot(snap)
	case errors.Is(err, types.ErrSnapshotNotFound):
		// First run: fall through to the seed bundle below.
	default:
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if cfg.SeedBundle != "" {
		bundle, err := os.ReadFile(cfg.SeedBundle)
		if err != nil {
			return fmt.Errorf("failed to read seed bundle: %w", err)
		}
		if err := st.Seed(bundle); err != nil {
			return err
		}
	}

	// Persist on every committed edit, debounced. Snapshot failures must not
	// abort the session; the final save below catches anything skipped.
	var lastSave time.Time
	st.OnCommit(func(snap types.Snapshot) {
		if time.Since(lastSave) < cfg.SnapshotDebounce {
			return
		}
		if err := snapshots.Save(snap); err != nil {
			log.Printf("snapshot save failed: %v", err)
			return
		}
		lastSave = time.Now()
	})

	log.Printf("Starting rule builder v%s (%s)", Version, cfg.DatabaseURL)
	if err := tui.Run(st); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if err := snapshots.Save(st.Snapshot()); err != nil {
		return fmt.Errorf("failed to save final snapshot: %w", err)
	}
	return nil
}

// applyColorProfile forces the rendering profile when configured. "auto"
// keeps terminal detection.
func applyColorProfile(profile string) {
	switch profile {
	case "none":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "ansi":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "ansi256":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
