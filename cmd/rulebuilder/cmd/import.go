package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/core/config"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/core/db"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/store"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import <name> <schema.json>",
	Short: "Import a collection schema export as a new database",
	Long:  `Import validates a PocketBase collection schema export and installs it as a new database in the snapshot store. Pass - as the file to read the export from stdin.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

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
	if err != nil && !errors.Is(err, types.ErrSnapshotNotFound) {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if err == nil {
		st.LoadSnapshot(snap)
	}

	var data []byte
	if args[1] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[1])
	}
	if err != nil {
		return fmt.Errorf("failed to read schema export: %w", err)
	}
	if err := st.AddDatabase(args[0], data); err != nil {
		return err
	}

	if err := snapshots.Save(st.Snapshot()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	fmt.Printf("imported database %s (%d collections)\n", args[0], len(st.Graph().CollectionNames()))
	return nil
}
