package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/store"
)

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or upgrade the inventory database and exit",
		Long: `init creates the database file and its tables if they do not exist, and
applies any pending migrations. It is safe to run on an existing database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts)
		},
	}
}

func runInit(cmd *cobra.Command, opts *options) error {
	database, cfg, cleanup, err := openStore(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	version, err := db.SchemaVersion(database)
	if err != nil {
		return err
	}
	count, err := store.CountItems(cmd.Context(), database)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database ready: %s\n", cfg.DBPath)
	fmt.Fprintf(out, "Schema version: %d\n", version)
	fmt.Fprintf(out, "Items: %d\n", count)
	return nil
}
