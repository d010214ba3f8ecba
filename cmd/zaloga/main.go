// Command zaloga is an interactive inventory tracker backed by a local SQLite
// file.
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/zaloga/internal/config"
	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/shell"
	"github.com/erazemk/zaloga/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// options holds the values of the persistent flags. Empty means unset.
type options struct {
	configPath string
	dbPath     string
	logPath    string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)

		code := ExitError
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		os.Exit(code)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "zaloga",
		Short: "Interactive inventory tracker",
		Long: `zaloga keeps a list of things you own: what they are, where they are
and how many you have. Items live in a local SQLite file.

Running zaloga without a subcommand starts the interactive shell. Type help
at the prompt to list the shell commands.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}
	root.Version = Version

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.dbPath, "db", "d", "", "SQLite database path (default: inventory.db)")
	pf.StringVarP(&opts.logPath, "log", "l", "", "log file path (default: no file, errors to stderr only)")
	pf.StringVar(&opts.logLevel, "log-level", "", "minimum level written to the log file: debug, info, warn, error (default: info)")
	pf.StringVar(&opts.configPath, "config", "", "config file path (default: $XDG_CONFIG_HOME/zaloga/config.yml)")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError(err)
	})

	root.AddCommand(newInitCmd(opts))
	return root
}

// loadConfig resolves settings and applies the flags that were set.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("db") {
		cfg.DBPath = opts.dbPath
	}
	if cmd.Flags().Changed("log") {
		cfg.LogPath = opts.logPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore loads config, installs the logger and opens the migrated database.
// The returned cleanup closes the database and the log file.
func openStore(cmd *cobra.Command, opts *options) (*sql.DB, config.Config, func(), error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, config.Config{}, nil, configError(err)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	closeLog, err := setupLogger(cfg.LogPath, level)
	if err != nil {
		return nil, config.Config{}, nil, configError(err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		closeLog()
		return nil, config.Config{}, nil, err
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		closeLog()
		return nil, config.Config{}, nil, err
	}

	cleanup := func() {
		database.Close()
		closeLog()
	}

	count, err := store.CountItems(cmd.Context(), database)
	if err != nil {
		cleanup()
		return nil, config.Config{}, nil, err
	}
	slog.Info("database ready", "path", cfg.DBPath, "items", count)

	return database, cfg, cleanup, nil
}

func runShell(cmd *cobra.Command, opts *options) error {
	database, _, cleanup, err := openStore(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	sh := shell.New(database, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := sh.Run(cmd.Context()); err != nil {
		return err
	}

	slog.Info("shell closed")
	return nil
}
