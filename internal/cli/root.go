// Package cli implements the wikiedits command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jamesainslie/wikiedits/internal/config"
	"github.com/jamesainslie/wikiedits/internal/logger"
	"github.com/jamesainslie/wikiedits/internal/store"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded the configuration.
type app struct {
	configFile string
	envFile    string
	cfg        *config.Config
	logger     *slog.Logger
}

// RootCmd returns the wikiedits command tree.
func RootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "wikiedits",
		Short:         "Prepare and score multilingual Wikipedia edit datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.StringVar(&a.envFile, "env-file", "", "dotenv file with WIKIEDITS_* variables")
	pf.String("db", "", "edit database path")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.Bool("log-json", false, "log as JSON")

	root.AddCommand(
		MigrateCmd(a),
		ContextCmd(a),
		CleanCmd(a),
		DatasetCmd(a),
		SimilarityCmd(a),
		MergeCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Sources{File: a.configFile, EnvFile: a.envFile})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrideString(flags, "db", &cfg.Store.Path)
	overrideString(flags, "log-level", &cfg.Log.Level)
	overrideBool(flags, "log-json", &cfg.Log.JSON)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.Setup(logger.Config{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		Output:     cmd.ErrOrStderr(),
		TimeFormat: cfg.Log.TimeFormat,
	})
	return nil
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, store.Config{
		Path:        a.cfg.Store.Path,
		BusyTimeout: a.cfg.Store.BusyTimeout,
		Logger:      a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", a.cfg.Store.Path, err)
	}
	return st, nil
}

func overrideString(flags *pflag.FlagSet, name string, dst *string) {
	if flags.Changed(name) {
		*dst, _ = flags.GetString(name)
	}
}

func overrideInt(flags *pflag.FlagSet, name string, dst *int) {
	if flags.Changed(name) {
		*dst, _ = flags.GetInt(name)
	}
}

func overrideBool(flags *pflag.FlagSet, name string, dst *bool) {
	if flags.Changed(name) {
		*dst, _ = flags.GetBool(name)
	}
}
