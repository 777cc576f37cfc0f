// Package cli provides the Cobra commands of the gocache tool.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gocache/internal/config"
	"gocache/internal/logging"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        zerolog.Logger
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.NewViper()}
	defaults := config.Default()

	root := &cobra.Command{
		Use:   "gocache",
		Short: "In-memory LRU cache toolkit",
		Long: `gocache exercises a bounded LRU cache with hit/miss/eviction metrics.

Use 'gocache demo' for a walkthrough of eviction order, 'gocache bench' to
drive the cache from many goroutines, and 'gocache gen' / 'gocache replay' to
record and replay operation traces.

Every flag can also be set in a config file (--config) or through a
GOCACHE_* environment variable, e.g. GOCACHE_CAPACITY=4096.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (toml, yaml or json)")
	pf.String("log-level", defaults.Log.Level, "log level: trace, debug, info, warn, error")
	pf.String("log-format", defaults.Log.Format, "log format: console or json")

	root.AddCommand(
		newDemoCommand(a),
		newBenchCommand(a),
		newGenCommand(a),
		newReplayCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	if err := a.v.BindPFlag("log.level", cmd.Flags().Lookup("log-level")); err != nil {
		return fmt.Errorf("bind log-level: %w", err)
	}
	if err := a.v.BindPFlag("log.format", cmd.Flags().Lookup("log-format")); err != nil {
		return fmt.Errorf("bind log-format: %w", err)
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.NewFromConfigValues(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	ctx := logging.WithContext(cmd.Context(), a.log)
	cmd.SetContext(logging.WithComponent(ctx, cmd.Name()))
	return nil
}

// Execute runs the root command and exits 1 on error.
func Execute(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
