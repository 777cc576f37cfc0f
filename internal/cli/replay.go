package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gocache/internal/config"
	"gocache/internal/logging"
	"gocache/internal/workload"
)

func newReplayCommand(a *app) *cobra.Command {
	d := config.Default()
	var strict bool
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Apply a recorded trace to a fresh cache",
		Long: `Read a trace written by 'gocache gen' (or by hand) and apply it in order
to an empty cache, then print the resulting metrics.

With --strict every GET must hit; the first miss stops the replay with a
key-not-found error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, a, args[0], strict)
		},
	}

	f := cmd.Flags()
	f.Int("capacity", d.Capacity, "maximum cached entries")
	f.Int("shards", d.Shards, "number of independently locked shards")
	f.BoolVar(&strict, "strict", false, "fail on the first GET miss")
	return cmd
}

func runReplay(cmd *cobra.Command, a *app, path string, strict bool) error {
	log := logging.FromContext(cmd.Context())

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	ops, err := workload.ReadTrace(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	c, err := newTarget(a.cfg.Capacity, a.cfg.Shards, &a.log)
	if err != nil {
		return err
	}

	log.Info().Str("trace", path).Int("ops", len(ops)).Bool("strict", strict).Msg("replay starting")
	res, err := workload.Replay(cmd.Context(), c, ops, strict)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderStats("replay "+path, c, &res))
	return nil
}
