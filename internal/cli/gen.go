package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gocache/internal/config"
	"gocache/internal/logging"
	"gocache/internal/workload"
)

func newGenCommand(a *app) *cobra.Command {
	d := config.Default()
	var out string
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write a synthetic operation trace",
		Long: `Generate --ops operations over --keyspace keys and write them as a trace,
one operation per line:

  GET <key>
  PUT <key> <value>
  DEL <key>
  CLEAR

The trace goes to stdout unless --out names a file. Use the same --seed to
reproduce a trace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGen(cmd, a.cfg, out)
		},
	}

	f := cmd.Flags()
	f.Int("ops", d.Ops, "number of operations to write")
	f.Int("keyspace", d.Keyspace, "distinct keys in the trace")
	f.Float64("read-ratio", d.ReadRatio, "fraction of operations that are GETs")
	f.Uint64("seed", d.Seed, "workload seed (0 = random)")
	f.StringVarP(&out, "out", "o", "", "write the trace to this file instead of stdout")
	return cmd
}

func runGen(cmd *cobra.Command, cfg *config.Config, out string) (err error) {
	log := logging.FromContext(cmd.Context())

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		var f *os.File
		f, err = os.Create(out)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close trace: %w", cerr)
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	gen := workload.NewGenerator(cfg.Seed, cfg.Keyspace, cfg.ReadRatio)
	if err := workload.WriteTrace(bw, gen.Take(cfg.Ops)); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush trace: %w", err)
	}

	log.Info().Int("ops", cfg.Ops).Int("keyspace", gen.Keyspace()).Str("out", out).Msg("trace written")
	return nil
}
