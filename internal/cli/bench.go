package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gocache/internal/cache"
	"gocache/internal/config"
	"gocache/internal/logging"
	"gocache/internal/metrics"
	"gocache/internal/workload"
)

func newBenchCommand(a *app) *cobra.Command {
	d := config.Default()
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Drive the cache from concurrent workers and report metrics",
		Long: `Run a synthetic GET/PUT workload against one cache from several goroutines.

Keys are drawn uniformly from --keyspace distinct keys; --read-ratio of the
operations are GETs. With --shards > 1 the capacity is split across
independently locked shards. --metrics-addr exposes Prometheus metrics for the
duration of the run; --report-interval logs a snapshot periodically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd.Context(), cmd, a.cfg, &a.log)
		},
	}

	f := cmd.Flags()
	f.Int("capacity", d.Capacity, "maximum cached entries")
	f.Int("shards", d.Shards, "number of independently locked shards")
	f.Int("workers", d.Workers, "concurrent goroutines")
	f.Int("ops", d.Ops, "total operations across all workers")
	f.Int("keyspace", d.Keyspace, "distinct keys in the workload")
	f.Float64("read-ratio", d.ReadRatio, "fraction of operations that are GETs")
	f.Uint64("seed", d.Seed, "workload seed (0 = random)")
	f.Duration("report-interval", d.ReportInterval, "log a metrics snapshot this often (0 = off)")
	f.String("metrics-addr", d.MetricsAddr, "serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}

func runBench(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *zerolog.Logger) error {
	runID := uuid.New()
	log := logging.FromContext(ctx).With().Str("run_id", runID.String()).Logger()

	c, err := newTarget(cfg.Capacity, cfg.Shards, logger)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(cfg.MetricsAddr, c, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	reporter := cache.NewReporter(c, cache.ReporterConfig{Interval: cfg.ReportInterval, Logger: log})
	defer reporter.Close()

	perWorker := cfg.Ops / cfg.Workers
	log.Info().
		Int("capacity", cfg.Capacity).
		Int("shards", cfg.Shards).
		Int("workers", cfg.Workers).
		Int("ops_per_worker", perWorker).
		Int("keyspace", cfg.Keyspace).
		Float64("read_ratio", cfg.ReadRatio).
		Msg("bench starting")

	res, err := workload.RunConcurrent(ctx, c, cfg.Workers, perWorker, func(w int) *workload.Generator {
		seed := cfg.Seed
		if seed != 0 {
			seed += uint64(w)
		}
		return workload.NewGenerator(seed, cfg.Keyspace, cfg.ReadRatio)
	})
	if err != nil {
		return fmt.Errorf("bench run %s: %w", runID, err)
	}

	reporter.Report()
	fmt.Fprintln(cmd.OutOrStdout(), renderStats("bench "+runID.String()[:8], c, &res))
	return nil
}

// serveMetrics exposes src on addr/metrics until the returned stop is called.
func serveMetrics(addr string, src cache.StatsSource, log zerolog.Logger) (func(), error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(metrics.NewCollector("gocache", "bench", src)); err != nil {
		return nil, fmt.Errorf("register collector: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("metrics server shutdown")
		}
	}, nil
}
