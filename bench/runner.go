package bench

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/cosmos/avl-bench/avl"
	"github.com/cosmos/avl-bench/bench/util"
	"github.com/cosmos/avl-bench/core"
	"github.com/cosmos/avl-bench/core/metrics"
	"github.com/cosmos/avl-bench/internal/logz"
)

// Commands returns every avl-bench subcommand.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		DemoCommand(),
		PermutationsCommand(),
		RunCommand(),
		TraverseCommand(),
		DotCommand(),
	}
}

func parseValues(args []string) ([]int64, error) {
	values := make([]int64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", a, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// buildTree inserts values keyed by their position.
func buildTree(values []int64) *avl.Tree[int, int64] {
	tree := avl.New[int, int64]()
	for i, v := range values {
		tree.Insert(i, v)
	}
	return tree
}

func DemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [values...]",
		Short: "insert, traverse and delete values while checking balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}
			return Demo(cmd.OutOrStdout(), values)
		},
	}
}

func PermutationsCommand() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "permutations",
		Short: "compare BST and AVL balance over every insertion order of 1..n",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 || n > 9 {
				return fmt.Errorf("n must be within [1, 9]; got %d", n)
			}
			values := make([]int, n)
			for i := range values {
				values[i] = i + 1
			}
			report, err := ComparePermutations(values)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "All permutations that would yield a balanced Binary Search Tree:")
			for _, p := range report.BalancedBST {
				fmt.Fprintln(out, p)
			}
			fmt.Fprintf(out, "Total Balanced Binary Search Tree Permutations: %d\n", len(report.BalancedBST))
			fmt.Fprintf(out, "Total Permutations in all: %d\n", report.Total)

			fmt.Fprintln(out, "All permutations that would not yield a balanced AVL tree:")
			for _, p := range report.UnbalancedAVL {
				fmt.Fprintln(out, p)
			}
			fmt.Fprintf(out, "Total Unbalanced AVL Tree Permutations: %d\n", len(report.UnbalancedAVL))
			fmt.Fprintf(out, "Total Permutations in all: %d\n", report.Total)
			if len(report.UnbalancedAVL) > 0 {
				return core.ErrUnbalanced
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 6, "number of distinct values to permute")
	return cmd
}

func TraverseCommand() *cobra.Command {
	var order string
	cmd := &cobra.Command{
		Use:   "traverse values...",
		Short: "insert values and list the pairs in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := avl.ParseOrder(order)
			if err != nil {
				return err
			}
			values, err := parseValues(args)
			if err != nil {
				return err
			}
			seq, err := buildTree(values).Traverse(o)
			if err != nil {
				return err
			}
			for k, v := range seq {
				fmt.Fprintf(cmd.OutOrStdout(), "key %d has value %d\n", k, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&order, "order", string(avl.InOrder), "traversal order: pre, in or post")
	return cmd
}

func DotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dot values...",
		Short: "insert values and print the tree as a graphviz digraph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), buildTree(values).DotGraph())
			return err
		},
	}
}

func RunCommand() *cobra.Command {
	var (
		configPath string
		profile    string
		versions   int
		seed       int64
		verify     bool
		reportDir  string
		hashLog    string
		addr       string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "apply generated changesets to per-store AVL trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("profile") {
				cfg.Run.Profile = profile
			}
			if flags.Changed("versions") {
				cfg.Run.Versions = versions
			}
			if flags.Changed("seed") {
				cfg.Run.Seed = seed
			}
			if flags.Changed("verify") {
				cfg.Run.Verify = verify
			}
			if flags.Changed("report-dir") {
				cfg.Run.ReportDir = reportDir
			}
			if flags.Changed("hash-log") {
				cfg.Run.HashLog = hashLog
			}
			if flags.Changed("metrics-addr") {
				cfg.Metrics.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			res, err := Run(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Metrics.Print())
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "yaml config file; defaults to ./avl-bench.yaml when present")
	cmd.Flags().StringVar(&profile, "profile", "small", "generator profile: small, medium or ascending")
	cmd.Flags().IntVar(&versions, "versions", 100, "number of versions to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "generator seed")
	cmd.Flags().BoolVar(&verify, "verify", true, "check balance and compare against a btree after each version")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "directory to write report.json to")
	cmd.Flags().StringVar(&hashLog, "hash-log", "", "file to write version|hash lines to")
	cmd.Flags().StringVar(&addr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :2112")
	return cmd
}

// RunResult is the outcome of Run.
type RunResult struct {
	core.Result
	Metrics *metrics.Metrics
}

// Run builds the configured workload into fresh AVL trees.
func Run(ctx context.Context, cfg *Config) (RunResult, error) {
	log := logz.Module("bench")
	gens, err := cfg.Generators()
	if err != nil {
		return RunResult{}, err
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := map[string]string{"profile": cfg.Run.Profile}
	tc := &core.TreeContext{
		Context:      ctx,
		Log:          log,
		Generators:   gens,
		VersionLimit: int64(cfg.Run.Versions),
		Verify:       cfg.Run.Verify,
		HashInterval: cfg.Run.HashInterval,
		MetricLeafCount: factory.NewCounter(prometheus.CounterOpts{
			Name:        "avl_bench_changes_applied",
			Help:        "number of changes applied to the trees",
			ConstLabels: labels,
		}),
		MetricTreeSize: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "avl_bench_tree_size",
			Help:        "values held across all stores",
			ConstLabels: labels,
		}),
		MetricsTreeHeight: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "avl_bench_tree_height",
			Help:        "height of the tallest store",
			ConstLabels: labels,
		}),
		Metrics: metrics.NewMetrics(),
	}
	if cfg.Metrics.Interval > 0 {
		tc.Metrics.SetInterval(cfg.Metrics.Interval)
	}

	if cfg.Run.HashLog != "" {
		f, err := os.Create(cfg.Run.HashLog)
		if err != nil {
			return RunResult{}, err
		}
		defer f.Close()
		tc.HashLog = f
	}

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info().Msgf("serving metrics on %s/metrics", cfg.Metrics.Addr)
	}

	metricsCtx, cancelMetrics := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		tc.Metrics.Run(metricsCtx)
		close(done)
	}()

	res, err := tc.Build(core.NewAVLMultiTree(tc.StoreKeys()...))
	cancelMetrics()
	<-done
	if err != nil {
		return RunResult{Result: res, Metrics: tc.Metrics}, err
	}

	if cfg.Run.ReportDir != "" {
		report := util.Report{
			Profile:    cfg.Run.Profile,
			Seed:       cfg.Run.Seed,
			Versions:   res.Versions,
			Changes:    res.Changes,
			Inserts:    res.Inserts,
			Updates:    res.Updates,
			Deletes:    res.Deletes,
			Size:       res.Size,
			Height:     res.Height,
			Hash:       fmt.Sprintf("%x", res.Hash),
			DurationMs: res.Duration.Milliseconds(),
			Metrics:    tc.Metrics.Last(),
		}
		if err := util.SaveReport(cfg.Run.ReportDir, report); err != nil {
			return RunResult{Result: res, Metrics: tc.Metrics}, fmt.Errorf("error saving report: %w", err)
		}
	}
	return RunResult{Result: res, Metrics: tc.Metrics}, nil
}
