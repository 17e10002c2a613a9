package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tag/internal/core"
	"github.com/vovakirdan/tui-tag/internal/game"
	"github.com/vovakirdan/tui-tag/internal/metrics"
	"github.com/vovakirdan/tui-tag/internal/registry"
	"github.com/vovakirdan/tui-tag/internal/sim"
	"github.com/vovakirdan/tui-tag/internal/storage"
)

var (
	flagTicks       int
	flagWidth       int
	flagHeight      int
	flagCheck       bool
	flagNoSave      bool
	flagMetricsAddr string
	flagWait        bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario headless",
	Long: `Run the specified scenario without a terminal UI for a fixed number of
ticks, log a summary and record the run statistics.

With --check the world invariants are verified after every tick and the
run fails on the first violation. With --metrics-addr Prometheus metrics
are served at /metrics while the run is in progress.

Examples:
  tag run classic --ticks 10000
  tag run packed --width 500 --height 500 --check
  tag run crowd --metrics-addr :9090 --wait`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 1000, "Number of ticks to run")
	runCmd.Flags().IntVar(&flagWidth, "width", 200, "World width when the config does not set one")
	runCmd.Flags().IntVar(&flagHeight, "height", 50, "World height when the config does not set one")
	runCmd.Flags().BoolVar(&flagCheck, "check", false, "Validate world invariants after every tick")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the database")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	runCmd.Flags().BoolVar(&flagWait, "wait", false, "Keep serving metrics after the run until interrupted")
}

// worldGame is a scenario that exposes its simulation.
type worldGame interface {
	registry.Game
	World() *sim.Simulation
}

// headlessOptions controls a headless run.
type headlessOptions struct {
	Ticks     int
	Check     bool
	Collector *metrics.Collector
	Logger    *log.Logger
}

// runHeadless advances g up to opts.Ticks ticks, stopping early when ctx is
// cancelled. It returns the number of ticks executed.
func runHeadless(ctx context.Context, g worldGame, opts headlessOptions) (int, error) {
	w := g.World()
	if w == nil {
		return 0, errors.New("run: world was not built")
	}

	frame := core.NewInputFrame()
	progressEvery := max(1, opts.Ticks/10)

	for i := range opts.Ticks {
		if ctx.Err() != nil {
			return i, nil
		}

		start := time.Now()
		res := g.Step(frame)
		opts.Collector.ObserveTick(g.ID(), time.Since(start), res.Tagged, w.VisibleCount())

		if res.Tagged && opts.Logger != nil {
			last, _ := w.LastTagged()
			opts.Logger.Debug("tag transfer", "tick", res.State.Ticks, "from", last, "to", w.TaggedID())
		}
		if opts.Check {
			if err := w.Validate(); err != nil {
				return i + 1, fmt.Errorf("run: tick %d: %w", res.State.Ticks, err)
			}
		}
		if opts.Logger != nil && (i+1)%progressEvery == 0 {
			opts.Logger.Debug("progress", "tick", res.State.Ticks, "transfers", res.State.Transfers)
		}
	}
	return opts.Ticks, nil
}

func runRun(cmd *cobra.Command, args []string) {
	id := args[0]
	logger := newLogger()

	if !registry.Exists(id) {
		logger.Error("unknown scenario", "scenario", id)
		fmt.Fprintln(os.Stderr, "Run 'tag list' to see available scenarios.")
		os.Exit(1)
	}
	if flagTicks <= 0 {
		logger.Error("--ticks must be positive", "ticks", flagTicks)
		os.Exit(1)
	}

	simCfg, err := loadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	created, err := registry.Create(id, simCfg)
	if err != nil {
		logger.Error("cannot create scenario", "error", err)
		os.Exit(1)
	}
	g, ok := created.(worldGame)
	if !ok {
		logger.Error("scenario does not expose a world", "scenario", id)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := core.RuntimeConfig{
		ScreenW:  flagWidth,
		ScreenH:  flagHeight + game.HUDHeight,
		TickRate: flagFPS,
		Seed:     seed,
	}
	if err := g.Reset(rc); err != nil {
		logger.Error("cannot build world", "error", err)
		os.Exit(1)
	}
	if g.World() == nil {
		logger.Error("world size must be positive", "width", flagWidth, "height", flagHeight)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	var server *http.Server
	if flagMetricsAddr != "" {
		collector, err = metrics.NewCollector(nil)
		if err != nil {
			logger.Error("cannot register metrics", "error", err)
			os.Exit(1)
		}
		collector.SetAgents(id, g.World().Len())
		server = serveMetrics(flagMetricsAddr, collector, logger)
	}

	s := g.Summary()
	logger.Info("run started", "scenario", id, "grid", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"agents", s.Agents, "seed", s.Seed, "ticks", flagTicks)

	began := time.Now()
	done, runErr := runHeadless(ctx, g, headlessOptions{
		Ticks:     flagTicks,
		Check:     flagCheck,
		Collector: collector,
		Logger:    logger,
	})
	elapsed := time.Since(began)

	s = g.Summary()
	logger.Info("run finished",
		"ticks", s.Ticks,
		"transfers", s.Transfers,
		"mean_ticks_per_tag", fmt.Sprintf("%.2f", s.MeanTicksPerTag()),
		"elapsed", elapsed.Round(time.Millisecond),
		"per_tick", (elapsed / time.Duration(max(1, done))).String(),
	)

	if !flagNoSave && s.Ticks > 0 {
		saveRun(s, elapsed, logger)
	}

	if server != nil {
		if flagWait && runErr == nil {
			logger.Info("serving metrics until interrupted", "address", flagMetricsAddr)
			<-ctx.Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown on exit
		server.Shutdown(shutdownCtx)
	}

	if runErr != nil {
		logger.Error("invariant check failed", "error", runErr)
		os.Exit(1)
	}
}

// serveMetrics starts the /metrics endpoint in the background.
func serveMetrics(addr string, c *metrics.Collector, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()
	return server
}

// saveRun records a finished run, logging rather than failing on errors.
func saveRun(s core.RunSummary, elapsed time.Duration, logger *log.Logger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		Scenario:  s.Scenario,
		Width:     s.Width,
		Height:    s.Height,
		Agents:    s.Agents,
		Seed:      s.Seed,
		Ticks:     s.Ticks,
		Transfers: s.Transfers,
		Duration:  elapsed,
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Debug("run recorded", "id", id, "db", flagDBPath)
}
