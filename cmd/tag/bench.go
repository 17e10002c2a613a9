package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tag/internal/sim"
)

var (
	flagBenchTicks int
	flagBenchLarge bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure tick cost across world sizes and densities",
	Long: `Build worlds of increasing size and population and report the mean
wall time of a tick for each.

Groups:
  100 x 100        10, 20, 40, 80 agents
  1000 x 1000      10k, 20k, 50k, 100k agents
  10000 x 10000    50k, 100k, 500k, 1M agents (with --large)

Examples:
  tag bench
  tag bench --ticks 20 --large`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchTicks, "ticks", 100, "Ticks to time per case")
	benchCmd.Flags().BoolVar(&flagBenchLarge, "large", false, "Include the 10000 x 10000 group (needs ~400MB)")
}

// benchCase is one world size and population.
type benchCase struct {
	Size   int
	Agents int
}

// benchResult is the outcome of timing one case.
type benchResult struct {
	Case      benchCase
	Setup     time.Duration
	PerTick   time.Duration
	Transfers uint64
}

// densityCases returns the benchmark grid, optionally with the large group.
func densityCases(large bool) []benchCase {
	groups := []struct {
		size   int
		agents []int
	}{
		{100, []int{10, 20, 40, 80}},
		{1000, []int{10_000, 20_000, 50_000, 100_000}},
	}
	if large {
		groups = append(groups, struct {
			size   int
			agents []int
		}{10_000, []int{50_000, 100_000, 500_000, 1_000_000}})
	}

	var cases []benchCase
	for _, g := range groups {
		for _, n := range g.agents {
			cases = append(cases, benchCase{Size: g.size, Agents: n})
		}
	}
	return cases
}

// measure builds the world for c and times ticks ticks.
func measure(c benchCase, ticks int, seed int64) (benchResult, error) {
	rng := rand.New(rand.NewSource(seed))

	began := time.Now()
	s, err := sim.NewSimulation(c.Size, c.Size, c.Agents, rng)
	if err != nil {
		return benchResult{}, err
	}
	setup := time.Since(began)

	began = time.Now()
	for range ticks {
		s.Tick()
	}
	elapsed := time.Since(began)

	return benchResult{
		Case:      c,
		Setup:     setup,
		PerTick:   elapsed / time.Duration(max(1, ticks)),
		Transfers: s.Transfers(),
	}, nil
}

func runBench(cmd *cobra.Command, args []string) {
	logger := newLogger()

	if flagBenchTicks <= 0 {
		logger.Error("--ticks must be positive", "ticks", flagBenchTicks)
		os.Exit(1)
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("  %-13s  %9s  %12s  %12s  %9s\n", "Grid", "Agents", "Setup", "Per tick", "Tags")
	fmt.Printf("  %-13s  %9s  %12s  %12s  %9s\n", "----", "------", "-----", "--------", "----")

	for _, c := range densityCases(flagBenchLarge) {
		logger.Debug("benchmarking", "size", c.Size, "agents", c.Agents, "ticks", flagBenchTicks)
		res, err := measure(c, flagBenchTicks, seed)
		if err != nil {
			logger.Error("cannot build world", "size", c.Size, "agents", c.Agents, "error", err)
			os.Exit(1)
		}
		fmt.Printf("  %-13s  %9d  %12s  %12s  %9d\n",
			fmt.Sprintf("%dx%d", c.Size, c.Size), c.Agents,
			res.Setup.Round(time.Microsecond), res.PerTick.Round(10*time.Nanosecond), res.Transfers)
	}
}
