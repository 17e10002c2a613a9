// tag is a terminal pursuit/evasion simulation: one tagged agent chases the
// rest of a crowd across a grid while everyone else flees.
//
// Usage:
//
//	tag list                 - List available scenarios
//	tag play <scenario>      - Watch a scenario in the terminal
//	tag run <scenario>       - Run a scenario headless and record statistics
//	tag bench                - Measure tick cost across densities
//	tag stats [scenario]     - Show recorded run statistics
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.tag/runs.db)
//	--config <path>     - Load a custom simulation config YAML
//	--preset <name>     - Density preset: sparse, normal, crowded, packed
//	--log-level <level> - Log verbosity: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tag/internal/config"

	// Import scenarios to register them
	_ "github.com/vovakirdan/tui-tag/internal/game"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tag",
	Short: "Tag - a pursuit and evasion simulation in your terminal",
	Long: `Tag simulates a crowd of agents on a grid. One agent is "it": it chases
the closest agent it can see, everyone it can see flees, and the tag passes
to the first agent caught within reach.

Available commands:
  list     - Show all available scenarios
  play     - Watch a scenario live
  run      - Run a scenario headless
  bench    - Benchmark tick cost across densities
  stats    - View recorded run statistics

Examples:
  tag list
  tag play classic
  tag play crowd --preset packed --seed 42
  tag run classic --ticks 10000 --check
  tag bench --ticks 50
  tag stats duel`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tag/runs.db", "Path to run statistics database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Density preset: sparse, normal, crowded, packed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(statsCmd)
}

// newLogger creates the CLI logger at the configured level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tag",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the simulation config and applies the preset flag.
func loadConfig() (config.SimConfig, error) {
	cfg, err := config.LoadSim(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, flagPreset); err != nil {
		return cfg, err
	}
	return cfg, nil
}
