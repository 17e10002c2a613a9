package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tag/internal/platform/tui"
	"github.com/vovakirdan/tui-tag/internal/registry"
	"github.com/vovakirdan/tui-tag/internal/storage"
)

var flagPlain bool

var statsCmd = &cobra.Command{
	Use:   "stats [scenario]",
	Short: "Show recorded run statistics",
	Long: `Display recorded runs and per-scenario aggregates. In a terminal an
interactive browser opens; with --plain (or when output is piped) a text
report is printed instead.

Examples:
  tag stats
  tag stats duel
  tag stats --plain`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text report instead of the interactive browser")
}

func runStats(cmd *cobra.Command, args []string) {
	scenario := ""
	if len(args) == 1 {
		scenario = args[0]
		if !registry.Exists(scenario) {
			fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenario)
			fmt.Fprintln(os.Stderr, "Run 'tag list' to see available scenarios.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunStats(store, scenario, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printStats(store, scenario); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printStats writes aggregates and recent runs as plain text.
func printStats(store *storage.Store, scenario string) error {
	all, err := store.AllScenarioStats()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		if scenario == "" || id == scenario {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	if len(ids) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tag play <id>' or 'tag run <id>' to record one!")
		return nil
	}

	fmt.Println("Scenario totals")
	fmt.Println()
	fmt.Printf("  %-10s  %5s  %10s  %8s  %10s  %9s\n", "Scenario", "Runs", "Ticks", "Tags", "Ticks/tag", "Longest")
	fmt.Printf("  %-10s  %5s  %10s  %8s  %10s  %9s\n", "--------", "----", "-----", "----", "---------", "-------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-10s  %5d  %10d  %8d  %10.1f  %9d\n",
			id, st.Runs, st.TotalTicks, st.TotalTransfers, st.MeanTicksPerTag(), st.LongestRun)
	}

	runs, err := store.RecentRuns(scenario, 10)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-16s  %-10s  %-11s  %7s  %8s  %6s\n", "Date", "Scenario", "Grid", "Agents", "Ticks", "Tags")
	fmt.Printf("  %-16s  %-10s  %-11s  %7s  %8s  %6s\n", "----", "--------", "----", "------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %-11s  %7d  %8d  %6d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Scenario,
			fmt.Sprintf("%dx%d", r.Width, r.Height), r.Agents, r.Ticks, r.Transfers)
	}
	return nil
}
