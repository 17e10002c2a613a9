package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tag/internal/core"
	"github.com/vovakirdan/tui-tag/internal/platform/tui"
	"github.com/vovakirdan/tui-tag/internal/registry"
	"github.com/vovakirdan/tui-tag/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <scenario>",
	Short: "Watch a scenario live",
	Long: `Start the live viewer for the specified scenario. The world is sized
to the terminal unless the config sets an explicit grid.

Controls:
  P/Space    - Pause / resume
  N/Right    - Advance one tick while paused
  R          - Restart with a new seed
  +/Up       - Faster
  -/Down     - Slower
  Q/Ctrl+C   - Quit

Legend:
  @  the tagged agent
  o  agents the tagged agent can see
  ·  everyone else

Examples:
  tag play classic
  tag play crowd --fps 60
  tag play packed --seed 7
  tag play classic --config ./my-tag.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	id := args[0]
	logger := newLogger()

	// Check if scenario exists
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'tag list' to see available scenarios.")
		os.Exit(1)
	}

	simCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(id, simCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scenario: %v\n", err)
		os.Exit(1)
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage - the viewer still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running scenario: %v\n", runErr)
		os.Exit(1)
	}
}
