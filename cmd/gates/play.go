package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gates/internal/platform/tui"
	"github.com/vovakirdan/gates/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in this terminal. It opens on the main menu.

Controls:
  Space/Up/W   - Lift
  Enter/S      - Start (menu)
  X            - Exit (menu)
  Mouse click  - Press a button, or lift while playing
  Ctrl+S       - Screenshot to ~/.gates/screenshots
  ?            - Toggle help
  Q/Esc/Ctrl+C - Quit

Every finished session is journaled with its seed and inputs, so it can
be replayed later with 'gates replay'.

Difficulty options:
  easy   - Slower gates, wider spacing
  normal - The config as loaded
  hard   - Faster gates, tighter spacing

Examples:
  gates play
  gates play --difficulty easy
  gates play --seed 42 --fps 30
  gates play --config ./my-gates.yaml --log-file gates.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns stdout, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	model, err := tui.Run(tui.NewModel(cfg, store, runtimeConfig(), logger))
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	if id := model.LastRun(); id != "" {
		fmt.Printf("Last run: %s (gates replay %s --watch)\n", id[:8], id[:8])
	}
	return nil
}
