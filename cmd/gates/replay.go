package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gates/internal/config"
	"github.com/vovakirdan/gates/internal/platform/tui"
	"github.com/vovakirdan/gates/internal/replay"
	"github.com/vovakirdan/gates/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Verify or watch a journaled run",
	Long: `Re-simulate a journaled run from its seed, tuning and lift ticks.

Without --watch the run is replayed headlessly and checked against the
recorded score and length. With --watch it plays back in the terminal.
A unique prefix of the run ID is enough.

Examples:
  gates replay 3f2a9c1b
  gates replay 3f2a --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the run back in the terminal")
}

func runReplay(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening run journal: %w", err)
	}
	defer store.Close()

	if flagWatch {
		return watchRun(store, args[0])
	}

	run, cfg, err := loadRun(store, args[0])
	if err != nil {
		return err
	}

	res, err := replay.Verify(cfg, sessionFromRun(run))
	if errors.Is(err, replay.ErrMismatch) {
		return fmt.Errorf("run %s does not reproduce: %w", run.ShortID(), err)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Run %s reproduces: score %d in %d ticks (%s)\n",
		run.ShortID(), res.Score, res.Ticks, run.EndReason)
	return nil
}

// watchRun plays a journaled run back in the terminal.
func watchRun(store *storage.Store, id string) error {
	run, cfg, err := loadRun(store, id)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	player := replay.NewPlayer(cfg, sessionFromRun(run))
	_, err = tui.Run(tui.NewReplayModel(player, run.ID, runtimeConfig(), logger))
	return err
}

// loadRun fetches a run and the tuning it was played with.
func loadRun(store *storage.Store, id string) (storage.Run, config.GatesConfig, error) {
	run, err := store.Run(id)
	if err != nil {
		return run, config.GatesConfig{}, err
	}
	cfg, err := config.Decode(run.ConfigYAML)
	if err != nil {
		return run, cfg, fmt.Errorf("run %s: %w", run.ShortID(), err)
	}
	return run, cfg, nil
}

func sessionFromRun(run storage.Run) replay.Session {
	return replay.Session{
		Seed:      run.Seed,
		TickRate:  run.TickRate,
		Ticks:     run.Ticks,
		Score:     run.Score,
		EndReason: run.EndReason,
		Lifts:     run.Lifts,
	}
}
