package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gates/internal/platform/tui"
	"github.com/vovakirdan/gates/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsPlain bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse journaled runs",
	Long: `Show the newest journaled runs.

By default an interactive browser opens; press Enter on a run to watch its
replay and d to delete it. With --plain the list is printed as a table.

Examples:
  gates runs
  gates runs --limit 10 --plain`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 50, "Maximum number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a table instead of opening the browser")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening run journal: %w", err)
	}
	defer store.Close()

	if flagRunsPlain {
		return printRuns(store)
	}

	rt := runtimeConfig()
	id, err := tui.RunRuns(store, flagRunsLimit, rt.ScreenW, rt.ScreenH)
	if err != nil || id == "" {
		return err
	}
	return watchRun(store, id)
}

func printRuns(store *storage.Store) error {
	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs journaled yet.")
		fmt.Println()
		fmt.Println("Play 'gates play' to record the first one!")
		return nil
	}

	rows := make([][]string, len(runs))
	best := 0
	for i, r := range runs {
		rows[i] = []string{
			r.ShortID(),
			strconv.Itoa(r.Score),
			r.Duration().Round(100 * time.Millisecond).String(),
			r.EndReason,
			strconv.FormatInt(r.Seed, 10),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
		best = max(best, r.Score)
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Score", "Time", "End", "Seed", "Date").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	fmt.Println(t.Render())
	fmt.Printf("%d run(s), best score %d\n", len(runs), best)
	return nil
}
