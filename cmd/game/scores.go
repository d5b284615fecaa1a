package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tomz197/asteroids-arena/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished games",
	Long: `Display the best recorded games, highest score first. Ties go to the
game that finished in fewer ticks.

Examples:
  asteroids scores
  asteroids scores --limit 25
  asteroids scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
}

func runScores(cmd *cobra.Command, _ []string) error {
	if flagDBPath == "" {
		return fmt.Errorf("no results database (--db is empty)")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.TopResults(cmd.Context(), flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out, "Run 'asteroids' to set the first score!")
		return nil
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("Rank", "Player", "Outcome", "Score", "Ticks", "Date")
	for i, e := range entries {
		t.Row(
			strconv.Itoa(i+1),
			e.Player,
			e.Outcome,
			strconv.Itoa(e.Score),
			strconv.FormatUint(e.Ticks, 10),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
