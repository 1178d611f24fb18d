package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show weekly and yearly statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	stats := t.Stats()
	summary := t.Summary()

	fmt.Printf("This week: %d XP (%d%% of target)\n", stats.WeekPoints, summary.WeekPercent)
	fmt.Printf("This year: %d XP\n", stats.YearPoints)
	fmt.Printf("Daily avg: %d XP over %d day(s), best %d\n",
		summary.AveragePoints, summary.DaysTracked, summary.BestDay)

	fmt.Println("\nLast 7 days:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range stats.GraphData {
		fmt.Fprintf(w, "%s\t%d XP\t%s\n", p.Date, p.Points, bar(p.Points, 40))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(stats.Losses) > 0 {
		fmt.Println("\nWhat drags you down:")
		lw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, l := range stats.Losses {
			fmt.Fprintf(lw, "%s\t%d XP lost over %d day(s)\n", l.Title, -l.TotalLoss, l.Count)
		}
		if err := lw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// bar renders a simple XP bar capped at width characters.
func bar(points, width int) string {
	n := points / 20
	if n > width {
		n = width
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = '#'
	}
	return string(out)
}
