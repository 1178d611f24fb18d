package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals and today's completions",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	goals := t.Goals()
	if len(goals) == 0 {
		fmt.Println("No goals yet. Run 'lifegame add <title> <points>' to get started.")
		return nil
	}

	completions := t.Progress().Completions

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tTITLE\tPOINTS\tID")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", mark(completions[g.ID]), g.Title, g.Points, g.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nToday: %d XP\n", t.TodayPoints())
	return nil
}
