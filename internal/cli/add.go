package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add TITLE POINTS",
	Short: "Add a new goal",
	Long: `Add a goal worth the given XP. Use negative points for a bad
habit you want to track: checking it costs XP and it shows up in the
loss ranking in 'lifegame stats'.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := args[0]
	points, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("points must be a number: %q", args[1])
	}

	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	goal := t.AddGoal(title, points)
	fmt.Printf("Added %q (%d XP)\n", goal.Title, goal.Points)
	return nil
}
