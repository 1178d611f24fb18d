package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit GOAL TITLE POINTS",
	Short: "Change a goal's title and points",
	Long: `Change a goal's title and point value. Points changes apply to
today immediately; finalized days keep the totals they were recorded with.`,
	Args: cobra.ExactArgs(3),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	points, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("points must be a number: %q", args[2])
	}

	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	goal, err := resolveGoal(t.Goals(), args[0])
	if err != nil {
		return err
	}

	if err := t.UpdateGoal(goal.ID, args[1], points); err != nil {
		return err
	}
	fmt.Printf("Updated %q (%d XP)\n", args[1], points)
	return nil
}
