package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check GOAL",
	Short: "Toggle a goal's completion for today",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	goal, err := resolveGoal(t.Goals(), args[0])
	if err != nil {
		return err
	}

	points, err := t.Toggle(goal.ID)
	if err != nil {
		return err
	}

	state := "done"
	if !t.Progress().Completions[goal.ID] {
		state = "not done"
	}
	fmt.Printf("%s %s — today: %d XP\n", goal.Title, state, points)
	return nil
}
