package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm GOAL",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	goal, err := resolveGoal(t.Goals(), args[0])
	if err != nil {
		return err
	}

	if err := t.DeleteGoal(goal.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %q\n", goal.Title)
	return nil
}
