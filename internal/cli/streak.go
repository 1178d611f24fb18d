package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(streakCmd)
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your current streak",
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	streak := t.Streak()
	switch streak {
	case 0:
		fmt.Printf("No streak yet. Reach %d XP today to start one.\n", t.Baseline())
	case 1:
		fmt.Println("1 day streak.")
	default:
		fmt.Printf("%d day streak. Keep it going.\n", streak)
	}
	return nil
}
