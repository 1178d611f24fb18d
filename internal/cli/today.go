package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(todayCmd)
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's progress, level, and streak",
	RunE:  runToday,
}

func runToday(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	name := t.Name()
	if name != "" {
		fmt.Printf("%s — %s\n", name, t.Progress().Date)
	} else {
		fmt.Println(t.Progress().Date)
	}

	level := t.Level()
	fmt.Printf("Level %d  (%d/%d XP, %.0f%%)\n",
		level.Level,
		level.NetXP-level.CurrentLevelXP,
		level.NextLevelXP-level.CurrentLevelXP,
		level.Progress*100,
	)
	fmt.Printf("Streak: %d day(s)\n", t.Streak())
	fmt.Printf("Today:  %d XP (baseline %d)\n", t.TodayPoints(), t.Baseline())
	return nil
}
