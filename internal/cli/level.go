package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(levelCmd)
}

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show your level and XP",
	RunE:  runLevel,
}

func runLevel(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	l := t.Level()
	fmt.Printf("Level %d\n", l.Level)
	fmt.Printf("XP:    %d (%d to next level)\n", l.NetXP, l.NextLevelXP-l.NetXP)
	if l.Decay > 0 {
		fmt.Printf("Decay: -%d XP over the tracked period\n", l.Decay)
	}
	return nil
}
