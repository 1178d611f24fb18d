package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(baselineCmd)
}

var baselineCmd = &cobra.Command{
	Use:   "baseline [POINTS]",
	Short: "Show or set the daily XP target",
	Long: `The baseline is the XP a day must reach to count toward your
streak. With no argument, prints the current value.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBaseline,
}

func runBaseline(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 0 {
		fmt.Printf("Baseline: %d XP/day\n", t.Baseline())
		return nil
	}

	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("baseline must be a number: %q", args[0])
	}
	if v < 0 {
		return fmt.Errorf("baseline must not be negative")
	}

	t.SetBaseline(v)
	fmt.Printf("Baseline set to %d XP/day\n", v)
	return nil
}
