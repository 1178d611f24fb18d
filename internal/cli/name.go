package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(nameCmd)
}

var nameCmd = &cobra.Command{
	Use:   "name [NAME]",
	Short: "Show or set your display name",
	RunE:  runName,
}

func runName(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 0 {
		if t.Name() == "" {
			fmt.Println("No name set.")
		} else {
			fmt.Println(t.Name())
		}
		return nil
	}

	name := strings.Join(args, " ")
	t.SetName(name)
	fmt.Printf("Hello, %s\n", name)
	return nil
}
