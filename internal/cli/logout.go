package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lifegame-app/lifegame/internal/daemon"
	"github.com/lifegame-app/lifegame/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Unlink this device from its account",
	Long:  `Remove the stored credentials. Local data is kept untouched.`,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	db, err := sqlite.Open(daemon.Home())
	if err != nil {
		return err
	}
	defer db.Close()

	creds, err := db.Credentials()
	if err != nil {
		return err
	}
	if creds == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := db.ClearCredentials(); err != nil {
		return err
	}
	fmt.Printf("Logged out %s\n", creds.Username)
	return nil
}
