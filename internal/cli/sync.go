package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	syncpkg "github.com/lifegame-app/lifegame/internal/sync"
)

func init() {
	syncCmd.Flags().BoolVar(&syncPull, "pull", false, "Adopt the server state instead of pushing")
	rootCmd.AddCommand(syncCmd)
}

var syncPull bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local state to the sync server",
	Long: `Push the local state to the linked account. With --pull, fetch
the account's state and adopt it locally instead.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	creds, err := db.Credentials()
	if err != nil {
		return err
	}
	if creds == nil {
		return fmt.Errorf("not logged in; run 'lifegame login' first")
	}

	serverURL := creds.ServerURL
	if serverURL == "" {
		serverURL, err = resolveServerURL("")
		if err != nil {
			return err
		}
	}

	client := syncpkg.NewClient(serverURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if syncPull {
		remote, err := client.Pull(ctx, *creds)
		if err != nil {
			return err
		}
		if remote != nil {
			t.ApplyRemote(*remote)
		}
		fmt.Println("Pulled server state.")
		return nil
	}

	if err := client.Push(ctx, *creds, t.Snapshot()); err != nil {
		return err
	}
	fmt.Println("Pushed local state.")
	return nil
}
