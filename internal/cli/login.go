package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifegame-app/lifegame/internal/domain"
	syncpkg "github.com/lifegame-app/lifegame/internal/sync"
)

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Sync server URL")
	rootCmd.AddCommand(loginCmd)
}

var loginServer string

var loginCmd = &cobra.Command{
	Use:   "login USERNAME",
	Short: "Link this device to an existing account",
	Long: `Log in to a sync server. A device that already has goals pushes
its state; a fresh install adopts the account's state.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := args[0]

	serverURL, err := resolveServerURL(loginServer)
	if err != nil {
		return err
	}
	password, err := promptPassword()
	if err != nil {
		return err
	}

	t, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	client := syncpkg.NewClient(serverURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	remote, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	creds := domain.Credentials{
		Username:  username,
		Password:  password,
		ServerURL: serverURL,
	}
	if err := db.SaveCredentials(creds); err != nil {
		return err
	}

	if t.HadLocalGoals() {
		if err := client.Push(ctx, creds, t.Snapshot()); err != nil {
			return fmt.Errorf("push local state: %w", err)
		}
		fmt.Println("Logged in; local state pushed to server.")
		return nil
	}

	if remote != nil {
		t.ApplyRemote(*remote)
	}
	fmt.Println("Logged in; server state adopted.")
	return nil
}
