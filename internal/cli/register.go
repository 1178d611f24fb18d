package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifegame-app/lifegame/internal/daemon"
	"github.com/lifegame-app/lifegame/internal/domain"
	syncpkg "github.com/lifegame-app/lifegame/internal/sync"
)

func init() {
	registerCmd.Flags().StringVar(&registerServer, "server", "", "Sync server URL")
	rootCmd.AddCommand(registerCmd)
}

var registerServer string

var registerCmd = &cobra.Command{
	Use:   "register USERNAME",
	Short: "Create an account on a sync server",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	username := args[0]

	serverURL, err := resolveServerURL(registerServer)
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

	if _, err := client.Register(ctx, username, password, t.Name()); err != nil {
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

	// Seed the fresh account with whatever is already tracked here.
	if err := client.Push(ctx, creds, t.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: initial push failed: %v\n", err)
	}

	fmt.Printf("Registered %s on %s\n", username, serverURL)
	return nil
}

// resolveServerURL picks the server from the flag or the config file.
func resolveServerURL(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Sync.ServerURL == "" {
		return "", fmt.Errorf("no sync server configured; pass --server or set sync.server_url in config.toml")
	}
	return cfg.Sync.ServerURL, nil
}

// promptPassword reads a password from stdin.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no password given")
	}
	password := strings.TrimSpace(scanner.Text())
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}
