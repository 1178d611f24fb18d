package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifegame-app/lifegame/internal/daemon"
	"github.com/lifegame-app/lifegame/internal/infra/sqlite"
	syncpkg "github.com/lifegame-app/lifegame/internal/sync"
)

func init() {
	serverCmd.Flags().StringVar(&serverHost, "host", "", "Host to listen on (overrides config)")
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}

var (
	serverHost string
	serverPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a self-hosted sync server",
	Long: `Host your own backup server. Devices register accounts here and
push/pull their state; accounts are stored in the local database.`,
	RunE: runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort > 0 {
		cfg.Server.Port = serverPort
	}

	db, err := sqlite.Open(daemon.Home())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      syncpkg.NewServer(db).Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	fmt.Printf("lifegame sync server on http://%s\n", addr)
	return srv.ListenAndServe()
}
