package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifegame-app/lifegame/internal/api"
	"github.com/lifegame-app/lifegame/internal/app/tracker"
	"github.com/lifegame-app/lifegame/internal/domain"
	"github.com/lifegame-app/lifegame/internal/health"
	_ "github.com/lifegame-app/lifegame/internal/infra/metrics" // Register Prometheus metrics
	"github.com/lifegame-app/lifegame/internal/infra/sqlite"
	syncpkg "github.com/lifegame-app/lifegame/internal/sync"
)

// Daemon is the lifegame runtime. It wires the store, the tracker, the
// API server, and the background loops together.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Tracker *tracker.Tracker
	Server  *api.Server
	Health  *health.Checker

	syncClient *syncpkg.Client
	creds      *domain.Credentials
	debouncer  *syncpkg.Debouncer
	cancel     context.CancelFunc
}

// New creates and initializes a Daemon from the on-disk config.
func New(version string) (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, version)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config, version string) (*Daemon, error) {
	db, err := sqlite.Open(lifegameHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	tr := tracker.New(db)
	tr.Load()

	srv := api.NewServer(tr, version)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	d := &Daemon{
		Config:  cfg,
		DB:      db,
		Tracker: tr,
		Server:  srv,
		Health:  health.NewChecker(db, lifegameHome()),
	}
	srv.SetChecker(d.Health)

	// Backup client, only when an account is linked.
	creds, err := db.Credentials()
	if err != nil {
		log.Printf("[daemon] load credentials: %v (sync disabled)", err)
	}
	if creds != nil {
		url := creds.ServerURL
		if url == "" {
			url = cfg.Sync.ServerURL
		}
		if url == "" {
			log.Printf("[daemon] account linked but no sync server configured")
		} else {
			d.creds = creds
			d.syncClient = syncpkg.NewClient(url)
		}
	}

	if d.syncClient != nil && cfg.Sync.Auto {
		delay := parseDuration(cfg.Sync.Debounce, 5*time.Second)
		d.debouncer = syncpkg.NewDebouncer(delay, d.push)
		tr.OnChange(d.debouncer.Trigger)
	}

	return d, nil
}

// Serve starts the HTTP server and background loops, blocking until
// shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	interval := parseDuration(d.Config.Rollover.CheckInterval, time.Minute)
	go d.Tracker.RunRolloverLoop(ctx, interval)

	if d.syncClient != nil {
		go d.startupSync(ctx)
	}

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if d.debouncer != nil {
			d.debouncer.Stop()
			// One final push, no retries: the window is closing.
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := d.syncClient.Push(flushCtx, *d.creds, d.Tracker.Snapshot()); err != nil {
				log.Printf("[daemon] final push: %v", err)
			}
			flushCancel()
		}

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("lifegame serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// startupSync reconciles local and remote state once at boot. A device
// with local goals pushes; a fresh install adopts the server record.
func (d *Daemon) startupSync(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if d.Tracker.HadLocalGoals() {
		if err := d.syncClient.Push(ctx, *d.creds, d.Tracker.Snapshot()); err != nil {
			log.Printf("[daemon] startup push: %v", err)
		}
		return
	}

	remote, err := d.syncClient.Pull(ctx, *d.creds)
	if err != nil {
		log.Printf("[daemon] startup pull: %v", err)
		return
	}
	if remote != nil {
		d.Tracker.ApplyRemote(*remote)
	}
}

// push uploads the current local state, retrying transient failures
// with backoff. The local state stays authoritative either way.
func (d *Daemon) push() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	err := syncpkg.Retry(ctx, syncpkg.DefaultRetryConfig(), func(ctx context.Context) error {
		return d.syncClient.Push(ctx, *d.creds, d.Tracker.Snapshot())
	})
	if err != nil {
		log.Printf("[daemon] push: %v", err)
	}
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.debouncer != nil {
		d.debouncer.Stop()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
