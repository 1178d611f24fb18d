package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lifegame-app/lifegame/internal/domain"
	"github.com/lifegame-app/lifegame/internal/infra/metrics"
)

// Client talks to a sync server. It never mutates local state; callers
// decide what to do with a pulled record.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given server URL.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Register creates an account and returns the fresh server record.
func (c *Client) Register(ctx context.Context, username, password, name string) (*domain.User, error) {
	user, err := c.post(ctx, "/auth/register", registerRequest{
		Username: username,
		Password: password,
		Name:     name,
	})
	countSync("register", err)
	return user, err
}

// Login verifies credentials and returns the server record.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := c.post(ctx, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	})
	countSync("login", err)
	return user, err
}

// Push uploads local state. The merged response is discarded: local data
// remains the source of truth.
func (c *Client) Push(ctx context.Context, creds domain.Credentials, data domain.User) error {
	_, err := c.post(ctx, "/auth/sync", syncRequest{
		Username: creds.Username,
		Password: creds.Password,
		Data:     data,
	})
	countSync("push", err)
	return err
}

// Pull fetches the server record by syncing an empty data object.
func (c *Client) Pull(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	user, err := c.post(ctx, "/auth/sync", syncRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
	countSync("pull", err)
	return user, err
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*domain.User, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync server unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrInvalidCredentials
	case resp.StatusCode == http.StatusBadRequest && strings.Contains(out.Error, "already exists"):
		return nil, domain.ErrUserExists
	case resp.StatusCode >= 400:
		if out.Error != "" {
			return nil, fmt.Errorf("sync server: %s", out.Error)
		}
		return nil, fmt.Errorf("sync server: status %d", resp.StatusCode)
	}

	return out.User, nil
}

func countSync(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SyncRequests.WithLabelValues(op, result).Inc()
}
