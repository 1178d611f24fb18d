package domain

// Credentials is the locally stored shared secret for the sync service.
// Absence means the unauthenticated, offline-only state.
type Credentials struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	ServerURL string `json:"server_url"`
}
