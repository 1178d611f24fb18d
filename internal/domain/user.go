package domain

// User is the server-side record the sync service keeps per account, and
// the shape echoed back on login and sync. The password hash never leaves
// the server.
//
// Fields are omitempty on purpose: the sync protocol treats absent (and
// therefore zero-valued) fields as "leave untouched", so a baseline of 0
// or an empty history is indistinguishable from absent on the wire. That
// quirk is preserved as documented behavior.
type User struct {
	Username string         `json:"username"`
	Name     string         `json:"name,omitempty"`
	Baseline int            `json:"baseline,omitempty"`
	Goals    []Goal         `json:"goals,omitempty"`
	History  []HistoryEntry `json:"history,omitempty"`
}
