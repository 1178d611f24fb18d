package domain

import "errors"

var (
	// ErrGoalNotFound is returned when a goal id matches nothing.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrUserNotFound is returned by the sync server for unknown usernames.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned on a password mismatch. Callers
	// surface it distinctly from connectivity errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
