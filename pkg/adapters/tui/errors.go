package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDriverRequired is returned when the adapter has no prompt driver.
	ErrDriverRequired = errors.New("tui: prompt driver is nil")
)
