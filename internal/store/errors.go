package store

import "errors"

var (
	// ErrEmptyCommand rejects an add with a blank command.
	ErrEmptyCommand = errors.New("command is empty")

	// ErrMalformedStore reports a backing file whose keyword/command
	// line pairing is broken.
	ErrMalformedStore = errors.New("malformed reminders store")
)
