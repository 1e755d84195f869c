package store

import "errors"

var (
	// ErrNotFound is returned by lookups that match no row.
	ErrNotFound = errors.New("not found")

	// ErrLoginTaken is returned when inserting an account whose login
	// collides case-insensitively with an existing one.
	ErrLoginTaken = errors.New("login already registered")

	// ErrDuplicateCheckIn is returned by Ledger.Append when an in-window
	// record for the same account and day already exists.
	ErrDuplicateCheckIn = errors.New("check-in already recorded for this day")
)
