// Package uuidx issues the time-ordered identifiers used to tag generation
// runs.
package uuidx

import "github.com/google/uuid"

// New returns a fresh version 7 UUID. V7 identifiers sort by creation time,
// which keeps run logs chronological. It panics when the platform cannot
// produce randomness.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
