package store

import "github.com/google/uuid"

// IDGenerator assigns IDs to hotels imported without one.
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator produces time-ordered UUIDv7 strings.
type UUIDv7Generator struct{}

// NewID returns a new UUIDv7.
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
