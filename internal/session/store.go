// Package session owns the client-side cart session identifier: created
// lazily on first access, persisted under a fixed key, never rotated.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when no value is persisted for the key.
var ErrNotFound = errors.New("session value not found")

// Store persists session values across process restarts.
type Store interface {
	// Get returns the persisted value or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// SetIfAbsent persists value unless key already has one, and returns
	// whichever value is stored afterwards.
	SetIfAbsent(ctx context.Context, key, value string) (string, error)
}
