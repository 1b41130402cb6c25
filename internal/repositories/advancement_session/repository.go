// Package advancementsession stores in-progress leveling transactions
package advancementsession

import (
	"context"
	"time"
)

// CreateInput contains parameters for creating a session
type CreateInput struct {
	State *State
	TTL   time.Duration // How long the session should live
}

// CreateOutput contains the stored session
type CreateOutput struct {
	State *State
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	State *State
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a session
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for advancement session storage
type Repository interface {
	// Create stores a new session with the configured TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing session, keeping its expiry
	Update(ctx context.Context, state *State) error

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
