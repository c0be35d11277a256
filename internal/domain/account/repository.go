package account

import "context"

// Repository defines the interface for account data access
type Repository interface {
	// List returns the accounts matching the store criteria of filter, in insertion order
	List(ctx context.Context, filter Filter) ([]*Account, error)

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id int64) (*Account, error)

	// Create stores a new account and fills in its ID and timestamps
	Create(ctx context.Context, account *Account) error

	// Update applies a patch and returns the stored result
	Update(ctx context.Context, id int64, patch Patch) (*Account, error)

	// Delete removes an account
	Delete(ctx context.Context, id int64) error

	// Ping checks store connectivity
	Ping(ctx context.Context) error
}
