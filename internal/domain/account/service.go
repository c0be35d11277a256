package account

import (
	"context"
	"encoding/json"
	"time"
)

// Service defines the interface for account business logic
type Service interface {
	// List returns the accounts matching filter, classifying lifecycles at
	// filter.AsOf when it is set
	List(ctx context.Context, filter Filter) ([]*Account, error)

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id int64) (*Account, error)

	// Create validates and stores a new account
	Create(ctx context.Context, in Input) (*Account, error)

	// Update validates and applies a partial update
	Update(ctx context.Context, id int64, in UpdateInput) (*Account, error)

	// Delete removes an account
	Delete(ctx context.Context, id int64) error

	// Statistics classifies every stored account
	Statistics(ctx context.Context) (Statistics, error)

	// Now is the reference instant used for classification
	Now() time.Time
}

// TransferService moves the whole account set in and out of the store
type TransferService interface {
	// Export returns every stored account
	Export(ctx context.Context) ([]*Account, error)

	// Import creates one account per valid entry and reports the rest
	Import(ctx context.Context, entries []json.RawMessage) (*ImportResult, error)
}
