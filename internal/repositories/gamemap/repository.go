// Package gamemap defines the interface for map persistence. Maps grow by
// one in each dimension per expansion and never shrink; expansion debits
// the owner's chron balance in the same atomic unit as the size change.
package gamemap

//go:generate mockgen -destination=mock/mock_repository.go -package=gamemapmock github.com/homesteadhq/homestead-api/internal/repositories/gamemap Repository

import (
	"context"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
)

// Repository defines the interface for map persistence
type Repository interface {
	// Create stores a new map.
	// Returns errors.AlreadyExists if the map ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a map by ID.
	// Returns errors.NotFound if the map does not exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Expand grows the map by one in each dimension, debits the account's
	// chron balance by Cost and grants the same amount of experience, all
	// as one atomic unit. On any failure neither the map nor the balance
	// changes.
	// Returns errors.NotFound if map or account is missing
	// Returns errors.FailedPrecondition if the balance cannot cover Cost
	// Returns errors.Aborted if contention retries are exhausted
	Expand(ctx context.Context, input ExpandInput) (*ExpandOutput, error)
}

// CreateInput defines the input for creating a map
type CreateInput struct {
	Map *homestead.GameMap
}

// CreateOutput defines the output for creating a map
type CreateOutput struct {
	Map *homestead.GameMap
}

// GetInput defines the input for getting a map
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a map
type GetOutput struct {
	Map *homestead.GameMap
}

// ExpandInput defines the input for expanding a map
type ExpandInput struct {
	MapID     string
	AccountID string
	Cost      int64
}

// ExpandOutput defines the output for expanding a map
type ExpandOutput struct {
	Map        *homestead.GameMap
	Balance    int64
	Experience int64
}
