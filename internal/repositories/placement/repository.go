// Package placement defines the interface for placement persistence.
// The store is keyed by (map ID, x, y) and enforces the one-item-per-tile
// invariant at the storage layer so it holds under concurrent writers.
package placement

//go:generate mockgen -destination=mock/mock_repository.go -package=placementmock github.com/homesteadhq/homestead-api/internal/repositories/placement Repository

import (
	"context"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
)

// Repository defines the interface for placement persistence
type Repository interface {
	// Insert stores a placement if its tile is free.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the tile is already occupied
	// Returns errors.Internal for storage failures
	Insert(ctx context.Context, input InsertInput) (*InsertOutput, error)

	// InsertBatch atomically stores all placements or none. If any target
	// tile is occupied the store is left unchanged.
	// Returns errors.AlreadyExists naming the first occupied tile
	// Returns errors.Internal for storage failures
	InsertBatch(ctx context.Context, input InsertBatchInput) (*InsertBatchOutput, error)

	// Delete removes the placement at a tile if present. Deleting an empty
	// tile is not an error; Removed reports whether a record existed.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Get retrieves the placement at a tile.
	// Returns errors.NotFound if the tile is empty
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByMap returns every placement on a map from a single consistent
	// read. No ordering guarantees.
	ListByMap(ctx context.Context, input ListByMapInput) (*ListByMapOutput, error)
}

// InsertInput defines the input for inserting a placement
type InsertInput struct {
	Placement *homestead.Placement
}

// InsertOutput defines the output for inserting a placement
type InsertOutput struct {
	Placement *homestead.Placement
}

// InsertBatchInput defines the input for atomically inserting placements
type InsertBatchInput struct {
	MapID      string
	Placements []*homestead.Placement
}

// InsertBatchOutput defines the output for atomically inserting placements
type InsertBatchOutput struct {
	Placements []*homestead.Placement
}

// DeleteInput defines the input for deleting a placement
type DeleteInput struct {
	MapID string
	X     int32
	Y     int32
}

// DeleteOutput defines the output for deleting a placement
type DeleteOutput struct {
	Removed bool
}

// GetInput defines the input for getting a placement
type GetInput struct {
	MapID string
	X     int32
	Y     int32
}

// GetOutput defines the output for getting a placement
type GetOutput struct {
	Placement *homestead.Placement
}

// ListByMapInput defines the input for listing a map's placements
type ListByMapInput struct {
	MapID string
}

// ListByMapOutput defines the output for listing a map's placements
type ListByMapOutput struct {
	Placements []*homestead.Placement
}
