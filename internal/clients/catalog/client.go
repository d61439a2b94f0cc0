// Package catalog provides the item catalog lookup the placement core
// consumes. The catalog itself is owned by another service; this client
// only reads price, footprint, and the active flag, plus a seeding hook
// for operators.
package catalog

//go:generate mockgen -destination=mock/mock_client.go -package=catalogmock github.com/homesteadhq/homestead-api/internal/clients/catalog Client

import (
	"context"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
)

// Client defines the interface for item catalog lookups
type Client interface {
	// GetItem retrieves a catalog item by ID.
	// Returns errors.NotFound if the item does not exist
	GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error)

	// PutItem stores or replaces a catalog item. Used for seeding; the
	// placement core never writes through this.
	PutItem(ctx context.Context, input *PutItemInput) (*PutItemOutput, error)
}

// GetItemInput defines the input for getting an item
type GetItemInput struct {
	ID string
}

// GetItemOutput defines the output for getting an item
type GetItemOutput struct {
	Item *homestead.Item
}

// PutItemInput defines the input for storing an item
type PutItemInput struct {
	Item *homestead.Item
}

// PutItemOutput defines the output for storing an item
type PutItemOutput struct {
	Item *homestead.Item
}
