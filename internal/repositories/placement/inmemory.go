package placement

import (
	"context"
	"sync"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. It
// mirrors the Redis semantics (tile uniqueness, all-or-none batches,
// idempotent delete) under a single mutex, for local development wiring.
type InMemoryRepository struct {
	mu sync.RWMutex
	// map ID -> tile field -> placement
	store map[string]map[string]*homestead.Placement
}

// NewInMemory creates a new in-memory placement repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]map[string]*homestead.Placement),
	}
}

func (r *InMemoryRepository) tiles(mapID string) map[string]*homestead.Placement {
	tiles, ok := r.store[mapID]
	if !ok {
		tiles = make(map[string]*homestead.Placement)
		r.store[mapID] = tiles
	}
	return tiles
}

// Insert stores a placement if its tile is free
func (r *InMemoryRepository) Insert(ctx context.Context, input InsertInput) (*InsertOutput, error) {
	if input.Placement == nil {
		return nil, errors.InvalidArgument(errPlacementNil)
	}
	if input.Placement.ID == "" {
		return nil, errors.InvalidArgument(errPlacementEmpty)
	}
	if input.Placement.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tiles := r.tiles(input.Placement.MapID)
	field := tileField(input.Placement.X, input.Placement.Y)
	if _, ok := tiles[field]; ok {
		return nil, errors.AlreadyExistsf("tile %s on map %s is occupied", field, input.Placement.MapID)
	}

	cp := *input.Placement
	tiles[field] = &cp

	return &InsertOutput{Placement: input.Placement}, nil
}

// InsertBatch atomically stores all placements or none
func (r *InMemoryRepository) InsertBatch(ctx context.Context, input InsertBatchInput) (*InsertBatchOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}
	if len(input.Placements) == 0 {
		return nil, errors.InvalidArgument("placements cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tiles := r.tiles(input.MapID)
	for _, p := range input.Placements {
		if p == nil {
			return nil, errors.InvalidArgument(errPlacementNil)
		}
		if p.MapID != input.MapID {
			return nil, errors.InvalidArgumentf("placement %s targets map %s, batch is for map %s", p.ID, p.MapID, input.MapID)
		}
		field := tileField(p.X, p.Y)
		if _, ok := tiles[field]; ok {
			return nil, errors.AlreadyExistsf("tile %s on map %s is occupied", field, input.MapID)
		}
	}

	for _, p := range input.Placements {
		cp := *p
		tiles[tileField(p.X, p.Y)] = &cp
	}

	return &InsertBatchOutput{Placements: input.Placements}, nil
}

// Delete removes the placement at a tile if present
func (r *InMemoryRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tiles := r.tiles(input.MapID)
	field := tileField(input.X, input.Y)
	_, existed := tiles[field]
	delete(tiles, field)

	return &DeleteOutput{Removed: existed}, nil
}

// Get retrieves the placement at a tile
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	field := tileField(input.X, input.Y)
	p, ok := r.store[input.MapID][field]
	if !ok {
		return nil, errors.NotFoundf("no placement at tile %s on map %s", field, input.MapID)
	}

	// Return a copy to prevent external modification
	cp := *p
	return &GetOutput{Placement: &cp}, nil
}

// ListByMap returns every placement on a map
func (r *InMemoryRepository) ListByMap(ctx context.Context, input ListByMapInput) (*ListByMapOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tiles := r.store[input.MapID]
	placements := make([]*homestead.Placement, 0, len(tiles))
	for _, p := range tiles {
		cp := *p
		placements = append(placements, &cp)
	}

	return &ListByMapOutput{Placements: placements}, nil
}
