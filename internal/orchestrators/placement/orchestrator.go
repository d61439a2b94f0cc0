// Package placement implements the tile placement engine. It validates
// coordinates against map bounds and writes through the placement store,
// whose storage-level uniqueness decides every contention race. The engine
// never touches currency; charging is the economy orchestrator's job and
// happens only after placement succeeds.
package placement

//go:generate mockgen -destination=mock/mock_service.go -package=placementmock github.com/homesteadhq/homestead-api/internal/orchestrators/placement Service

import (
	"context"
	"log/slog"

	"github.com/homesteadhq/homestead-api/internal/engine/grid"
	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	"github.com/homesteadhq/homestead-api/internal/pkg/clock"
	"github.com/homesteadhq/homestead-api/internal/pkg/idgen"
	"github.com/homesteadhq/homestead-api/internal/repositories/gamemap"
	placementrepo "github.com/homesteadhq/homestead-api/internal/repositories/placement"
)

// Service defines the interface for placement operations
type Service interface {
	// PlaceSingleTile places a 1x1 item on a tile.
	// Returns errors.NotFound if the map is missing
	// Returns errors.OutOfRange if the coordinate is outside the map
	// Returns errors.AlreadyExists if the tile is occupied
	PlaceSingleTile(ctx context.Context, input *PlaceSingleTileInput) (*PlaceSingleTileOutput, error)

	// PlaceMultiTile places an item across several tiles atomically:
	// either every coordinate becomes occupied or none does.
	PlaceMultiTile(ctx context.Context, input *PlaceMultiTileInput) (*PlaceMultiTileOutput, error)

	// MoveItem relocates a placed item. The source record is only removed
	// once the destination insert has been confirmed, so a lost race
	// leaves the source untouched. Moving onto the source tile is a no-op
	// success.
	MoveItem(ctx context.Context, input *MoveItemInput) (*MoveItemOutput, error)

	// RemoveItem deletes the placement at a tile. Removing an empty tile
	// is not an error; Removed reports whether anything was there.
	RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error)
}

// Config holds the dependencies for the placement orchestrator
type Config struct {
	MapRepo       gamemap.Repository
	PlacementRepo placementrepo.Repository
	IDGenerator   idgen.Generator
	Clock         clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.MapRepo == nil {
		vb.RequiredField("MapRepo")
	}
	if c.PlacementRepo == nil {
		vb.RequiredField("PlacementRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	mapRepo       gamemap.Repository
	placementRepo placementrepo.Repository
	idGen         idgen.Generator
	clock         clock.Clock
}

// NewOrchestrator creates a new placement orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		mapRepo:       cfg.MapRepo,
		placementRepo: cfg.PlacementRepo,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
	}, nil
}

func (o *orchestrator) loadMap(ctx context.Context, mapID string) (*homestead.GameMap, error) {
	output, err := o.mapRepo.Get(ctx, gamemap.GetInput{ID: mapID})
	if err != nil {
		return nil, err
	}
	return output.Map, nil
}

func (o *orchestrator) PlaceSingleTile(ctx context.Context, input *PlaceSingleTileInput) (*PlaceSingleTileOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}
	if input.PlacedBy == "" {
		return nil, errors.InvalidArgument("placing account ID is required")
	}

	m, err := o.loadMap(ctx, input.MapID)
	if err != nil {
		return nil, err
	}

	if !grid.InBounds(m.Width, m.Height, input.X, input.Y) {
		return nil, errors.OutOfRangef("coordinate (%d,%d) is outside map %s bounds %dx%d",
			input.X, input.Y, m.ID, m.Width, m.Height)
	}

	id := o.idGen.Generate()
	p := &homestead.Placement{
		ID:       id,
		GroupID:  id,
		MapID:    input.MapID,
		X:        input.X,
		Y:        input.Y,
		ItemID:   input.ItemID,
		PlacedBy: input.PlacedBy,
		PlacedAt: o.clock.Now().Unix(),
	}

	insertOutput, err := o.placementRepo.Insert(ctx, placementrepo.InsertInput{Placement: p})
	if err != nil {
		// occupied tiles are an expected contention outcome, not a failure
		return nil, err
	}

	slog.Info("Item placed",
		"map_id", input.MapID,
		"x", input.X,
		"y", input.Y,
		"item_id", input.ItemID,
		"placed_by", input.PlacedBy,
	)

	return &PlaceSingleTileOutput{Placement: insertOutput.Placement}, nil
}

func (o *orchestrator) PlaceMultiTile(ctx context.Context, input *PlaceMultiTileInput) (*PlaceMultiTileOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}
	if input.PlacedBy == "" {
		return nil, errors.InvalidArgument("placing account ID is required")
	}
	if len(input.Coords) == 0 {
		return nil, errors.InvalidArgument("at least one coordinate is required")
	}
	if grid.HasDuplicates(input.Coords) {
		return nil, errors.InvalidArgument("coordinates contain duplicates")
	}

	m, err := o.loadMap(ctx, input.MapID)
	if err != nil {
		return nil, err
	}

	// Every coordinate validates before any write is attempted.
	for _, c := range input.Coords {
		if !grid.InBounds(m.Width, m.Height, c.X, c.Y) {
			return nil, errors.OutOfRangef("coordinate (%d,%d) is outside map %s bounds %dx%d",
				c.X, c.Y, m.ID, m.Width, m.Height)
		}
	}

	groupID := o.idGen.Generate()
	placedAt := o.clock.Now().Unix()
	placements := make([]*homestead.Placement, len(input.Coords))
	for i, c := range input.Coords {
		placements[i] = &homestead.Placement{
			ID:       o.idGen.Generate(),
			GroupID:  groupID,
			MapID:    input.MapID,
			X:        c.X,
			Y:        c.Y,
			ItemID:   input.ItemID,
			PlacedBy: input.PlacedBy,
			PlacedAt: placedAt,
		}
	}

	batchOutput, err := o.placementRepo.InsertBatch(ctx, placementrepo.InsertBatchInput{
		MapID:      input.MapID,
		Placements: placements,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Multi-tile item placed",
		"map_id", input.MapID,
		"item_id", input.ItemID,
		"placed_by", input.PlacedBy,
		"tiles", len(placements),
		"group_id", groupID,
	)

	return &PlaceMultiTileOutput{Placements: batchOutput.Placements}, nil
}

func (o *orchestrator) MoveItem(ctx context.Context, input *MoveItemInput) (*MoveItemOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}

	m, err := o.loadMap(ctx, input.MapID)
	if err != nil {
		return nil, err
	}

	if !grid.InBounds(m.Width, m.Height, input.ToX, input.ToY) {
		return nil, errors.OutOfRangef("coordinate (%d,%d) is outside map %s bounds %dx%d",
			input.ToX, input.ToY, m.ID, m.Width, m.Height)
	}

	getOutput, err := o.placementRepo.Get(ctx, placementrepo.GetInput{
		MapID: input.MapID,
		X:     input.FromX,
		Y:     input.FromY,
	})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("no item at source tile (%d,%d) on map %s",
				input.FromX, input.FromY, input.MapID)
		}
		return nil, err
	}
	source := getOutput.Placement

	// Moving onto the same tile is a no-op success.
	if input.FromX == input.ToX && input.FromY == input.ToY {
		return &MoveItemOutput{Placement: source}, nil
	}

	moved := *source
	moved.X = input.ToX
	moved.Y = input.ToY

	// Insert-then-delete: the source must not disappear unless the
	// destination write committed. A lost race on the destination leaves
	// the source untouched and surfaces as AlreadyExists.
	if _, err := o.placementRepo.Insert(ctx, placementrepo.InsertInput{Placement: &moved}); err != nil {
		return nil, err
	}

	if _, err := o.placementRepo.Delete(ctx, placementrepo.DeleteInput{
		MapID: input.MapID,
		X:     input.FromX,
		Y:     input.FromY,
	}); err != nil {
		// Destination committed but the source removal failed, so the item
		// now exists twice. Surface loudly for reconciliation.
		slog.Error("Move committed destination but failed to clear source",
			"map_id", input.MapID,
			"from_x", input.FromX,
			"from_y", input.FromY,
			"to_x", input.ToX,
			"to_y", input.ToY,
			"placement_id", source.ID,
			"error", err,
		)
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss,
			"item duplicated across tiles during move, reconciliation required")
	}

	slog.Info("Item moved",
		"map_id", input.MapID,
		"from_x", input.FromX,
		"from_y", input.FromY,
		"to_x", input.ToX,
		"to_y", input.ToY,
		"placement_id", source.ID,
	)

	return &MoveItemOutput{Placement: &moved}, nil
}

func (o *orchestrator) RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}

	deleteOutput, err := o.placementRepo.Delete(ctx, placementrepo.DeleteInput{
		MapID: input.MapID,
		X:     input.X,
		Y:     input.Y,
	})
	if err != nil {
		return nil, err
	}

	return &RemoveItemOutput{Removed: deleteOutput.Removed}, nil
}
