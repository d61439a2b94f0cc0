// Package worldmap owns map lifecycle and the dense snapshot projection.
// The sparse placement records are the source of truth; the grid returned
// by GetMapSnapshot is a disposable per-read projection, never a second
// synchronized copy.
package worldmap

//go:generate mockgen -destination=mock/mock_service.go -package=worldmapmock github.com/homesteadhq/homestead-api/internal/orchestrators/worldmap Service

import (
	"context"
	"log/slog"

	"github.com/homesteadhq/homestead-api/internal/clients/catalog"
	"github.com/homesteadhq/homestead-api/internal/engine/grid"
	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
	"github.com/homesteadhq/homestead-api/internal/errors"
	"github.com/homesteadhq/homestead-api/internal/pkg/clock"
	"github.com/homesteadhq/homestead-api/internal/pkg/idgen"
	"github.com/homesteadhq/homestead-api/internal/repositories/gamemap"
	placementrepo "github.com/homesteadhq/homestead-api/internal/repositories/placement"
)

// Service defines the interface for map lifecycle and read projections
type Service interface {
	// CreateMap provisions a default-size map for an owner. Called as a
	// side effect of account signup by the accounts collaborator.
	CreateMap(ctx context.Context, input *CreateMapInput) (*CreateMapOutput, error)

	// GetMapSnapshot builds a dense height x width projection of the
	// map's placements from a single consistent read.
	// Returns errors.NotFound if the map does not exist
	GetMapSnapshot(ctx context.Context, input *GetMapSnapshotInput) (*GetMapSnapshotOutput, error)
}

// Config holds the dependencies for the worldmap orchestrator
type Config struct {
	MapRepo       gamemap.Repository
	PlacementRepo placementrepo.Repository
	Catalog       catalog.Client
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
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
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
	catalog       catalog.Client
	idGen         idgen.Generator
	clock         clock.Clock
}

// NewOrchestrator creates a new worldmap orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		mapRepo:       cfg.MapRepo,
		placementRepo: cfg.PlacementRepo,
		catalog:       cfg.Catalog,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
	}, nil
}

func (o *orchestrator) CreateMap(ctx context.Context, input *CreateMapInput) (*CreateMapOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	m := &homestead.GameMap{
		ID:        o.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		Width:     homestead.DefaultMapWidth,
		Height:    homestead.DefaultMapHeight,
		CreatedAt: o.clock.Now().Unix(),
	}

	createOutput, err := o.mapRepo.Create(ctx, gamemap.CreateInput{Map: m})
	if err != nil {
		return nil, err
	}

	slog.Info("Map created",
		"map_id", m.ID,
		"owner_id", input.OwnerID,
		"width", m.Width,
		"height", m.Height,
	)

	return &CreateMapOutput{Map: createOutput.Map}, nil
}

func (o *orchestrator) GetMapSnapshot(ctx context.Context, input *GetMapSnapshotInput) (*GetMapSnapshotOutput, error) {
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}

	mapOutput, err := o.mapRepo.Get(ctx, gamemap.GetInput{ID: input.MapID})
	if err != nil {
		return nil, err
	}
	m := mapOutput.Map

	// Single consistent read of the whole placement set; the projection
	// below never mixes pre- and post-mutation state.
	listOutput, err := o.placementRepo.ListByMap(ctx, placementrepo.ListByMapInput{MapID: input.MapID})
	if err != nil {
		return nil, err
	}

	rows := make([][]*Cell, m.Height)
	for y := range rows {
		rows[y] = make([]*Cell, m.Width)
	}

	items := make(map[string]*homestead.Item, len(listOutput.Placements))
	for _, p := range listOutput.Placements {
		// Records outside current bounds are tolerated and skipped, not
		// fatal: bounds may have been captured before an expansion.
		if !grid.InBounds(m.Width, m.Height, p.X, p.Y) {
			slog.Warn("Skipping out-of-bounds placement record in snapshot",
				"map_id", m.ID,
				"placement_id", p.ID,
				"x", p.X,
				"y", p.Y,
				"width", m.Width,
				"height", m.Height,
			)
			continue
		}

		item, ok := items[p.ItemID]
		if !ok {
			itemOutput, err := o.catalog.GetItem(ctx, &catalog.GetItemInput{ID: p.ItemID})
			if err != nil {
				if !errors.IsNotFound(err) {
					return nil, err
				}
				// Retired catalog entries leave the cell without item
				// detail rather than breaking the whole read.
			} else {
				item = itemOutput.Item
			}
			items[p.ItemID] = item
		}

		rows[p.Y][p.X] = &Cell{Placement: p, Item: item}
	}

	return &GetMapSnapshotOutput{
		Map:        m,
		Grid:       rows,
		Placements: listOutput.Placements,
	}, nil
}
