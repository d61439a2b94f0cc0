package placement

import (
	"github.com/homesteadhq/homestead-api/internal/engine/grid"
	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
)

// PlaceSingleTileInput defines the input for placing a single-tile item
type PlaceSingleTileInput struct {
	MapID    string
	X        int32
	Y        int32
	ItemID   string
	PlacedBy string
}

// PlaceSingleTileOutput defines the output for placing a single-tile item
type PlaceSingleTileOutput struct {
	Placement *homestead.Placement
}

// PlaceMultiTileInput defines the input for placing a multi-tile item
type PlaceMultiTileInput struct {
	MapID    string
	Coords   []grid.Coord
	ItemID   string
	PlacedBy string
}

// PlaceMultiTileOutput defines the output for placing a multi-tile item
type PlaceMultiTileOutput struct {
	Placements []*homestead.Placement
}

// MoveItemInput defines the input for moving a placed item
type MoveItemInput struct {
	MapID string
	FromX int32
	FromY int32
	ToX   int32
	ToY   int32
}

// MoveItemOutput defines the output for moving a placed item
type MoveItemOutput struct {
	Placement *homestead.Placement
}

// RemoveItemInput defines the input for removing a placed item
type RemoveItemInput struct {
	MapID string
	X     int32
	Y     int32
}

// RemoveItemOutput defines the output for removing a placed item
type RemoveItemOutput struct {
	Removed bool
}
