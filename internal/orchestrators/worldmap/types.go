package worldmap

import (
	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
)

// CreateMapInput defines the input for provisioning a map
type CreateMapInput struct {
	OwnerID string
	Name    string
}

// CreateMapOutput defines the output for provisioning a map
type CreateMapOutput struct {
	Map *homestead.GameMap
}

// Cell is one tile of a dense snapshot grid. Item may be nil when the
// catalog no longer carries the placed item.
type Cell struct {
	Placement *homestead.Placement
	Item      *homestead.Item
}

// GetMapSnapshotInput defines the input for building a map snapshot
type GetMapSnapshotInput struct {
	MapID string
}

// GetMapSnapshotOutput defines the output for building a map snapshot.
// Grid is indexed [y][x]; empty tiles are nil.
type GetMapSnapshotOutput struct {
	Map        *homestead.GameMap
	Grid       [][]*Cell
	Placements []*homestead.Placement
}
