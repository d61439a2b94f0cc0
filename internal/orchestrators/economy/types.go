package economy

import (
	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
)

// BuyInput defines the input for buying and placing a catalog item
type BuyInput struct {
	AccountID string
	MapID     string
	X         int32
	Y         int32
	ItemID    string
}

// BuyOutput defines the output for buying and placing a catalog item
type BuyOutput struct {
	Item       *homestead.Item
	Placements []*homestead.Placement
	Balance    int64
}

// SellInput defines the input for selling a placed item
type SellInput struct {
	AccountID string
	MapID     string
	X         int32
	Y         int32
}

// SellOutput defines the output for selling a placed item. TilesRemoved
// counts every cell of the placement group that was cleared.
type SellOutput struct {
	Refund       int64
	PlacementID  string
	ItemID       string
	TilesRemoved int
	Balance      int64
}

// ExpandMapInput defines the input for expanding a map
type ExpandMapInput struct {
	MapID     string
	AccountID string
	Cost      int64
}

// ExpandMapOutput defines the output for expanding a map
type ExpandMapOutput struct {
	Map        *homestead.GameMap
	Balance    int64
	Experience int64
}
