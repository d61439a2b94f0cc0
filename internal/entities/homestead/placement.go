package homestead

// Placement binds one item instance to one tile on one map. Multi-tile
// items produce one record per occupied tile, all sharing a GroupID.
// Placements are never updated in place: a move deletes and recreates.
type Placement struct {
	ID       string `json:"id"`
	GroupID  string `json:"group_id"`
	MapID    string `json:"map_id"`
	X        int32  `json:"x"`
	Y        int32  `json:"y"`
	ItemID   string `json:"item_id"`
	PlacedBy string `json:"placed_by"`
	PlacedAt int64  `json:"placed_at"`
}
