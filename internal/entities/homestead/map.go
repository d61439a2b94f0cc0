// Package homestead contains the core entities for the tile placement domain
package homestead

// Default dimensions for a freshly provisioned map
const (
	DefaultMapWidth  int32 = 5
	DefaultMapHeight int32 = 5
)

// GameMap is a per-account bounded grid. Maps start at the default size,
// grow by one in each dimension per expansion, and never shrink.
type GameMap struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Width     int32  `json:"width"`
	Height    int32  `json:"height"`
	CreatedAt int64  `json:"created_at"`
}
