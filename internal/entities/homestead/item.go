package homestead

// Item is a catalog entry, read-only to this service. Price is decimal in
// chron units; all balance mutations floor it to an integer. SizeX/SizeY
// describe the tile footprint (1x1 for single-tile items).
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	SizeX    int32   `json:"size_x"`
	SizeY    int32   `json:"size_y"`
	ImageRef string  `json:"image_ref"`
	Active   bool    `json:"active"`
}

// MultiTile reports whether the item occupies more than one tile
func (i *Item) MultiTile() bool {
	return i.SizeX*i.SizeY > 1
}
