// Package grid provides pure geometry helpers for bounded 2D tile maps.
// No state, no side effects; every write path validates through here
// before touching storage.
package grid

// Coord is an integer tile coordinate within a map's grid
type Coord struct {
	X int32
	Y int32
}

// InBounds reports whether (x, y) lies within a width x height grid.
// Coordinates are zero-based: valid iff 0 <= x < width and 0 <= y < height.
func InBounds(width, height, x, y int32) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}

// Footprint returns the coordinates an item anchored at (x, y) occupies,
// given its sizeX x sizeY footprint. The anchor is the top-left cell.
// Sizes below 1 are treated as 1.
func Footprint(x, y, sizeX, sizeY int32) []Coord {
	if sizeX < 1 {
		sizeX = 1
	}
	if sizeY < 1 {
		sizeY = 1
	}

	coords := make([]Coord, 0, sizeX*sizeY)
	for dy := int32(0); dy < sizeY; dy++ {
		for dx := int32(0); dx < sizeX; dx++ {
			coords = append(coords, Coord{X: x + dx, Y: y + dy})
		}
	}
	return coords
}

// HasDuplicates reports whether any coordinate appears twice
func HasDuplicates(coords []Coord) bool {
	seen := make(map[Coord]struct{}, len(coords))
	for _, c := range coords {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}
