package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homesteadhq/homestead-api/internal/engine/grid"
)

func TestInBounds(t *testing.T) {
	tests := []struct {
		name          string
		width, height int32
		x, y          int32
		want          bool
	}{
		{"origin", 5, 5, 0, 0, true},
		{"far corner", 5, 5, 4, 4, true},
		{"x at width", 5, 5, 5, 0, false},
		{"y at height", 5, 5, 0, 5, false},
		{"negative x", 5, 5, -1, 2, false},
		{"negative y", 5, 5, 2, -1, false},
		{"non-square map", 6, 3, 5, 2, true},
		{"non-square out of bounds", 6, 3, 2, 3, false},
		{"minimum map", 1, 1, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, grid.InBounds(tt.width, tt.height, tt.x, tt.y))
		})
	}
}

func TestFootprint(t *testing.T) {
	t.Run("single tile", func(t *testing.T) {
		coords := grid.Footprint(3, 2, 1, 1)
		assert.Equal(t, []grid.Coord{{X: 3, Y: 2}}, coords)
	})

	t.Run("2x2 anchored at origin", func(t *testing.T) {
		coords := grid.Footprint(0, 0, 2, 2)
		assert.ElementsMatch(t, []grid.Coord{
			{X: 0, Y: 0}, {X: 1, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1},
		}, coords)
	})

	t.Run("wide item", func(t *testing.T) {
		coords := grid.Footprint(1, 4, 3, 1)
		assert.Equal(t, []grid.Coord{{X: 1, Y: 4}, {X: 2, Y: 4}, {X: 3, Y: 4}}, coords)
	})

	t.Run("zero size treated as 1x1", func(t *testing.T) {
		coords := grid.Footprint(2, 2, 0, 0)
		assert.Equal(t, []grid.Coord{{X: 2, Y: 2}}, coords)
	})
}

func TestHasDuplicates(t *testing.T) {
	assert.False(t, grid.HasDuplicates([]grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}))
	assert.True(t, grid.HasDuplicates([]grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}))
	assert.False(t, grid.HasDuplicates(nil))
}
