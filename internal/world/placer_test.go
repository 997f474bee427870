package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceRoomsBounds(t *testing.T) {
	cfg := DefaultConfig()
	grid := NewGrid(cfg.Width, cfg.Height)

	rooms, attempts := PlaceRooms(grid, cfg, rand.New(rand.NewSource(8)))
	require.NotEmpty(t, rooms)
	assert.LessOrEqual(t, len(rooms), cfg.RoomCount)
	assert.LessOrEqual(t, attempts, cfg.PlacementAttempts)

	for _, r := range rooms {
		assert.GreaterOrEqual(t, r.Width, cfg.MinRoomSize)
		assert.LessOrEqual(t, r.Width, cfg.MaxRoomSize)
		assert.GreaterOrEqual(t, r.Height, cfg.MinRoomSize)
		assert.LessOrEqual(t, r.Height, cfg.MaxRoomSize)

		assert.GreaterOrEqual(t, r.X, margin)
		assert.GreaterOrEqual(t, r.Y, margin)
		assert.LessOrEqual(t, r.X+r.Width, cfg.Width-margin)
		assert.LessOrEqual(t, r.Y+r.Height, cfg.Height-margin)

		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				assert.True(t, grid.IsFloor(x, y))
			}
		}
	}
}

func TestPlaceRoomsExhaustsBudget(t *testing.T) {
	// Two padded 10x10 rooms can never share a 20x20 grid
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 20, 20
	cfg.MinRoomSize, cfg.MaxRoomSize = 10, 10
	cfg.Padding = 3
	cfg.PlacementAttempts = 50
	require.NoError(t, cfg.Validate())

	rooms, attempts := PlaceRooms(NewGrid(cfg.Width, cfg.Height), cfg, rand.New(rand.NewSource(1)))
	assert.Len(t, rooms, 1)
	assert.Equal(t, 50, attempts)
}

func TestPlaceRoomsPaddingOnBothSides(t *testing.T) {
	// Inflating both rooms by 1 needs a two-cell gap between them
	placed := []Room{{X: 10, Y: 10, Width: 4, Height: 4}}

	oneApart := Room{X: 15, Y: 10, Width: 4, Height: 4}
	twoApart := Room{X: 16, Y: 10, Width: 4, Height: 4}
	assert.True(t, overlapsAny(oneApart, placed, 1))
	assert.False(t, overlapsAny(twoApart, placed, 1))
	assert.False(t, overlapsAny(oneApart, placed, 0))
}

func TestPlaceRoomsStopsAtCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoomCount = 3
	cfg.Padding = 0

	rooms, attempts := PlaceRooms(NewGrid(cfg.Width, cfg.Height), cfg, rand.New(rand.NewSource(5)))
	assert.Len(t, rooms, 3)
	assert.Less(t, attempts, cfg.PlacementAttempts)
}
