package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildingInterior(t *testing.T) {
	d, err := BuildingInterior(DefaultInteriorSize, DefaultInteriorSize, DefaultInteriorInset)
	require.NoError(t, err)

	require.Len(t, d.Rooms, 1)
	room := d.Rooms[0]
	assert.Equal(t, Room{ID: 0, X: 5, Y: 5, Width: 20, Height: 20}, room)
	assert.Equal(t, room.Area(), d.Grid.Count(CellFloor))
	assert.Empty(t, d.Connections)
	assert.Equal(t, StageDone, d.Stage)

	assert.Equal(t, CellDoor, d.Grid.At(15, 25))
	assert.Equal(t, 1, d.Grid.Count(CellDoor))
	assert.True(t, d.Grid.Connected(), "door touches the room")
}

func TestBuildingInteriorRejectsInset(t *testing.T) {
	_, err := BuildingInterior(10, 10, 5)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = BuildingInterior(10, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
