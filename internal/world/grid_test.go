package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLevel = `##########
#...,,,..#
#...#,#..#
#...#+#..#
##########
`

func TestGridText(t *testing.T) {
	var g Grid
	require.NoError(t, g.UnmarshalText([]byte(sampleLevel)))

	assert.Equal(t, 10, g.Width)
	assert.Equal(t, 5, g.Height)
	assert.Equal(t, CellFloor, g.At(1, 1))
	assert.Equal(t, CellCorridor, g.At(4, 1))
	assert.Equal(t, CellDoor, g.At(5, 3))
	assert.Equal(t, CellVoid, g.At(-1, 0), "out of bounds reads as void")
	assert.Equal(t, sampleLevel, g.String())

	assert.Error(t, g.UnmarshalText([]byte("##\n#\n")))
	assert.Error(t, g.UnmarshalText([]byte("#x#\n")))
}

func TestGridCarveNeverDowngrades(t *testing.T) {
	g := NewGrid(5, 5)
	g.StampRoom(Room{X: 1, Y: 1, Width: 2, Height: 2})
	require.True(t, g.PlaceDoor(3, 1))

	assert.False(t, g.Carve(1, 1), "floor")
	assert.False(t, g.Carve(3, 1), "door")
	assert.True(t, g.Carve(4, 4))
	assert.False(t, g.Carve(4, 4), "already corridor")
	assert.False(t, g.Carve(5, 5), "out of bounds")

	assert.Equal(t, CellFloor, g.At(1, 1))
	assert.Equal(t, CellDoor, g.At(3, 1))
	assert.Equal(t, CellCorridor, g.At(4, 4))
	assert.False(t, g.PlaceDoor(1, 1), "doors never replace floor")
}

func TestGridRows(t *testing.T) {
	var g Grid
	require.NoError(t, g.UnmarshalText([]byte(sampleLevel)))

	rows := g.Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, []int{0, 1, 1, 1, 2, 2, 2, 1, 1, 0}, rows[1])

	rebuilt, err := GridFromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, g.Fingerprint(), rebuilt.Fingerprint())

	_, err = GridFromRows([][]int{{0, 1}, {0}})
	assert.Error(t, err)
	_, err = GridFromRows([][]int{{0, 9}})
	assert.Error(t, err)
}

func TestGridFingerprint(t *testing.T) {
	a := NewGrid(4, 3)
	b := a.Clone()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Carve(0, 0)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, CellVoid, a.At(0, 0), "clone is independent")

	// Same cell count, different shape
	assert.NotEqual(t, NewGrid(4, 3).Fingerprint(), NewGrid(3, 4).Fingerprint())
}

func TestGridConnectivity(t *testing.T) {
	var g Grid
	require.NoError(t, g.UnmarshalText([]byte(sampleLevel)))
	assert.True(t, g.Connected())

	reached := g.Reachable(Point{1, 1})
	assert.Equal(t, g.Count(CellFloor)+g.Count(CellCorridor)+g.Count(CellDoor), reached.Size())
	assert.Zero(t, g.Reachable(Point{0, 0}).Size(), "void start")

	g.Set(4, 1, CellVoid)
	g.Set(5, 1, CellVoid)
	g.Set(6, 1, CellVoid)
	assert.False(t, g.Connected())

	assert.True(t, NewGrid(3, 3).Connected(), "empty grid")
}

func TestCellGlyphs(t *testing.T) {
	for _, c := range []Cell{CellVoid, CellFloor, CellCorridor, CellDoor} {
		parsed, err := ParseCell(c.Glyph())
		require.NoError(t, err)
		assert.Equal(t, c, parsed, c.String())
	}
	assert.False(t, CellVoid.IsPassable())
	assert.True(t, CellDoor.IsPassable())
}
