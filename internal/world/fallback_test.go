package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarveLHorizontalFirst(t *testing.T) {
	g := NewGrid(20, 10)
	carved := CarveL(g, Point{2, 2}, Point{12, 5}, rand.New(rand.NewSource(1)))

	// 11 cells along y=2, then 3 more down x=12
	assert.Equal(t, 14, carved)
	for x := 2; x <= 12; x++ {
		assert.Equal(t, CellCorridor, g.At(x, 2))
	}
	for y := 2; y <= 5; y++ {
		assert.Equal(t, CellCorridor, g.At(12, y))
	}
	assert.Equal(t, CellVoid, g.At(2, 5), "wrong corner")
}

func TestCarveLVerticalFirst(t *testing.T) {
	g := NewGrid(20, 20)
	CarveL(g, Point{3, 15}, Point{5, 1}, rand.New(rand.NewSource(1)))

	for y := 1; y <= 15; y++ {
		assert.Equal(t, CellCorridor, g.At(3, y))
	}
	for x := 3; x <= 5; x++ {
		assert.Equal(t, CellCorridor, g.At(x, 1))
	}
	assert.Equal(t, CellVoid, g.At(5, 15), "wrong corner")
}

func TestCarveLTieUsesEitherCorner(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g := NewGrid(10, 10)
		assert.Equal(t, 9, CarveL(g, Point{1, 1}, Point{5, 5}, rand.New(rand.NewSource(seed))))
		corner := g.At(5, 1) == CellCorridor
		other := g.At(1, 5) == CellCorridor
		assert.True(t, corner != other, "seed %d: exactly one corner carved", seed)
	}
}

func TestCarveLPreservesRooms(t *testing.T) {
	a := Room{ID: 0, X: 2, Y: 2, Width: 4, Height: 4}
	mid := Room{ID: 1, X: 10, Y: 2, Width: 4, Height: 4}
	b := Room{ID: 2, X: 20, Y: 2, Width: 4, Height: 4}
	g := stampedGrid(30, 10, a, mid, b)
	floor := g.Count(CellFloor)

	CarveL(g, a.CenterPoint(), b.CenterPoint(), rand.New(rand.NewSource(1)))
	assert.Equal(t, floor, g.Count(CellFloor))
	assert.True(t, g.Connected())
	require.True(t, g.Reachable(a.CenterPoint()).Has(b.CenterPoint()))
}

func TestCarveLClamps(t *testing.T) {
	g := NewGrid(5, 5)
	carved := CarveL(g, Point{-3, 2}, Point{9, 2}, rand.New(rand.NewSource(1)))
	assert.Equal(t, 5, carved)
	assert.Equal(t, 5, g.Count(CellCorridor))
}
