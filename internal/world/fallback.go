package world

import "math/rand"

// CarveL carves an L-shaped corridor between two points. It runs along the
// axis with the larger delta first and flips a coin when the deltas are equal.
// Coordinates are clamped to the grid, both endpoints and the corner are
// included, and only void cells change. It returns the number of cells carved.
//
// This is the connectivity guarantee of last resort when the router finds no
// path; the result is not cost-optimized and may run straight through rooms.
func CarveL(grid *Grid, from, to Point, rng *rand.Rand) int {
	from, to = grid.clamp(from), grid.clamp(to)
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)

	horizontalFirst := dx > dy
	if dx == dy {
		horizontalFirst = rng.Intn(2) == 0
	}

	carved := 0
	if horizontalFirst {
		carved += carveHorizontalTunnel(grid, from.X, to.X, from.Y)
		carved += carveVerticalTunnel(grid, from.Y, to.Y, to.X)
	} else {
		carved += carveVerticalTunnel(grid, from.Y, to.Y, from.X)
		carved += carveHorizontalTunnel(grid, from.X, to.X, to.Y)
	}
	return carved
}

// carveHorizontalTunnel carves a horizontal tunnel.
func carveHorizontalTunnel(grid *Grid, x1, x2, y int) int {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	carved := 0
	for x := x1; x <= x2; x++ {
		if grid.Carve(x, y) {
			carved++
		}
	}
	return carved
}

// carveVerticalTunnel carves a vertical tunnel.
func carveVerticalTunnel(grid *Grid, y1, y2, x int) int {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	carved := 0
	for y := y1; y <= y2; y++ {
		if grid.Carve(x, y) {
			carved++
		}
	}
	return carved
}

// clamp pulls a point inside the grid bounds.
func (g *Grid) clamp(p Point) Point {
	return Point{
		X: max(0, min(p.X, g.Width-1)),
		Y: max(0, min(p.Y, g.Height-1)),
	}
}
