package world

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zyedidia/generic/mapset"
)

// Grid owns the cell states of a level. Cells are stored row-major.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// NewGrid creates a new grid filled with void cells.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// InBounds returns true if the position lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell at the given position. Out of bounds positions are void.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return CellVoid
	}
	return g.cells[y*g.Width+x]
}

// Set overwrites the cell at the given position. Out of bounds writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if g.InBounds(x, y) {
		g.cells[y*g.Width+x] = c
	}
}

// IsFloor returns true if the position holds a room floor cell.
func (g *Grid) IsFloor(x, y int) bool {
	return g.At(x, y) == CellFloor
}

// StampRoom sets every cell of the room to floor.
func (g *Grid) StampRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.Set(x, y, CellFloor)
		}
	}
}

// Carve turns a void cell into corridor. Floor and door cells are never
// downgraded. It reports whether the cell changed.
func (g *Grid) Carve(x, y int) bool {
	if !g.InBounds(x, y) || g.At(x, y) != CellVoid {
		return false
	}
	g.cells[y*g.Width+x] = CellCorridor
	return true
}

// PlaceDoor turns a void or corridor cell into a door.
func (g *Grid) PlaceDoor(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	switch g.At(x, y) {
	case CellVoid, CellCorridor:
		g.cells[y*g.Width+x] = CellDoor
		return true
	default:
		return false
	}
}

// Count returns the number of cells in the given state.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{Width: g.Width, Height: g.Height, cells: cells}
}

// Rows returns the grid as rows of small integers, the stored geometry form.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.Height)
	for y := range rows {
		rows[y] = make([]int, g.Width)
		for x := range rows[y] {
			rows[y][x] = int(g.cells[y*g.Width+x])
		}
	}
	return rows
}

// GridFromRows rebuilds a grid from its stored geometry form.
func GridFromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), g.Width)
		}
		for x, v := range row {
			if v < int(CellVoid) || v > int(CellDoor) {
				return nil, fmt.Errorf("invalid cell value %d at (%d,%d)", v, x, y)
			}
			g.cells[y*g.Width+x] = Cell(v)
		}
	}
	return g, nil
}

// MarshalText renders the grid as one glyph per cell, one line per row.
func (g *Grid) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			buf.WriteRune(g.At(x, y).Glyph())
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// UnmarshalText parses the format produced by MarshalText.
func (g *Grid) UnmarshalText(text []byte) error {
	lines := strings.Split(strings.TrimRight(string(text), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		*g = *NewGrid(0, 0)
		return nil
	}
	width := len([]rune(lines[0]))
	parsed := NewGrid(width, len(lines))
	for y, line := range lines {
		runes := []rune(line)
		if len(runes) != width {
			return fmt.Errorf("line %d has %d cells, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			c, err := ParseCell(r)
			if err != nil {
				return fmt.Errorf("line %d: %w", y, err)
			}
			parsed.cells[y*width+x] = c
		}
	}
	*g = *parsed
	return nil
}

// String returns the text rendering of the grid.
func (g *Grid) String() string {
	text, _ := g.MarshalText()
	return string(text)
}

// Fingerprint returns a 64-bit hash of the grid dimensions and cells.
func (g *Grid) Fingerprint() uint64 {
	h := xxhash.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[0:8], uint64(g.Width))
	binary.LittleEndian.PutUint64(dims[8:16], uint64(g.Height))
	_, _ = h.Write(dims[:])
	raw := make([]byte, len(g.cells))
	for i, c := range g.cells {
		raw[i] = byte(c)
	}
	_, _ = h.Write(raw)
	return h.Sum64()
}

// Reachable returns every passable cell reachable from start under
// 4-directional adjacency.
func (g *Grid) Reachable(start Point) mapset.Set[Point] {
	visited := mapset.New[Point]()
	if !g.At(start.X, start.Y).IsPassable() {
		return visited
	}
	queue := []Point{start}
	visited.Put(start)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			n := p.Add(d)
			if visited.Has(n) || !g.At(n.X, n.Y).IsPassable() {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return visited
}

// Connected returns true if all passable cells form a single component.
// A grid with no passable cells is considered connected.
func (g *Grid) Connected() bool {
	total := 0
	var start Point
	found := false
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y).IsPassable() {
				if !found {
					start = Point{X: x, Y: y}
					found = true
				}
				total++
			}
		}
	}
	if !found {
		return true
	}
	return g.Reachable(start).Size() == total
}
