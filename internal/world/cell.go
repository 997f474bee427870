// Package world provides level layout generation: room placement, the room
// connectivity graph and corridor carving over a cell grid.
package world

import "fmt"

// Cell represents the state of a single grid position.
// The numeric values are the stored geometry encoding.
type Cell uint8

const (
	// CellVoid is an impassable, unused cell.
	CellVoid Cell = iota
	// CellFloor is a cell inside a room.
	CellFloor
	// CellCorridor is a carved connector cell.
	CellCorridor
	// CellDoor is a corridor cell used as a connector placeholder in tactical levels.
	CellDoor
)

// IsPassable returns true if the cell can be walked on.
func (c Cell) IsPassable() bool {
	return c == CellFloor || c == CellCorridor || c == CellDoor
}

// Glyph returns the cell's ASCII character.
func (c Cell) Glyph() rune {
	switch c {
	case CellFloor:
		return '.'
	case CellCorridor:
		return ','
	case CellDoor:
		return '+'
	default:
		return '#'
	}
}

// String returns a human-readable cell name.
func (c Cell) String() string {
	switch c {
	case CellVoid:
		return "void"
	case CellFloor:
		return "floor"
	case CellCorridor:
		return "corridor"
	case CellDoor:
		return "door"
	default:
		return "unknown"
	}
}

// ParseCell converts a glyph back to a cell.
func ParseCell(r rune) (Cell, error) {
	switch r {
	case '#', ' ':
		return CellVoid, nil
	case '.':
		return CellFloor, nil
	case ',':
		return CellCorridor, nil
	case '+':
		return CellDoor, nil
	default:
		return CellVoid, fmt.Errorf("unknown cell glyph %q", r)
	}
}
