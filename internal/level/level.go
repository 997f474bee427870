// Package level attaches generated layouts to level records and their
// markers: room numbers, and stairs linking the levels of a complex.
package level

import (
	"github.com/google/uuid"

	"github.com/samdwyer/levelforge/internal/world"
)

// Level kinds
const (
	KindDungeonLevel     = "dungeon_level"
	KindBuildingInterior = "building_interior"
)

// Marker symbols
const (
	SymbolRoomNumber = "room_number"
	SymbolStairsUp   = "stairs_up"
	SymbolStairsDown = "stairs_down"
	SymbolDoor       = "door"
)

// Level is a stored map of a single floor.
type Level struct {
	ID             uuid.UUID `json:"id"`
	ParentID       uuid.UUID `json:"parent_id"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name"`
	Depth          int       `json:"depth,omitempty"`
	RenderStyle    string    `json:"render_style"`
	Overview       string    `json:"overview,omitempty"`
	SourceMarkerID uuid.UUID `json:"source_marker_id"` // Links the levels of one complex together
	Geometry       Geometry  `json:"geometry"`
}

// Geometry is the opaque layout blob stored on a level.
type Geometry struct {
	Grid   [][]int  `json:"grid"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rooms  [][4]int `json:"rooms"` // x, y, width, height in room id order
}

// NewGeometry captures a generated layout.
func NewGeometry(d *world.Dungeon) Geometry {
	rooms := make([][4]int, len(d.Rooms))
	for i, r := range d.Rooms {
		rooms[i] = [4]int{r.X, r.Y, r.Width, r.Height}
	}
	return Geometry{
		Grid:   d.Grid.Rows(),
		Width:  d.Width,
		Height: d.Height,
		Rooms:  rooms,
	}
}

// Layout rebuilds the grid and rooms from the stored blob.
func (g Geometry) Layout() (*world.Grid, []world.Room, error) {
	grid, err := world.GridFromRows(g.Grid)
	if err != nil {
		return nil, nil, err
	}
	rooms := make([]world.Room, len(g.Rooms))
	for i, r := range g.Rooms {
		rooms[i] = world.Room{ID: i, X: r[0], Y: r[1], Width: r[2], Height: r[3]}
	}
	return grid, rooms, nil
}

// Marker is a point of interest on a level.
type Marker struct {
	ID          uuid.UUID `json:"id"`
	ParentID    uuid.UUID `json:"parent_id"` // Level the marker sits on
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	X           float64   `json:"world_x"`
	Y           float64   `json:"world_y"`
	Description string    `json:"description"`
	PortalTo    uuid.UUID `json:"portal_to"` // Level or map the marker leads to
}

// Anchor is the map marker a complex or interior is entered from.
type Anchor struct {
	MarkerID uuid.UUID // Marker on the parent map; parent of the generated levels
	MapID    uuid.UUID // Map holding the marker; the first stairs up lead here
	WorldX   int
	WorldY   int
}
