package world

import "fmt"

// Default building interior dimensions
const (
	DefaultInteriorSize  = 30
	DefaultInteriorInset = 5
)

// BuildingInterior creates a single-room layout inset from the grid border,
// with a door cell just outside the middle of the room's south wall.
func BuildingInterior(width, height, inset int) (*Dungeon, error) {
	if inset < 1 || width-2*inset < 1 || height-2*inset < 1 {
		return nil, fmt.Errorf("%w: inset %d leaves no room in a %dx%d interior",
			ErrInvalidConfig, inset, width, height)
	}

	room := Room{
		ID:     0,
		X:      inset,
		Y:      inset,
		Width:  width - 2*inset,
		Height: height - 2*inset,
	}
	grid := NewGrid(width, height)
	grid.StampRoom(room)
	grid.PlaceDoor(width/2, room.Y+room.Height)

	return &Dungeon{
		Width:  width,
		Height: height,
		Grid:   grid,
		Rooms:  []Room{room},
		Stats:  Stats{Rooms: 1},
		Stage:  StageDone,
	}, nil
}
