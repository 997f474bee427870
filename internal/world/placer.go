package world

import (
	"math/rand"
	"sort"
)

// PlaceRooms fills the grid with non-overlapping rooms by rejection sampling.
// Sampling stops after cfg.RoomCount rooms are accepted or cfg.PlacementAttempts
// candidates have been drawn. Running out of attempts is not an error: the
// rooms placed so far are returned, possibly none. Rooms come back sorted by
// (Y, X) with sequential ids, and are stamped onto the grid as floor.
//
// It returns the rooms and the number of candidates drawn.
func PlaceRooms(grid *Grid, cfg Config, rng *rand.Rand) ([]Room, int) {
	rooms := make([]Room, 0, cfg.RoomCount)

	attempts := 0
	for attempts < cfg.PlacementAttempts && len(rooms) < cfg.RoomCount {
		attempts++
		candidate := sampleRoom(cfg, rng)
		if overlapsAny(candidate, rooms, cfg.Padding) {
			continue
		}
		rooms = append(rooms, candidate)
	}

	// Number rooms top-to-bottom, left-to-right
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].Y != rooms[j].Y {
			return rooms[i].Y < rooms[j].Y
		}
		return rooms[i].X < rooms[j].X
	})
	for i := range rooms {
		rooms[i].ID = i
		grid.StampRoom(rooms[i])
	}

	return rooms, attempts
}

// sampleRoom draws a candidate rectangle that fits inside the grid margins.
func sampleRoom(cfg Config, rng *rand.Rand) Room {
	span := cfg.MaxRoomSize - cfg.MinRoomSize + 1
	w := cfg.MinRoomSize + rng.Intn(span)
	h := cfg.MinRoomSize + rng.Intn(span)

	// Top-left in [margin, dim-size-margin]
	x := margin + rng.Intn(cfg.Width-w-2*margin+1)
	y := margin + rng.Intn(cfg.Height-h-2*margin+1)

	return Room{X: x, Y: y, Width: w, Height: h}
}

// overlapsAny reports whether the padded candidate touches any padded room.
func overlapsAny(candidate Room, rooms []Room, padding int) bool {
	inflated := candidate.Inflate(padding)
	for _, other := range rooms {
		if inflated.Intersects(other.Inflate(padding)) {
			return true
		}
	}
	return false
}
