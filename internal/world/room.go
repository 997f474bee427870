package world

// Room represents a rectangular room in the level.
type Room struct {
	ID            int // Sequential id, assigned after placement in (Y, X) order
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// CenterPoint returns the center of the room as a Point.
func (r Room) CenterPoint() Point {
	x, y := r.Center()
	return Point{X: x, Y: y}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Inflate returns the room grown by n cells on every side.
func (r Room) Inflate(n int) Room {
	return Room{
		ID:     r.ID,
		X:      r.X - n,
		Y:      r.Y - n,
		Width:  r.Width + 2*n,
		Height: r.Height + 2*n,
	}
}

// Area returns the number of cells covered by the room.
func (r Room) Area() int {
	return r.Width * r.Height
}
