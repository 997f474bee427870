package world

// Point is a grid cell coordinate.
type Point struct {
	X, Y int
}

// Add returns p moved by the delta of d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the 4-directional distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Direction is a 4-directional movement.
type Direction uint8

const (
	// DirNone marks the start of a path, which has no incoming direction.
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// directions lists the four movement directions in neighbour scan order.
var directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the x, y offset of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
