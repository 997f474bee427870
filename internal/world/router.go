package world

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// Route is a corridor path found by the router.
type Route struct {
	Path     []Point // Cells from the start center to the target center, inclusive
	Cost     int     // Accumulated step cost g at the target
	Turns    int     // Direction changes along the path
	Expanded int     // Nodes popped from the open list
}

// Steps returns the number of moves along the route.
func (r Route) Steps() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Router carves corridors between rooms with a cost-shaped A* search.
type Router struct {
	grid             *Grid
	TurnPenalty      int // Added when the path changes direction
	AdjacencyPenalty int // Added for stepping next to a room other than the endpoints
	IterationCap     int // Maximum popped nodes before the search gives up

	onPop func(f int) // Observes popped f values; used by tests
}

// NewRouter creates a router over the grid using the penalties in cfg.
func NewRouter(grid *Grid, cfg Config) *Router {
	return &Router{
		grid:             grid,
		TurnPenalty:      cfg.TurnPenalty,
		AdjacencyPenalty: cfg.AdjacencyPenalty,
		IterationCap:     cfg.EffectiveIterationCap(),
	}
}

// searchNode is an A* open-list entry.
type searchNode struct {
	pos    Point
	dir    Direction // Direction used to reach pos
	g, h   int
	parent int // Index into the node arena, -1 for the start
}

func (n *searchNode) f() int {
	return n.g + n.h
}

// FindPath searches for a corridor between the centers of two rooms.
// It returns false if the open list empties or the iteration cap is exceeded.
func (r *Router) FindPath(from, to Room) (Route, bool) {
	start, goal := from.CenterPoint(), to.CenterPoint()
	if !r.grid.InBounds(start.X, start.Y) || !r.grid.InBounds(goal.X, goal.Y) {
		return Route{}, false
	}

	// Arena of every pushed node; the heap orders indices into it
	nodes := []searchNode{{pos: start, dir: DirNone, h: start.Manhattan(goal), parent: -1}}
	open := heap.New[int](func(a, b int) bool {
		na, nb := &nodes[a], &nodes[b]
		if na.f() != nb.f() {
			return na.f() < nb.f()
		}
		if na.h != nb.h {
			return na.h < nb.h
		}
		return a < b
	})
	open.Push(0)
	closed := mapset.New[Point]()

	expanded := 0
	for open.Size() > 0 {
		expanded++
		if expanded > r.IterationCap {
			return Route{Expanded: expanded}, false
		}

		idx, _ := open.Pop()
		current := nodes[idx]
		if closed.Has(current.pos) {
			continue
		}
		closed.Put(current.pos)
		if r.onPop != nil {
			r.onPop(current.f())
		}

		if current.pos == goal {
			route := r.reconstruct(nodes, idx)
			route.Expanded = expanded
			return route, true
		}

		for _, d := range directions {
			next := current.pos.Add(d)
			if !r.grid.InBounds(next.X, next.Y) || closed.Has(next) {
				continue
			}
			nodes = append(nodes, searchNode{
				pos:    next,
				dir:    d,
				g:      current.g + r.stepCost(current, next, d, from, to),
				h:      next.Manhattan(goal),
				parent: idx,
			})
			open.Push(len(nodes) - 1)
		}
	}

	return Route{Expanded: expanded}, false
}

// stepCost prices the move from current onto next in direction d.
func (r *Router) stepCost(current searchNode, next Point, d Direction, from, to Room) int {
	cost := 1
	if r.grid.IsFloor(next.X, next.Y) {
		cost += floorCost
	}
	if current.dir != DirNone && current.dir != d {
		cost += r.TurnPenalty
	}
	if r.AdjacencyPenalty > 0 && r.touchesForeignFloor(next, from, to) {
		cost += r.AdjacencyPenalty
	}
	return cost
}

// touchesForeignFloor reports whether p is 4-adjacent to a floor cell that
// belongs to neither endpoint room.
func (r *Router) touchesForeignFloor(p Point, from, to Room) bool {
	for _, d := range directions {
		n := p.Add(d)
		if !r.grid.IsFloor(n.X, n.Y) {
			continue
		}
		if from.Contains(n.X, n.Y) || to.Contains(n.X, n.Y) {
			continue
		}
		return true
	}
	return false
}

// reconstruct follows parent links back from the goal node.
func (r *Router) reconstruct(nodes []searchNode, goal int) Route {
	var path []Point
	turns := 0
	for i := goal; i >= 0; i = nodes[i].parent {
		n := nodes[i]
		path = append(path, n.pos)
		if p := n.parent; p >= 0 && nodes[p].dir != DirNone && nodes[p].dir != n.dir {
			turns++
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return Route{Path: path, Cost: nodes[goal].g, Turns: turns}
}

// Carve turns every void cell on the route into corridor and returns the
// number of cells changed. Floor cells are left untouched.
func (r *Router) Carve(route Route) int {
	carved := 0
	for _, p := range route.Path {
		if r.grid.Carve(p.X, p.Y) {
			carved++
		}
	}
	return carved
}
