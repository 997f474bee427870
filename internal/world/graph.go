package world

import (
	"math"
	"math/rand"
	"sort"
)

// loopEdgeDivisor sets how many extra non-tree edges are added: one per this
// many rooms.
const loopEdgeDivisor = 4

// Edge connects two rooms by id.
type Edge struct {
	A, B     int     // Room ids
	Distance float64 // Euclidean center-to-center distance
}

// Graph is the ordered list of room connections to carve.
// The first TreeEdges entries form a minimum spanning tree; the rest are loops.
type Graph struct {
	Edges     []Edge
	TreeEdges int
}

// Tree returns the spanning tree portion of the graph.
func (g Graph) Tree() []Edge {
	return g.Edges[:g.TreeEdges]
}

// Loops returns the extra edges appended after the spanning tree.
func (g Graph) Loops() []Edge {
	return g.Edges[g.TreeEdges:]
}

// DisjointSet is an array-based union-find with path compression and union by rank.
type DisjointSet struct {
	parent []int
	rank   []int
}

// NewDisjointSet creates n singleton sets numbered 0..n-1.
func NewDisjointSet(n int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

// Find returns the representative of the set containing u.
func (ds *DisjointSet) Find(u int) int {
	for ds.parent[u] != u {
		// Path halving: point u at its grandparent
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}
	return u
}

// Union merges the sets containing u and v. It returns false if they were
// already in the same set.
func (ds *DisjointSet) Union(u, v int) bool {
	rootU, rootV := ds.Find(u), ds.Find(v)
	if rootU == rootV {
		return false
	}
	switch {
	case ds.rank[rootU] < ds.rank[rootV]:
		ds.parent[rootU] = rootV
	case ds.rank[rootU] > ds.rank[rootV]:
		ds.parent[rootV] = rootU
	default:
		ds.parent[rootV] = rootU
		ds.rank[rootU]++
	}
	return true
}

// Connect builds the connection graph for the rooms: a minimum spanning tree
// over center distances (Kruskal) followed by up to len(rooms)/4 shuffled
// non-tree edges so the level is not all dead ends.
func Connect(rooms []Room, rng *rand.Rand) Graph {
	n := len(rooms)
	if n < 2 {
		return Graph{Edges: []Edge{}}
	}

	type candidate struct {
		edge Edge
		i, j int // Indices into rooms
	}
	candidates := make([]candidate, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		ax, ay := rooms[i].Center()
		for j := i + 1; j < n; j++ {
			bx, by := rooms[j].Center()
			candidates = append(candidates, candidate{
				edge: Edge{
					A:        rooms[i].ID,
					B:        rooms[j].ID,
					Distance: math.Hypot(float64(ax-bx), float64(ay-by)),
				},
				i: i,
				j: j,
			})
		}
	}

	// Stable sort keeps ties in input order
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].edge.Distance < candidates[b].edge.Distance
	})

	ds := NewDisjointSet(n)
	tree := make([]Edge, 0, n-1)
	rejected := make([]Edge, 0, len(candidates)-(n-1))
	for _, c := range candidates {
		if ds.Union(c.i, c.j) {
			tree = append(tree, c.edge)
		} else {
			rejected = append(rejected, c.edge)
		}
	}

	rng.Shuffle(len(rejected), func(a, b int) {
		rejected[a], rejected[b] = rejected[b], rejected[a]
	})
	loops := min(n/loopEdgeDivisor, len(rejected))

	edges := make([]Edge, 0, len(tree)+loops)
	edges = append(edges, tree...)
	edges = append(edges, rejected[:loops]...)
	return Graph{Edges: edges, TreeEdges: len(tree)}
}
