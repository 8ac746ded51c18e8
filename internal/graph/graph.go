package graph

import (
	"sort"
	"time"
)

// DefaultWindow is the trailing interval, ending at the newest admitted
// edge's timestamp, inside which edges count toward vertex degrees.
const DefaultWindow = 60 * time.Second

// Graph is a transaction graph restricted to a trailing time window. Edges
// are held sorted by creation time; per-vertex degrees and a degree
// histogram are maintained incrementally on every admission and eviction,
// so the median degree is available without rescanning the vertex set.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	window  time.Duration
	edges   []Edge         // sorted by Created, ascending
	degrees map[string]int // vertex -> degree; absent means not in graph
	buckets map[int]int    // degree -> number of vertices at that degree
}

// New returns an empty Graph with the given window duration.
func New(window time.Duration) *Graph {
	return &Graph{
		window:  window,
		degrees: make(map[string]int),
		buckets: make(map[int]int),
	}
}

// NewestTime returns the creation time of the most recent edge in the
// window. ok is false when the graph holds no edges.
func (g *Graph) NewestTime() (t time.Time, ok bool) {
	if len(g.edges) == 0 {
		return time.Time{}, false
	}
	return g.edges[len(g.edges)-1].Created, true
}

// WithinWindow reports whether e is recent enough to enter the window. An
// empty graph admits any edge; otherwise the edge must be strictly newer
// than newest − window. The check is against the graph's newest timestamp,
// never the wall clock, so an edge timestamped earlier than edges already
// held can still be admitted.
func (g *Graph) WithinWindow(e Edge) bool {
	newest, ok := g.NewestTime()
	if !ok {
		return true
	}
	return e.Created.After(newest.Add(-g.window))
}

// AddEdge runs the full admission pipeline. An edge outside the window is
// discarded with no state change. An edge advancing the newest timestamp
// first evicts everything that ages out of the new window. The edge is then
// inserted in timestamp order and both endpoint degrees are updated.
func (g *Graph) AddEdge(e Edge) {
	if !g.WithinWindow(e) {
		return
	}
	if newest, ok := g.NewestTime(); ok && e.Created.After(newest) {
		g.evict(e.Created.Add(-g.window))
	}
	g.insert(e)
	g.addDegrees(e)
}

// evict removes the prefix of edges created at or before threshold,
// unwinding their degree contributions. Only a prefix can qualify because
// the edge slice stays sorted.
func (g *Graph) evict(threshold time.Time) {
	n := 0
	for ; n < len(g.edges); n++ {
		if g.edges[n].Created.After(threshold) {
			break
		}
		g.removeDegrees(g.edges[n])
	}
	if n > 0 {
		g.edges = append(g.edges[:0], g.edges[n:]...)
	}
}

// insert places e so the slice stays sorted by creation time. Equal
// timestamps keep arrival order: the search finds the first strictly newer
// edge, so e lands after its ties.
func (g *Graph) insert(e Edge) {
	i := sort.Search(len(g.edges), func(i int) bool {
		return g.edges[i].Created.After(e.Created)
	})
	g.edges = append(g.edges, Edge{})
	copy(g.edges[i+1:], g.edges[i:])
	g.edges[i] = e
}

// addDegrees applies the add path for both endpoints. A self-loop runs the
// loop body twice on the same vertex, raising its degree by 2.
func (g *Graph) addDegrees(e Edge) {
	for _, v := range e.Vertices() {
		d := g.degrees[v]
		if d > 0 {
			g.dropFromBucket(d)
		}
		g.degrees[v] = d + 1
		g.buckets[d+1]++
	}
}

// removeDegrees unwinds the degree contributions of an evicted edge. A
// vertex reaching degree 0 leaves the ledger entirely; there is no degree-0
// bucket.
func (g *Graph) removeDegrees(e Edge) {
	for _, v := range e.Vertices() {
		d := g.degrees[v]
		g.dropFromBucket(d)
		if d == 1 {
			delete(g.degrees, v)
		} else {
			g.degrees[v] = d - 1
			g.buckets[d-1]++
		}
	}
}

// dropFromBucket decrements a histogram bucket, deleting it at zero so the
// histogram never carries empty entries.
func (g *Graph) dropFromBucket(d int) {
	g.buckets[d]--
	if g.buckets[d] == 0 {
		delete(g.buckets, d)
	}
}

// MedianDegree returns the median of the multiset of vertex degrees in the
// window. ok is false when no vertices are present. The histogram must be
// scanned in ascending degree order and map iteration is unordered, so the
// bucket keys are sorted before the rank scan.
func (g *Graph) MedianDegree() (median float64, ok bool) {
	n := len(g.degrees)
	if n == 0 {
		return 0, false
	}

	keys := make([]int, 0, len(g.buckets))
	for d := range g.buckets {
		keys = append(keys, d)
	}
	sort.Ints(keys)

	if n%2 == 1 {
		return float64(g.degreeAt(keys, (n-1)/2)), true
	}
	lo := g.degreeAt(keys, n/2-1)
	hi := g.degreeAt(keys, n/2)
	return float64(lo+hi) / 2, true
}

// degreeAt returns the degree at 0-indexed rank i in the ascending multiset
// of vertex degrees, located by accumulating bucket counts.
func (g *Graph) degreeAt(sortedDegrees []int, i int) int {
	total := 0
	for _, d := range sortedDegrees {
		total += g.buckets[d]
		if total > i {
			return d
		}
	}
	// Unreachable while the histogram counts every ledger vertex.
	return 0
}

// VertexCount returns the number of vertices with at least one edge in the
// window.
func (g *Graph) VertexCount() int { return len(g.degrees) }

// EdgeCount returns the number of edges currently in the window.
func (g *Graph) EdgeCount() int { return len(g.edges) }
