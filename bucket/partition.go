// Package bucket partitions the resource space into discrete cells
// ("buckets") per vertex, one partition per direction. It owns the
// vertex/interval-coordinate addressing scheme that every other package
// (arcgen, sccgraph, extend, bidirectional) uses to name a bucket.
package bucket

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

// Bucket is a cell of the R-dimensional resource box at a fixed vertex,
// holding the arena indices of the non-dominated labels currently stored
// there and the running lower bound c̄ on the reduced cost of any
// completion passing through it.
type Bucket struct {
	ID     int
	Vertex int
	Coords []int

	Labels []int
	CBar   float64
}

// Partition holds every bucket for one direction (forward or backward)
// across the whole vertex set, addressed by (vertex id, interval coords).
type Partition struct {
	Dir  label.Direction
	Step resource.Vector

	vertices map[int]*resource.Vertex
	buckets  []Bucket
	index    map[string]int

	// byVertex holds, per vertex, the ids of its buckets sorted
	// lexicographically by interval coords, for DominatedInCompWiseSmallerBuckets.
	byVertex map[int][]int
}

// NewPartition builds an empty partition over vertices with interval width
// step. If step has fewer entries than a vertex's resource dimension, the
// tail resources reuse step's first entry.
func NewPartition(dir label.Direction, vertices []*resource.Vertex, step resource.Vector) *Partition {
	vm := make(map[int]*resource.Vertex, len(vertices))
	for _, v := range vertices {
		vm[v.ID] = v
	}
	return &Partition{
		Dir:      dir,
		Step:     step,
		vertices: vm,
		index:    make(map[string]int),
		byVertex: make(map[int][]int),
	}
}

func (p *Partition) stepFor(i int) float64 {
	if i < len(p.Step) {
		return p.Step[i]
	}
	if len(p.Step) == 0 {
		return 1
	}
	return p.Step[0]
}

// coords maps a resource vector at vertex v to its interval coordinates.
// Forward partitions index from the vertex's lower bound; backward
// partitions index from the vertex's upper bound, so both directions grow
// coordinates away from their respective seed corner.
func (p *Partition) coords(v *resource.Vertex, r resource.Vector) []int {
	out := make([]int, len(r))
	for i := range r {
		step := p.stepFor(i)
		var base float64
		if p.Dir == label.Forward {
			base = v.LB[i]
			out[i] = int((r[i] - base) / step)
		} else {
			base = v.UB[i]
			out[i] = int((base - r[i]) / step)
		}
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}

func key(vertex int, coords []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", vertex)
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", c)
	}
	return b.String()
}

// GetBucketNumber maps a resource vector at vertex v to its bucket id,
// creating the bucket on first reference.
func (p *Partition) GetBucketNumber(v *resource.Vertex, r resource.Vector) int {
	c := p.coords(v, r)
	k := key(v.ID, c)
	if id, ok := p.index[k]; ok {
		return id
	}
	id := len(p.buckets)
	p.buckets = append(p.buckets, Bucket{ID: id, Vertex: v.ID, Coords: c})
	p.index[k] = id
	p.byVertex[v.ID] = insertSorted(p.byVertex[v.ID], id, p.buckets)
	return id
}

func insertSorted(ids []int, newID int, buckets []Bucket) []int {
	ids = append(ids, newID)
	sort.Slice(ids, func(i, j int) bool {
		return lexLess(buckets[ids[i]].Coords, buckets[ids[j]].Coords)
	})
	return ids
}

func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Bucket returns the bucket stored at id.
func (p *Partition) Bucket(id int) *Bucket {
	return &p.buckets[id]
}

// BucketsOf returns, in lexicographic coordinate order, the ids of every
// bucket belonging to vertex.
func (p *Partition) BucketsOf(vertex int) []int {
	return p.byVertex[vertex]
}

// Len reports how many buckets currently exist in the partition.
func (p *Partition) Len() int { return len(p.buckets) }

// Vertices returns the ids of every vertex that currently owns at least
// one bucket.
func (p *Partition) Vertices() []int {
	out := make([]int, 0, len(p.byVertex))
	for v := range p.byVertex {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// ComponentwiseLessEq reports whether a's interval coordinates are
// componentwise <= b's, the ordering DominatedInCompWiseSmallerBuckets
// scans by.
func ComponentwiseLessEq(a, b *Bucket) bool {
	for i := range a.Coords {
		if a.Coords[i] > b.Coords[i] {
			return false
		}
	}
	return true
}

// Reflect maps a bucket in p to its opposite-direction counterpart in
// other, by reflecting the bucket's lower-corner resource estimate across
// qStar: r' = 2*qStar - r. This is the opposite-direction midpoint lookup;
// bidirectional.Concatenator does not call it and pairs labels across
// direct vertex arcs instead.
func (p *Partition) Reflect(bucketID int, qStar resource.Vector, other *Partition) int {
	b := p.buckets[bucketID]
	v := p.vertices[b.Vertex]
	r := p.corner(&b)
	reflected := make(resource.Vector, len(r))
	for i := range r {
		reflected[i] = 2*qStar[i] - r[i]
	}
	reflected = reflected.ClampUpForward(v.LB).ClampDownBackward(v.UB)
	return other.GetBucketNumber(v, reflected)
}

// ResourceAt returns the resource vector of bucket b's seed corner: its
// lower bound in a forward partition, its upper bound in a backward one.
// Arc generation uses this as the representative resource state to extend
// from when lifting a vertex arc into a bucket arc.
func (p *Partition) ResourceAt(b *Bucket) resource.Vector {
	return p.corner(b)
}

func (p *Partition) corner(b *Bucket) resource.Vector {
	v := p.vertices[b.Vertex]
	out := make(resource.Vector, len(b.Coords))
	for i, c := range b.Coords {
		step := p.stepFor(i)
		if p.Dir == label.Forward {
			out[i] = v.LB[i] + float64(c)*step
		} else {
			out[i] = v.UB[i] - float64(c)*step
		}
	}
	return out
}
