// Package arcgen lifts vertex-to-vertex arcs into bucket-to-bucket arcs
// over a bucket.Partition, and synthesizes jump arcs that preserve
// reachability once fixing has eliminated some bucket arcs.
package arcgen

import (
	"sort"

	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

// BucketArc is a directed edge between two buckets, carrying the
// underlying vertex arc's cost and resource increment so the extension
// engine never has to re-resolve which vertex arc produced it.
type BucketArc struct {
	From, To     int
	ToVertex     int
	Consumption  resource.Vector
	Cost         float64
	Jump         bool
}

// FixedArcMask records vertex-to-vertex arcs forbidden by the stage
// controller (F[u][v] = 1).
type FixedArcMask map[[2]int]bool

// FixedBucketMask records bucket-to-bucket arcs eliminated by Stage-4
// exact bucket-arc elimination (F_b[b_i][b_j] = 1).
type FixedBucketMask map[[2]int]bool

// Fix marks the vertex arc (u, v) as forbidden.
func (m FixedArcMask) Fix(u, v int) { m[[2]int{u, v}] = true }

// IsFixed reports whether the vertex arc (u, v) is forbidden.
func (m FixedArcMask) IsFixed(u, v int) bool { return m[[2]int{u, v}] }

// Fix marks the bucket arc (bi, bj) as eliminated.
func (m FixedBucketMask) Fix(bi, bj int) { m[[2]int{bi, bj}] = true }

// IsFixed reports whether the bucket arc (bi, bj) is eliminated.
func (m FixedBucketMask) IsFixed(bi, bj int) bool { return m[[2]int{bi, bj}] }

// Generator builds and holds the bucket arc adjacency for one direction's
// partition.
type Generator struct {
	Partition   *bucket.Partition
	vertices    map[int]*resource.Vertex
	FixedArc    FixedArcMask
	FixedBucket FixedBucketMask

	adj map[int][]BucketArc
}

// NewGenerator returns a generator over p, using vertices for arc lookup.
func NewGenerator(p *bucket.Partition, vertices []*resource.Vertex) *Generator {
	vm := make(map[int]*resource.Vertex, len(vertices))
	for _, v := range vertices {
		vm[v.ID] = v
	}
	return &Generator{
		Partition:   p,
		vertices:    vm,
		FixedArc:    make(FixedArcMask),
		FixedBucket: make(FixedBucketMask),
		adj:         make(map[int][]BucketArc),
	}
}

// GenerateBucketArcs lifts every non-fixed vertex arc (u -> v) into bucket
// arcs. In a forward partition this lifts b(u) -> b(v), combining
// resources forward (addition, clamp up, reject on upper-bound overflow).
// In a backward partition the same vertex arc is walked in reverse,
// lifting b(v) -> b(u): backward labels grow from the end depot toward u,
// so their resources are decremented by the arc's consumption, clamped
// down, and rejected on lower-bound underflow. Vertices are visited in
// ascending id order and each lift starts from the buckets that exist at
// that moment, so a bucket created by a later lift gets no outgoing arcs
// of its own.
func (g *Generator) GenerateBucketArcs() {
	ids := make([]int, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		from := g.vertices[id]
		for _, arc := range from.Arcs {
			if arc.Fixed || g.FixedArc.IsFixed(arc.From, arc.To) {
				continue
			}
			to := g.vertices[arc.To]
			if to == nil {
				continue
			}
			if g.Partition.Dir == label.Forward {
				g.liftForward(from, to, arc)
			} else {
				g.liftBackward(from, to, arc)
			}
		}
	}
}

func (g *Generator) liftForward(u, v *resource.Vertex, arc resource.Arc) {
	for _, bi := range g.Partition.BucketsOf(u.ID) {
		src := g.Partition.Bucket(bi)
		r := g.Partition.ResourceAt(src).Add(arc.Consumption)
		r[0] += v.ServiceTime
		if r.ExceedsForward(v.UB) {
			continue
		}
		r = r.ClampUpForward(v.LB)
		bj := g.Partition.GetBucketNumber(v, r)
		if g.FixedBucket.IsFixed(bi, bj) {
			continue
		}
		g.addArc(bi, BucketArc{
			From:        bi,
			To:          bj,
			ToVertex:    v.ID,
			Consumption: arc.Consumption,
			Cost:        arc.Cost,
		})
	}
}

func (g *Generator) liftBackward(u, v *resource.Vertex, arc resource.Arc) {
	for _, bj := range g.Partition.BucketsOf(v.ID) {
		dst := g.Partition.Bucket(bj)
		r := g.Partition.ResourceAt(dst).Clone()
		for i := range r {
			r[i] -= arc.Consumption[i]
		}
		r[0] -= u.ServiceTime
		if r.BelowBackward(u.LB) {
			continue
		}
		r = r.ClampDownBackward(u.UB)
		bi := g.Partition.GetBucketNumber(u, r)
		if g.FixedBucket.IsFixed(bj, bi) {
			continue
		}
		g.addArc(bj, BucketArc{
			From:        bj,
			To:          bi,
			ToVertex:    u.ID,
			Consumption: arc.Consumption,
			Cost:        arc.Cost,
		})
	}
}

func (g *Generator) addArc(from int, a BucketArc) {
	g.adj[from] = append(g.adj[from], a)
}

// Out returns the bucket arcs (including jump arcs once generated)
// leaving bucket id, in a stable order.
func (g *Generator) Out(id int) []BucketArc {
	return g.adj[id]
}

// ObtainJumpBucketArcs restores reachability lost to elimination: for
// every bucket b_i of vertex that has no outgoing arc left un-eliminated,
// it adds one zero-cost jump arc b_i -> b_j to the first later bucket b_j
// of the same vertex (lexicographic coordinate order) whose arc from b_i
// is not eliminated. No resource-feasibility check is made for b_j.
func (g *Generator) ObtainJumpBucketArcs(vertex int) {
	// BucketsOf already returns ids in lexicographic interval-coordinate
	// order; copy before any reordering so the partition's own slice (and
	// everything else that relies on that order, e.g.
	// DominatedInCompWiseSmallerBuckets) is never mutated in place.
	ids := append([]int(nil), g.Partition.BucketsOf(vertex)...)
	for i, bi := range ids {
		if g.hasLiveArc(bi) {
			continue
		}
		for _, bj := range ids[i+1:] {
			if g.FixedBucket.IsFixed(bi, bj) {
				continue
			}
			g.addArc(bi, BucketArc{From: bi, To: bj, ToVertex: vertex, Jump: true})
			break
		}
	}
}

func (g *Generator) hasLiveArc(bi int) bool {
	for _, a := range g.adj[bi] {
		if !g.FixedBucket.IsFixed(a.From, a.To) {
			return true
		}
	}
	return false
}
