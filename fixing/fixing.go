// Package fixing implements the two pruning stages that tighten the
// bucket graph once a gap estimate is available: heuristic vertex-arc
// fixing (Stage 3) and exact bucket-arc elimination (Stage 4).
package fixing

import (
	"github.com/Salancelot/baldes/arcgen"
	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

// Engine runs fixing passes against one instance's forward/backward
// partitions, pools, and generators.
type Engine struct {
	FwdPartition *bucket.Partition
	BwdPartition *bucket.Partition
	FwdPool      *label.Pool
	BwdPool      *label.Pool
	FwdGen       *arcgen.Generator
	BwdGen       *arcgen.Generator
	Vertices     map[int]*resource.Vertex

	// Gap caches the incumbent - lb value last passed to SetGap;
	// HeuristicArcFixing and BucketArcElimination both read it. Engine.Solve
	// calls SetGap before each round of fixing passes.
	Gap float64
}

// SetGap recomputes and caches the optimality gap used by both fixing
// passes.
func (e *Engine) SetGap(incumbent, lb float64) {
	e.Gap = incumbent - lb
}

// HeuristicArcFixing (Stage 3): for every ordered vertex pair (u, v) with
// a live arc, compare the cheapest forward label ending at u and cheapest
// backward label starting at v against the cached gap; fix the arc when no
// completion through it can beat the gap.
func (e *Engine) HeuristicArcFixing() int {
	fixed := 0
	for uID, u := range e.Vertices {
		for _, arc := range u.Arcs {
			if arc.Fixed || e.FwdGen.FixedArc.IsFixed(uID, arc.To) {
				continue
			}
			v := e.Vertices[arc.To]
			if v == nil {
				continue
			}
			lf, ok1 := cheapestAt(e.FwdPartition, e.FwdPool, uID)
			lb, ok2 := cheapestAt(e.BwdPartition, e.BwdPool, arc.To)
			if !ok1 || !ok2 {
				continue
			}
			total := lf.Cost + arc.Cost + u.ServiceTime + lb.Cost
			if total > e.Gap {
				e.FwdGen.FixedArc.Fix(uID, arc.To)
				e.BwdGen.FixedArc.Fix(uID, arc.To)
				fixed++
			}
		}
	}
	return fixed
}

// BucketArcElimination (Stage 4, exact): for every bucket arc (b_i -> b_j)
// in the forward bucket graph, compute the joint lower bound through it
// and eliminate it when it exceeds the cached gap. Jump arcs are
// regenerated afterward to preserve reachability.
func (e *Engine) BucketArcElimination(fwdCBar, bwdCBar map[int]float64) int {
	eliminated := 0
	for bi, fc := range fwdCBar {
		for _, arc := range e.FwdGen.Out(bi) {
			if arc.Jump {
				continue
			}
			bc, ok := bwdCBar[arc.To]
			if !ok {
				continue
			}
			if fc+arc.Cost+bc > e.Gap {
				e.FwdGen.FixedBucket.Fix(bi, arc.To)
				eliminated++
			}
		}
	}
	if eliminated > 0 {
		for _, vID := range e.FwdPartition.Vertices() {
			e.FwdGen.ObtainJumpBucketArcs(vID)
		}
	}
	return eliminated
}

func cheapestAt(p *bucket.Partition, pool *label.Pool, vertex int) (*label.Label, bool) {
	var best *label.Label
	for _, bID := range p.BucketsOf(vertex) {
		b := p.Bucket(bID)
		for _, li := range b.Labels {
			l := pool.At(li)
			if best == nil || l.Cost < best.Cost {
				best = l
			}
		}
	}
	return best, best != nil
}
