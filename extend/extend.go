// Package extend implements the extension engine: given a label and an
// outgoing bucket arc, produce the extended label or report infeasibility.
// Forward and backward directions share this logic except for resource
// accumulation, which branches on Dir: forward adds and clamps up against
// the target's lower bound, backward subtracts and clamps down against its
// upper bound.
package extend

import (
	"github.com/Salancelot/baldes/arcgen"
	"github.com/Salancelot/baldes/cut"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

// Engine extends labels along bucket arcs for one direction.
type Engine struct {
	Dir      label.Direction
	Pool     *label.Pool
	Vertices map[int]*resource.Vertex
	FixedArc arcgen.FixedArcMask
	NGTight  bool
	Cuts     []*cut.Cut
	UseSRC   bool

	// MaxPathSize caps the number of vertices a label may have visited
	// before further extension is refused. Zero means unbounded.
	MaxPathSize int
}

// NewEngine returns an extension engine for dir over vertices.
func NewEngine(dir label.Direction, pool *label.Pool, vertices []*resource.Vertex, fixedArc arcgen.FixedArcMask) *Engine {
	vm := make(map[int]*resource.Vertex, len(vertices))
	for _, v := range vertices {
		vm[v.ID] = v
	}
	return &Engine{Dir: dir, Pool: pool, Vertices: vm, FixedArc: fixedArc}
}

// Extend applies arc to l, returning the new label and true, or (nil,
// false) if the extension is infeasible (elementarity violation, fixed
// arc, or resource-window overflow).
func (e *Engine) Extend(l *label.Label, arc arcgen.BucketArc) (*label.Label, bool) {
	v := arc.ToVertex
	target := e.Vertices[v]
	if target == nil {
		return nil, false
	}

	if l.Visited.Has(v) && (e.NGTight || l.NG.Has(v)) {
		return nil, false
	}
	if e.FixedArc.IsFixed(l.Vertex, v) {
		return nil, false
	}
	if e.MaxPathSize > 0 && l.Visited.PopCount() >= e.MaxPathSize {
		return nil, false
	}

	var r resource.Vector
	var ok bool
	if e.Dir == label.Forward {
		r = l.Resources.Add(arc.Consumption)
		r[0] += target.ServiceTime
		if len(target.Demand) == len(r) {
			for i := range r {
				r[i] += target.Demand[i]
			}
		}
		r = r.ClampUpForward(target.LB)
		ok = !r.ExceedsForward(target.UB)
	} else {
		// Backward labels accumulate the same way forward ones do, but
		// walking from the end depot toward the start: each extension
		// consumes resource out of the remaining budget, so it subtracts
		// where the forward direction adds, mirroring arcgen.liftBackward.
		r = l.Resources.Clone()
		for i := range r {
			r[i] -= arc.Consumption[i]
		}
		r[0] -= target.ServiceTime
		if len(target.Demand) == len(r) {
			for i := range r {
				r[i] -= target.Demand[i]
			}
		}
		r = r.ClampDownBackward(target.UB)
		ok = !r.BelowBackward(target.LB)
	}
	if !ok {
		return nil, false
	}

	deltaCost := arc.Cost - target.DualCost
	src := l.SRC.Clone()
	wraps := l.SRCWraps.Clone()
	if e.UseSRC {
		for k, c := range e.Cuts {
			inc := c.CoefficientInto(v)
			if inc <= 0 {
				continue
			}
			cur := float64(src.Get(k)) + inc
			if cur >= float64(c.Denominator) {
				cur -= float64(c.Denominator)
				deltaCost -= c.Carry()
				wraps.Add(k, 1)
			}
			src.Set(k, uint8(cur))
		}
	}

	child := e.Pool.Get()
	child.Vertex = v
	child.Dir = e.Dir
	child.Pred = l.Index()
	copy(child.Resources, r)
	child.Cost = l.Cost + deltaCost
	child.RealCost = l.RealCost + arc.Cost
	child.SRC = src
	child.SRCWraps = wraps

	child.Visited.Union(l.Visited)
	child.Visited.Set(v)
	for id := range target.NGNeighborhood {
		if l.NG.Has(id) {
			child.NG.Set(id)
		}
	}
	child.NG.Set(v)

	return child, true
}
