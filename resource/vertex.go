package resource

// Vertex is a customer, the start depot (ID 0), or the end depot (ID N-1).
type Vertex struct {
	// ID uniquely identifies the vertex within its graph. Convention: 0 is
	// the start depot, N-1 is the end depot.
	ID int

	// Coord holds optional geometric coordinates, used only for debugging
	// and for computing the distance matrix consumed by ng-memory seeding.
	Coord [2]float64

	// Demand is the per-resource consumption of visiting this vertex,
	// independent of the arc used to reach it (e.g. capacity demand).
	Demand Vector

	// LB and UB bound the resource window [lb_r, ub_r] per resource r.
	LB, UB Vector

	// ServiceTime is added to resource 0 (time) when a label visits this
	// vertex, before any outgoing arc's own consumption.
	ServiceTime float64

	// DualCost is the dual-adjusted cost offset for this vertex, set once
	// per pricing iteration via Engine.SetDuals.
	DualCost float64

	// Arcs is the sorted (by target ID) list of outgoing arcs.
	Arcs []Arc

	// NGNeighborhood is the per-vertex ng-memory set: the subset of
	// vertices whose visitation keeps a label "elementarity-relevant" to
	// this vertex under ng-relaxation.
	NGNeighborhood map[int]struct{}
}

// InNG reports whether vertex id is currently in v's ng-memory.
func (v *Vertex) InNG(id int) bool {
	if v.NGNeighborhood == nil {
		return false
	}
	_, ok := v.NGNeighborhood[id]
	return ok
}

// AddToNG augments v's ng-memory with id, returning true if it was newly
// added (used by the ng-memory augmentation procedure).
func (v *Vertex) AddToNG(id int) bool {
	if v.NGNeighborhood == nil {
		v.NGNeighborhood = make(map[int]struct{})
	}
	if _, ok := v.NGNeighborhood[id]; ok {
		return false
	}
	v.NGNeighborhood[id] = struct{}{}
	return true
}

// Arc is a directed edge with an additive resource increment and cost
// increment.
type Arc struct {
	From, To int

	// Consumption is the additive resource increment along this arc.
	Consumption Vector

	// Cost is the travel-cost increment.
	Cost float64

	// Fixed, when true, forbids this arc.
	Fixed bool
}
