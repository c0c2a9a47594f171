// Package cut holds the opaque view the labeling engine needs of a
// separated Limited-Memory Rank-1 (LMR1) subset-row cut: just enough to
// update a label's per-cut counter on extension and to know when a wrap
// must adjust reduced cost. Cut generation itself lives outside this
// module, with the master LP.
package cut

// Cut is one LMR1/SRC cut: an ordered list of vertex subsets, a rational
// multiplier applied per subset membership, a counter denominator, and the
// cut's current dual value.
type Cut struct {
	Subsets     [][]int
	Multiplier  float64
	Denominator uint8
	Dual        float64

	membership map[int]bool
}

// New returns a cut over subsets with the given multiplier, denominator,
// and dual.
func New(subsets [][]int, multiplier float64, denominator uint8, dual float64) *Cut {
	c := &Cut{
		Subsets:     subsets,
		Multiplier:  multiplier,
		Denominator: denominator,
		Dual:        dual,
		membership:  make(map[int]bool),
	}
	for _, s := range subsets {
		for _, v := range s {
			c.membership[v] = true
		}
	}
	return c
}

// SetDual updates the cut's dual in place, used by Engine.SetCutDuals when
// the active cut set is unchanged and only duals moved.
func (c *Cut) SetDual(dual float64) { c.Dual = dual }

// CoefficientInto returns the nonnegative fractional counter increment a
// label picks up by extending into vertex v, zero if v is not in any
// subset this cut covers.
func (c *Cut) CoefficientInto(v int) float64 {
	if c.membership[v] {
		return c.Multiplier
	}
	return 0
}

// Carry returns the reduced-cost adjustment applied when a label's counter
// for this cut wraps past its denominator.
func (c *Cut) Carry() float64 {
	return c.Dual
}
