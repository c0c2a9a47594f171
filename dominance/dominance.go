// Package dominance implements the comparison that decides whether one
// label makes another redundant, and the componentwise-smaller-buckets
// scan that is the engine's primary pruning mechanism.
package dominance

import (
	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

// SRCPolicy controls how active subset-row cut counters participate in
// dominance. When Active is false, SRC state is ignored entirely (Stage 1
// behavior, or no active cuts). When Active is true, a mismatched counter at cut
// k only blocks dominance if Duals[k] is negative: a negative dual means a
// future wrap of that counter would subtract more cost than the dominating
// label's existing cost advantage can be assumed to cover, so equality is
// required there. A non-negative dual never makes the wrap unsafe to
// ignore, so mismatches at those cuts are allowed through.
type SRCPolicy struct {
	Active bool
	Duals  []float64
}

// Dominates reports whether a dominates b. Both labels must already be
// known to share a vertex; callers (the labeling loop and
// DominatedInCompWiseSmallerBuckets) only ever call this within one bucket
// or one componentwise-smaller bucket of the same vertex.
func Dominates(a, b *label.Label, dir label.Direction, src SRCPolicy) bool {
	if a == b {
		return false
	}
	if a.Vertex != b.Vertex {
		return false
	}
	if a.Cost > b.Cost+resource.Epsilon {
		return false
	}
	if dir == label.Forward {
		if !a.Resources.LessEq(b.Resources) {
			return false
		}
	} else {
		if !b.Resources.LessEq(a.Resources) {
			return false
		}
	}
	if !a.Visited.IsSubsetOf(b.Visited) {
		return false
	}
	if src.Active {
		for k, dual := range src.Duals {
			if a.SRC.Get(k) == b.SRC.Get(k) {
				continue
			}
			if dual < 0 {
				return false
			}
		}
	}
	return true
}

// BucketSource supplies the buckets a vertex owns, in the lexicographic
// coordinate order bucket.Partition maintains, so DominatedInCompWiseSmallerBuckets
// can scan only buckets that could possibly contain a dominating label.
type BucketSource interface {
	BucketsOf(vertex int) []int
	Bucket(id int) *bucket.Bucket
}

// Pool resolves a bucket's stored label arena indices into labels.
type Pool interface {
	At(i int) *label.Label
}

// DominatedInCompWiseSmallerBuckets reports whether candidate, destined for
// bucket target, is dominated by any label already settled in a bucket of
// the same vertex whose interval coordinates are componentwise <= target's.
// This is the engine's key pruning: most candidates are rejected here
// before ever being inserted into target.
func DominatedInCompWiseSmallerBuckets(bs BucketSource, pool Pool, candidate *label.Label, target *bucket.Bucket, dir label.Direction, src SRCPolicy) bool {
	for _, id := range bs.BucketsOf(target.Vertex) {
		b := bs.Bucket(id)
		if b.ID == target.ID {
			continue
		}
		if !bucket.ComponentwiseLessEq(b, target) {
			continue
		}
		for _, li := range b.Labels {
			if Dominates(pool.At(li), candidate, dir, src) {
				return true
			}
		}
	}
	return false
}
