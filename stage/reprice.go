package stage

import (
	"github.com/Salancelot/baldes/cut"
	"github.com/Salancelot/baldes/label"
)

// RepriceCutDuals updates every live label's c̃ for a dual-only change on
// an unchanged set of active cuts: each label already knows how many
// times it wrapped each cut's counter, so the cost delta is just
// wraps[k] * (old dual - new dual), applied without re-running extension.
// Use Rollback, not this, when the cut set itself changed.
func RepriceCutDuals(pool *label.Pool, cuts []*cut.Cut, newDuals []float64) {
	deltas := make([]float64, len(cuts))
	for k, c := range cuts {
		deltas[k] = newDuals[k] - c.Dual
	}
	for i := 0; i < pool.Len(); i++ {
		l := pool.At(i)
		for k := range cuts {
			w := l.SRCWraps.Get(k)
			if w == 0 {
				continue
			}
			l.Cost -= float64(w) * deltas[k]
		}
	}
	for k, c := range cuts {
		c.SetDual(newDuals[k])
	}
}
