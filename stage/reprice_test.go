package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Salancelot/baldes/cut"
	"github.com/Salancelot/baldes/label"
)

func TestRepriceCutDuals_AdjustsCostByWrapCount(t *testing.T) {
	pool := label.NewPool(1, 8, 0)
	l := pool.Get()
	l.Cost = 10
	l.SRCWraps.Set(0, 2)

	c := cut.New([][]int{{1}}, 1, 2, -3)
	RepriceCutDuals(pool, []*cut.Cut{c}, []float64{-5})

	// delta = newDual - oldDual = -5 - (-3) = -2; cost -= wraps*delta = 10 - 2*(-2) = 14
	assert.Equal(t, 14.0, l.Cost)
	assert.Equal(t, -5.0, c.Dual)
}

func TestRepriceCutDuals_NoWrapsLeavesCostUnchanged(t *testing.T) {
	pool := label.NewPool(1, 8, 0)
	l := pool.Get()
	l.Cost = 7

	c := cut.New([][]int{{1}}, 1, 2, -3)
	RepriceCutDuals(pool, []*cut.Cut{c}, []float64{2})

	assert.Equal(t, 7.0, l.Cost)
}
