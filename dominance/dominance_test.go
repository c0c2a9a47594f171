package dominance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

func mkLabel(pool *label.Pool, vertex int, cost float64, r []float64) *label.Label {
	l := pool.Get()
	l.Vertex = vertex
	l.Cost = cost
	copy(l.Resources, r)
	return l
}

func TestDominates_CheaperAndLighterWins(t *testing.T) {
	pool := label.NewPool(2, 8, 0)
	a := mkLabel(pool, 1, 10, []float64{5, 1})
	b := mkLabel(pool, 1, 20, []float64{8, 2})

	assert.True(t, Dominates(a, b, label.Forward, SRCPolicy{}))
	assert.False(t, Dominates(b, a, label.Forward, SRCPolicy{}))
}

func TestDominates_DifferentVertexNeverDominates(t *testing.T) {
	pool := label.NewPool(2, 8, 0)
	a := mkLabel(pool, 1, 10, []float64{5, 1})
	b := mkLabel(pool, 2, 20, []float64{8, 2})
	assert.False(t, Dominates(a, b, label.Forward, SRCPolicy{}))
}

func TestDominates_BackwardReversesResourceComparison(t *testing.T) {
	pool := label.NewPool(1, 8, 0)
	a := mkLabel(pool, 1, 10, []float64{50})
	b := mkLabel(pool, 1, 10, []float64{20})
	// backward: a dominates b only if a.Resources >= b.Resources
	assert.True(t, Dominates(a, b, label.Backward, SRCPolicy{}))
	assert.False(t, Dominates(b, a, label.Backward, SRCPolicy{}))
}

func TestDominates_VisitBitmapSubset(t *testing.T) {
	pool := label.NewPool(1, 8, 0)
	a := mkLabel(pool, 1, 0, []float64{0})
	b := mkLabel(pool, 1, 0, []float64{0})
	a.Visited.Set(3)
	b.Visited.Set(3)
	b.Visited.Set(4)

	assert.True(t, Dominates(a, b, label.Forward, SRCPolicy{}))
	assert.False(t, Dominates(b, a, label.Forward, SRCPolicy{}))
}

func TestDominates_SRCMismatchBlocksOnlyWithNegativeDual(t *testing.T) {
	pool := label.NewPool(1, 8, 0)
	a := mkLabel(pool, 1, 0, []float64{0})
	b := mkLabel(pool, 1, 0, []float64{0})
	a.SRC.Set(0, 1)
	b.SRC.Set(0, 0)

	assert.False(t, Dominates(a, b, label.Forward, SRCPolicy{Active: true, Duals: []float64{-0.5}}))
	assert.True(t, Dominates(a, b, label.Forward, SRCPolicy{Active: true, Duals: []float64{0.5}}))
}

type fakePool struct {
	labels []*label.Label
}

func (p *fakePool) At(i int) *label.Label { return p.labels[i] }

func TestDominatedInCompWiseSmallerBuckets(t *testing.T) {
	v := &resource.Vertex{ID: 7, LB: resource.Vector{0, 0}, UB: resource.Vector{100, 20}}
	p := bucket.NewPartition(label.Forward, []*resource.Vertex{v}, resource.Vector{10, 5})

	smallID := p.GetBucketNumber(v, resource.Vector{5, 1})
	targetID := p.GetBucketNumber(v, resource.Vector{25, 3})
	require.NotEqual(t, smallID, targetID)

	arena := label.NewPool(2, 8, 0)
	cheap := arena.Get()
	cheap.Vertex = v.ID
	cheap.Cost = 1
	cheap.Resources[0], cheap.Resources[1] = 5, 1

	small := p.Bucket(smallID)
	small.Labels = append(small.Labels, cheap.Index())

	pool := &fakePool{labels: []*label.Label{cheap}}

	candidate := arena.Get()
	candidate.Vertex = v.ID
	candidate.Cost = 10
	candidate.Resources[0], candidate.Resources[1] = 25, 3
	pool.labels = append(pool.labels, candidate)

	target := p.Bucket(targetID)
	assert.True(t, DominatedInCompWiseSmallerBuckets(p, pool, candidate, target, label.Forward, SRCPolicy{}))
}
