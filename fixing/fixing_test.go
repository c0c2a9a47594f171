package fixing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Salancelot/baldes/arcgen"
	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

func setupEngine(t *testing.T) (*Engine, *resource.Vertex, *resource.Vertex) {
	t.Helper()
	u := &resource.Vertex{ID: 0, LB: resource.Vector{0}, UB: resource.Vector{200}}
	v := &resource.Vertex{ID: 1, LB: resource.Vector{0}, UB: resource.Vector{200}}
	u.Arcs = []resource.Arc{{From: 0, To: 1, Consumption: resource.Vector{5}, Cost: 10}}

	fwdP := bucket.NewPartition(label.Forward, []*resource.Vertex{u, v}, resource.Vector{10})
	bwdP := bucket.NewPartition(label.Backward, []*resource.Vertex{u, v}, resource.Vector{10})
	fwdPool := label.NewPool(1, 8, 0)
	bwdPool := label.NewPool(1, 8, 0)
	fwdGen := arcgen.NewGenerator(fwdP, []*resource.Vertex{u, v})
	bwdGen := arcgen.NewGenerator(bwdP, []*resource.Vertex{u, v})

	lf := fwdPool.Get()
	lf.Vertex = 0
	lf.Cost = 1
	fwdID := fwdP.GetBucketNumber(u, resource.Vector{0})
	fwdP.Bucket(fwdID).Labels = append(fwdP.Bucket(fwdID).Labels, lf.Index())

	lb := bwdPool.Get()
	lb.Vertex = 1
	lb.Cost = 1
	bwdID := bwdP.GetBucketNumber(v, resource.Vector{100})
	bwdP.Bucket(bwdID).Labels = append(bwdP.Bucket(bwdID).Labels, lb.Index())

	e := &Engine{
		FwdPartition: fwdP,
		BwdPartition: bwdP,
		FwdPool:      fwdPool,
		BwdPool:      bwdPool,
		FwdGen:       fwdGen,
		BwdGen:       bwdGen,
		Vertices:     map[int]*resource.Vertex{0: u, 1: v},
	}
	return e, u, v
}

func TestHeuristicArcFixing_FixesWhenOverGap(t *testing.T) {
	e, _, _ := setupEngine(t)
	e.SetGap(5, 10) // gap = -5, total = 1+10+0+1 = 12 > -5
	fixed := e.HeuristicArcFixing()
	assert.Equal(t, 1, fixed)
	assert.True(t, e.FwdGen.FixedArc.IsFixed(0, 1))
}

func TestHeuristicArcFixing_SkipsWhenWithinGap(t *testing.T) {
	e, _, _ := setupEngine(t)
	e.SetGap(100, 0) // gap = 100, total = 12 <= 100
	fixed := e.HeuristicArcFixing()
	assert.Equal(t, 0, fixed)
	assert.False(t, e.FwdGen.FixedArc.IsFixed(0, 1))
}

func TestBucketArcElimination_EliminatesOverGapArcs(t *testing.T) {
	e, u, v := setupEngine(t)
	e.FwdGen.GenerateBucketArcs()
	bi := e.FwdPartition.GetBucketNumber(u, resource.Vector{0})
	out := e.FwdGen.Out(bi)
	if len(out) == 0 {
		t.Skip("no bucket arc generated for this fixture")
	}
	bj := out[0].To
	_ = v

	e.SetGap(0, 100) // gap = -100, forces elimination
	fwdCBar := map[int]float64{bi: 0}
	bwdCBar := map[int]float64{bj: 0}
	eliminated := e.BucketArcElimination(fwdCBar, bwdCBar)
	assert.Equal(t, 1, eliminated)
	assert.True(t, e.FwdGen.FixedBucket.IsFixed(bi, bj))
}
