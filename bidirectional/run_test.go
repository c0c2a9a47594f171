package bidirectional

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Salancelot/baldes/arcgen"
	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/dominance"
	"github.com/Salancelot/baldes/extend"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
	"github.com/Salancelot/baldes/sccgraph"
)

func TestRunConcurrent_JoinsBothDirections(t *testing.T) {
	vs, p, g, layering := buildChain(t)
	fwdPool := label.NewPool(1, 8, 0)
	fwdEng := extend.NewEngine(label.Forward, fwdPool, vs, make(arcgen.FixedArcMask))
	fwd := NewPass(label.Forward, p, g, layering, fwdEng, fwdPool, dominance.SRCPolicy{})
	fwd.Seed(p.GetBucketNumber(vs[0], resource.Vector{0}), 0, []float64{0})

	vs2 := []*resource.Vertex{
		{ID: 0, LB: resource.Vector{0}, UB: resource.Vector{200}},
		{ID: 1, LB: resource.Vector{0}, UB: resource.Vector{200}},
		{ID: 2, LB: resource.Vector{0}, UB: resource.Vector{200}},
	}
	vs2[0].Arcs = []resource.Arc{{From: 0, To: 1, Consumption: resource.Vector{10}, Cost: 3}}
	vs2[1].Arcs = []resource.Arc{{From: 1, To: 2, Consumption: resource.Vector{10}, Cost: 4}}

	p2 := bucket.NewPartition(label.Backward, vs2, resource.Vector{10})
	g2 := arcgen.NewGenerator(p2, vs2)
	seedID := p2.GetBucketNumber(vs2[2], resource.Vector{200})
	g2.GenerateBucketArcs()
	layering2 := sccgraph.Compute(p2.Len(), g2.Out)

	bwdPool := label.NewPool(1, 8, 0)
	bwdEng := extend.NewEngine(label.Backward, bwdPool, vs2, make(arcgen.FixedArcMask))
	bwd := NewPass(label.Backward, p2, g2, layering2, bwdEng, bwdPool, dominance.SRCPolicy{})
	bwd.Seed(seedID, 2, []float64{200})

	err := RunConcurrent(context.Background(), fwd, bwd)
	require.NoError(t, err)
}
