package arcgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

func buildLine() (v0, v1, v2 *resource.Vertex) {
	v0 = &resource.Vertex{ID: 0, LB: resource.Vector{0}, UB: resource.Vector{100}}
	v1 = &resource.Vertex{ID: 1, LB: resource.Vector{0}, UB: resource.Vector{100}}
	v2 = &resource.Vertex{ID: 2, LB: resource.Vector{0}, UB: resource.Vector{100}}
	v0.Arcs = []resource.Arc{{From: 0, To: 1, Consumption: resource.Vector{10}, Cost: 5}}
	v1.Arcs = []resource.Arc{{From: 1, To: 2, Consumption: resource.Vector{10}, Cost: 7}}
	return
}

func TestGenerator_GenerateBucketArcs(t *testing.T) {
	v0, v1, v2 := buildLine()
	p := bucket.NewPartition(label.Forward, []*resource.Vertex{v0, v1, v2}, resource.Vector{10})
	p.GetBucketNumber(v0, resource.Vector{0})

	g := NewGenerator(p, []*resource.Vertex{v0, v1, v2})
	g.GenerateBucketArcs()

	out := g.Out(0)
	require.Len(t, out, 1)
	assert.Equal(t, 5.0, out[0].Cost)
}

func TestGenerator_FixedArcSkipped(t *testing.T) {
	v0, v1, v2 := buildLine()
	p := bucket.NewPartition(label.Forward, []*resource.Vertex{v0, v1, v2}, resource.Vector{10})
	p.GetBucketNumber(v0, resource.Vector{0})

	g := NewGenerator(p, []*resource.Vertex{v0, v1, v2})
	g.FixedArc.Fix(0, 1)
	g.GenerateBucketArcs()

	assert.Empty(t, g.Out(0))
}

func TestGenerator_FixedBucketArcSkipped(t *testing.T) {
	v0, v1, v2 := buildLine()
	p := bucket.NewPartition(label.Forward, []*resource.Vertex{v0, v1, v2}, resource.Vector{10})
	b0 := p.GetBucketNumber(v0, resource.Vector{0})
	b1 := p.GetBucketNumber(v1, resource.Vector{10})

	g := NewGenerator(p, []*resource.Vertex{v0, v1, v2})
	g.FixedBucket.Fix(b0, b1)
	g.GenerateBucketArcs()

	assert.Empty(t, g.Out(b0))
}

func TestGenerator_ObtainJumpBucketArcs(t *testing.T) {
	v := &resource.Vertex{ID: 5, LB: resource.Vector{0}, UB: resource.Vector{100}}
	p := bucket.NewPartition(label.Forward, []*resource.Vertex{v}, resource.Vector{10})
	b0 := p.GetBucketNumber(v, resource.Vector{0})
	b1 := p.GetBucketNumber(v, resource.Vector{10})
	_ = b1

	g := NewGenerator(p, []*resource.Vertex{v})
	g.ObtainJumpBucketArcs(v.ID)

	out := g.Out(b0)
	require.Len(t, out, 1)
	assert.True(t, out[0].Jump)
}
