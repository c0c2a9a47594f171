package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

func testVertex(id int) *resource.Vertex {
	return &resource.Vertex{
		ID: id,
		LB: resource.Vector{0, 0},
		UB: resource.Vector{100, 20},
	}
}

func TestPartition_GetBucketNumber_StableAndDeterministic(t *testing.T) {
	v := testVertex(1)
	p := NewPartition(label.Forward, []*resource.Vertex{v}, resource.Vector{10, 5})

	a := p.GetBucketNumber(v, resource.Vector{12, 3})
	b := p.GetBucketNumber(v, resource.Vector{15, 4})
	c := p.GetBucketNumber(v, resource.Vector{25, 3})

	assert.Equal(t, a, b, "both resource vectors fall in the same interval cell")
	assert.NotEqual(t, a, c)
}

func TestPartition_ForwardAndBackwardIndexFromOppositeCorners(t *testing.T) {
	v := testVertex(1)
	fwd := NewPartition(label.Forward, []*resource.Vertex{v}, resource.Vector{10, 5})
	bwd := NewPartition(label.Backward, []*resource.Vertex{v}, resource.Vector{10, 5})

	fID := fwd.GetBucketNumber(v, resource.Vector{5, 1})
	bID := bwd.GetBucketNumber(v, resource.Vector{5, 1})

	fb := fwd.Bucket(fID)
	bb := bwd.Bucket(bID)
	assert.Equal(t, 0, fb.Coords[0], "forward indexes from LB, so near-LB resources land in bucket 0")
	assert.Greater(t, bb.Coords[0], 0, "backward indexes from UB, so near-LB resources land far from bucket 0")
}

func TestPartition_BucketsOfSortedLexicographically(t *testing.T) {
	v := testVertex(2)
	p := NewPartition(label.Forward, []*resource.Vertex{v}, resource.Vector{10, 5})

	p.GetBucketNumber(v, resource.Vector{25, 1})
	p.GetBucketNumber(v, resource.Vector{5, 1})
	p.GetBucketNumber(v, resource.Vector{15, 1})

	ids := p.BucketsOf(v.ID)
	require.Len(t, ids, 3)
	for i := 1; i < len(ids); i++ {
		assert.True(t, lexLess(p.Bucket(ids[i-1]).Coords, p.Bucket(ids[i]).Coords) ||
			p.Bucket(ids[i-1]).Coords[0] == p.Bucket(ids[i]).Coords[0])
	}
}

func TestComponentwiseLessEq(t *testing.T) {
	a := &Bucket{Coords: []int{1, 2}}
	b := &Bucket{Coords: []int{2, 2}}
	assert.True(t, ComponentwiseLessEq(a, b))
	assert.False(t, ComponentwiseLessEq(b, a))
}

func TestPartition_Reflect_RoundTripsNearMidpoint(t *testing.T) {
	v := testVertex(3)
	fwd := NewPartition(label.Forward, []*resource.Vertex{v}, resource.Vector{10, 5})
	bwd := NewPartition(label.Backward, []*resource.Vertex{v}, resource.Vector{10, 5})

	qStar := resource.Vector{50, 10}
	fID := fwd.GetBucketNumber(v, resource.Vector{40, 8})

	bID := fwd.Reflect(fID, qStar, bwd)
	assert.GreaterOrEqual(t, bID, 0)
	assert.Less(t, bID, bwd.Len())
}
