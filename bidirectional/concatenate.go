package bidirectional

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
)

// Column is a recovered path with negative reduced cost, ready to be
// handed back to the master LP.
type Column struct {
	Path        []int
	ReducedCost float64
	RealCost    float64
}

// Concatenator stitches surviving forward labels to surviving backward
// labels across a feasible bridging arc, keeping the best-k candidates by
// reduced cost.
type Concatenator struct {
	FwdPartition *bucket.Partition
	BwdPartition *bucket.Partition
	FwdPool      *label.Pool
	BwdPool      *label.Pool
	Vertices     map[int]*resource.Vertex

	// NGCore is the bitmap of vertices (typically only the depot) that a
	// forward and backward label are allowed to share without violating
	// elementarity.
	NGCore label.Bitmap

	MaxColumns int
}

// Feasible checks whether a forward label lf and backward label lb
// bridged by the vertex arc lf.Vertex -> lb.Vertex with the given
// consumption and service duration at lf.Vertex.
func Feasible(lf, lb *label.Label, consumption resource.Vector, duration float64, ngCore label.Bitmap) bool {
	if lf.Resources[0]+consumption[0]+duration > lb.Resources[0]+resource.Epsilon {
		return false
	}
	for r := 1; r < len(consumption); r++ {
		if lf.Resources[r]+consumption[r] > lb.Resources[r]+resource.Epsilon {
			return false
		}
	}
	shared := lf.Visited.Intersect(lb.Visited)
	return shared.IsSubsetOf(ngCore)
}

// Concatenate scans every forward label against every reachable backward
// label, keeping the MaxColumns cheapest feasible, deduplicated-by-path
// candidates, ordered ascending by reduced cost.
func (c *Concatenator) Concatenate() []Column {
	var found []Column
	seen := make(map[string]bool)

	for _, u := range c.FwdPartition.Vertices() {
		uv := c.Vertices[u]
		if uv == nil {
			continue
		}
		for _, arc := range uv.Arcs {
			if arc.Fixed {
				continue
			}
			fwdLabels := labelsAt(c.FwdPartition, c.FwdPool, u)
			bwdLabels := labelsAt(c.BwdPartition, c.BwdPool, arc.To)
			if len(fwdLabels) == 0 || len(bwdLabels) == 0 {
				continue
			}
			for _, lf := range fwdLabels {
				for _, lb := range bwdLabels {
					if !Feasible(lf, lb, arc.Consumption, uv.ServiceTime, c.NGCore) {
						continue
					}
					rc := lf.Cost + arc.Cost + lb.Cost
					if rc >= -resource.Epsilon {
						continue
					}
					path := reconstruct(c.FwdPool, lf, c.BwdPool, lb)
					key := pathKey(path)
					if seen[key] {
						continue
					}
					seen[key] = true
					found = append(found, Column{
						Path:        path,
						ReducedCost: rc,
						RealCost:    lf.RealCost + arc.Cost + lb.RealCost,
					})
				}
			}
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].ReducedCost < found[j].ReducedCost })
	if c.MaxColumns > 0 && len(found) > c.MaxColumns {
		found = found[:c.MaxColumns]
	}
	return found
}

func labelsAt(p *bucket.Partition, pool *label.Pool, vertex int) []*label.Label {
	var out []*label.Label
	for _, bID := range p.BucketsOf(vertex) {
		b := p.Bucket(bID)
		for _, li := range b.Labels {
			out = append(out, pool.At(li))
		}
	}
	return out
}

// reconstruct walks lf's predecessor chain back to the start depot and
// reverses it, then appends lb's predecessor chain as walked from lb to
// the end depot, stitching the two at the bridging arc.
func reconstruct(fwdPool *label.Pool, lf *label.Label, bwdPool *label.Pool, lb *label.Label) []int {
	var fwdSide []int
	for l := lf; l != nil; {
		fwdSide = append(fwdSide, l.Vertex)
		if l.Pred < 0 {
			break
		}
		l = fwdPool.At(l.Pred)
	}
	for i, j := 0, len(fwdSide)-1; i < j; i, j = i+1, j-1 {
		fwdSide[i], fwdSide[j] = fwdSide[j], fwdSide[i]
	}

	var bwdSide []int
	for l := lb; l != nil; {
		bwdSide = append(bwdSide, l.Vertex)
		if l.Pred < 0 {
			break
		}
		l = bwdPool.At(l.Pred)
	}

	return append(fwdSide, bwdSide...)
}

func pathKey(path []int) string {
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
