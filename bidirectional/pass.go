// Package bidirectional drives one direction's labeling sweep to a fixed
// point, then concatenates surviving forward and backward labels into
// candidate columns. The forward and backward passes run as two
// cooperating tasks joined by a barrier; concatenation itself is
// single-threaded.
package bidirectional

import (
	"context"

	"github.com/Salancelot/baldes/arcgen"
	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/dominance"
	"github.com/Salancelot/baldes/extend"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/sccgraph"
)

// Pass runs the labeling loop for one direction: seed, sweep every SCC to
// a fixed point in topological order, maintain each bucket's c̄.
type Pass struct {
	Dir       label.Direction
	Partition *bucket.Partition
	Generator *arcgen.Generator
	Layering  *sccgraph.Layering
	Extender  *extend.Engine
	Pool      *label.Pool
	SRC       dominance.SRCPolicy

	// JumpArcsEnabled gates whether Out() results that are jump arcs get
	// walked; Stage < 3 ignores them even if ObtainJumpBucketArcs already
	// populated the adjacency.
	JumpArcsEnabled bool

	CBar map[int]float64

	// OnLabelCreated/OnLabelDominated/OnLabelPruned, when set, are called
	// for telemetry; any may be nil.
	OnLabelCreated   func()
	OnLabelDominated func()
	OnLabelPruned    func()
}

// NewPass wires a labeling pass from its components.
func NewPass(dir label.Direction, p *bucket.Partition, g *arcgen.Generator, l *sccgraph.Layering, e *extend.Engine, pool *label.Pool, src dominance.SRCPolicy) *Pass {
	return &Pass{
		Dir:       dir,
		Partition: p,
		Generator: g,
		Layering:  l,
		Extender:  e,
		Pool:      pool,
		SRC:       src,
		CBar:      make(map[int]float64),
	}
}

// Seed places one initial label at bucketID with the given starting
// resources, zero cost, and vertex bit set in its visit mask.
func (p *Pass) Seed(bucketID int, vertex int, resources []float64) *label.Label {
	l := p.Pool.Get()
	l.Vertex = vertex
	l.Dir = p.Dir
	l.Pred = -1
	copy(l.Resources, resources)
	l.Visited.Set(vertex)
	p.insert(bucketID, l)
	return l
}

// Run sweeps every SCC in topological order to a fixed point, checking ctx
// between SCCs so a caller can abort a long-running solve without
// guaranteeing optimality of the partial result.
func (p *Pass) Run(ctx context.Context) error {
	for _, scc := range p.Layering.SCCs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		for {
			progressed := false
			for _, bID := range scc.Members {
				if p.sweepBucket(bID) {
					progressed = true
				}
			}
			if !progressed {
				break
			}
		}
	}
	return nil
}

func (p *Pass) sweepBucket(bID int) bool {
	b := p.Partition.Bucket(bID)
	progressed := false
	for _, li := range append([]int(nil), b.Labels...) {
		l := p.Pool.At(li)
		if l.Extended {
			continue
		}
		for _, arc := range p.Generator.Out(bID) {
			if arc.Jump && !p.JumpArcsEnabled {
				continue
			}
			// Extend may grow the pool's backing array (Pool.Get), which can
			// reallocate and invalidate l as a pointer into the old array;
			// re-fetch by index every call rather than trust l across the loop.
			child, ok := p.Extender.Extend(p.Pool.At(li), arc)
			if !ok {
				continue
			}
			if p.onNewLabel(arc.To, child) {
				progressed = true
			}
		}
		p.Pool.At(li).Extended = true
	}
	p.updateCBar(bID, b)
	return progressed
}

// onNewLabel runs dominance of child against target's current labels and
// against componentwise-smaller buckets; inserts it and evicts anything it
// dominates if it survives.
func (p *Pass) onNewLabel(targetID int, child *label.Label) bool {
	target := p.Partition.Bucket(targetID)

	if dominance.DominatedInCompWiseSmallerBuckets(p.Partition, p.Pool, child, target, p.Dir, p.SRC) {
		p.dominated()
		return false
	}
	for _, li := range target.Labels {
		if dominance.Dominates(p.Pool.At(li), child, p.Dir, p.SRC) {
			p.dominated()
			return false
		}
	}

	survivors := target.Labels[:0]
	for _, li := range target.Labels {
		if dominance.Dominates(child, p.Pool.At(li), p.Dir, p.SRC) {
			p.pruned()
			continue
		}
		survivors = append(survivors, li)
	}
	target.Labels = append(survivors, child.Index())
	if p.OnLabelCreated != nil {
		p.OnLabelCreated()
	}
	return true
}

func (p *Pass) dominated() {
	if p.OnLabelDominated != nil {
		p.OnLabelDominated()
	}
}

func (p *Pass) pruned() {
	if p.OnLabelPruned != nil {
		p.OnLabelPruned()
	}
}

func (p *Pass) insert(bucketID int, l *label.Label) {
	b := p.Partition.Bucket(bucketID)
	b.Labels = append(b.Labels, l.Index())
}

func (p *Pass) updateCBar(bID int, b *bucket.Bucket) {
	best := b.CBar
	first := true
	for _, li := range b.Labels {
		c := p.Pool.At(li).Cost
		if first || c < best {
			best = c
			first = false
		}
	}
	if !first {
		b.CBar = best
		p.CBar[bID] = best
	}
}
