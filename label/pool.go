package label

import "github.com/Salancelot/baldes/resource"

// Pool is a bulk-reset arena for Label values. Labels live and die with a
// single Engine.Solve call and are produced and consumed in the tens of
// thousands per stage, so a flat growable slice with an O(1) Reset between
// calls outperforms returning individual labels to a concurrent
// sync.Pool: there is no cross-goroutine sharing to arbitrate and no
// benefit to letting the
// runtime reclaim labels piecemeal mid-solve.
type Pool struct {
	resourceLen int
	bitmapLen   int

	labels []Label
	used   int

	// highWater is the largest `used` value reached since the pool was
	// created (Reset does not lower it), exposed so telemetry can track
	// arena pressure across stages.
	highWater int
}

// NewPool returns an arena sized for a graph with resourceLen resources per
// vector and bitmapLen vertices per bitmap. initialCap preallocates that
// many label slots up front to avoid growth during the first sweep.
func NewPool(resourceLen, bitmapLen, initialCap int) *Pool {
	p := &Pool{
		resourceLen: resourceLen,
		bitmapLen:   bitmapLen,
	}
	if initialCap > 0 {
		p.labels = make([]Label, 0, initialCap)
	}
	return p
}

// Get returns a fresh, zeroed label backed by arena-owned storage. The
// returned pointer is only valid until the next Reset.
func (p *Pool) Get() *Label {
	if p.used < len(p.labels) {
		l := &p.labels[p.used]
		l.reset()
		l.index = p.used
		p.used++
		return l
	}
	p.labels = append(p.labels, Label{
		index:     p.used,
		Resources: resource.NewVector(p.resourceLen),
		Visited:   NewBitmap(p.bitmapLen),
		NG:        NewBitmap(p.bitmapLen),
		Pred:      -1,
	})
	l := &p.labels[p.used]
	p.used++
	if p.used > p.highWater {
		p.highWater = p.used
	}
	return l
}

// At returns the label stored at arena index i, as used to follow Pred
// chains during path reconstruction.
func (p *Pool) At(i int) *Label {
	return &p.labels[i]
}

// Len returns the number of labels currently live in the arena.
func (p *Pool) Len() int { return p.used }

// HighWater returns the largest live-label count reached since the arena
// was created; Reset does not lower it.
func (p *Pool) HighWater() int { return p.highWater }

// Reset returns every label slot to the free list without releasing the
// underlying backing arrays, so the next stage reuses them.
func (p *Pool) Reset() {
	p.used = 0
}
