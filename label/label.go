package label

import "github.com/Salancelot/baldes/resource"

// Direction distinguishes a forward label (grown from the start depot) from
// a backward label (grown from the end depot). Extension, dominance, and
// concatenation all specialize on it.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Label is a partial path ending (forward) or starting (backward) at
// Vertex, along with everything dominance and extension need to compare it
// against siblings without walking its predecessor chain.
type Label struct {
	// Vertex is the id of the label's current endpoint.
	Vertex int

	// Dir records which direction this label was grown in.
	Dir Direction

	// Resources is the accumulated resource consumption along the path.
	Resources resource.Vector

	// Cost is the accumulated reduced cost (what dominance compares).
	Cost float64

	// RealCost is the accumulated, dual-independent travel cost, kept
	// separately so the final recovered column reports a true cost.
	RealCost float64

	// Pred is the arena index of the predecessor label, or -1 for a root
	// label at a depot. Following Pred chains recovers the path without
	// every label owning a slice.
	Pred int

	// index is this label's own arena slot, set by the Pool on creation so
	// a Label can report its own index to whatever stores it without a
	// second lookup.
	index int

	// Visited is the elementarity bitmap: vertices this path has visited
	// and which therefore cannot be revisited (subject to ng-relaxation).
	Visited Bitmap

	// NG is the ng-memory bitmap: the set of "remembered" visited vertices
	// under ng-relaxation, a subset of Visited.
	NG Bitmap

	// SRC holds per-cut accumulated values for active subset-row cuts.
	SRC SRCState

	// SRCWraps counts, per cut, how many times SRC's counter has wrapped
	// along this label's path. It lets SetCutDuals re-price c̃ in place
	// when only duals moved and the active cut set is unchanged, without
	// re-running extension.
	SRCWraps SRCState

	// Extended marks a label that has already been pushed through
	// extension once this sweep, preventing the labeling loop from
	// reprocessing it.
	Extended bool
}

// Index returns the label's arena slot.
func (l *Label) Index() int { return l.index }

// reset clears a label back to its zero state for reuse, keeping backing
// arrays where possible to avoid reallocating Resources/Visited/NG.
func (l *Label) reset() {
	l.Vertex = 0
	l.Dir = Forward
	for i := range l.Resources {
		l.Resources[i] = 0
	}
	l.Cost = 0
	l.RealCost = 0
	l.Pred = -1
	for i := range l.Visited {
		l.Visited[i] = 0
	}
	for i := range l.NG {
		l.NG[i] = 0
	}
	l.SRC.Reset()
	l.SRCWraps.Reset()
	l.Extended = false
}
