// Package stage implements the escalation ladder that governs how much
// pruning machinery a pricing call uses: ng-memory tightness, SRC
// participation in dominance, jump arcs, heuristic arc fixing, and exact
// bucket-arc elimination all gate on the current stage.
package stage

// Stage is a point on the escalation ladder.
type Stage int

const (
	Stage1 Stage = iota
	Stage2
	Stage3
	Stage4
	StageEnumerate
)

func (s Stage) String() string {
	switch s {
	case Stage1:
		return "stage1"
	case Stage2:
		return "stage2"
	case Stage3:
		return "stage3"
	case Stage4:
		return "stage4"
	case StageEnumerate:
		return "enumerate"
	default:
		return "unknown"
	}
}

// Controller tracks the current stage, the cached optimality gap, and the
// iteration budget that triggers promotion.
type Controller struct {
	Current Stage
	Gap     float64

	IterationBudget   int
	iterationsAtStage int
}

// NewController starts a fresh controller at Stage1.
func NewController(iterationBudget int) *Controller {
	return &Controller{Current: Stage1, IterationBudget: iterationBudget}
}

// NGTight reports whether ng-memory should be the tight (Stage >= 2)
// variant rather than the relaxed Stage-1 one.
func (c *Controller) NGTight() bool { return c.Current >= Stage2 }

// SRCActive reports whether SRC cut state should participate in
// dominance.
func (c *Controller) SRCActive() bool { return c.Current >= Stage2 }

// JumpArcsEnabled reports whether jump arcs should be walked during
// labeling.
func (c *Controller) JumpArcsEnabled() bool { return c.Current >= Stage4 }

// HeuristicFixingEnabled reports whether Stage-3 heuristic arc fixing
// should run between labeling passes.
func (c *Controller) HeuristicFixingEnabled() bool { return c.Current >= Stage3 }

// ExactEliminationEnabled reports whether Stage-4 exact bucket-arc
// elimination should run between labeling passes.
func (c *Controller) ExactEliminationEnabled() bool { return c.Current >= Stage4 }

// RecomputeGap updates the cached gap. Only Promote and Rollback call
// this.
func (c *Controller) RecomputeGap(incumbent, lb float64) {
	c.Gap = incumbent - lb
}

// NoteIteration records one pricing iteration at the current stage,
// returning true once the iteration budget for this stage is exceeded.
func (c *Controller) NoteIteration() bool {
	c.iterationsAtStage++
	return c.IterationBudget > 0 && c.iterationsAtStage > c.IterationBudget
}

// Promote advances to the next stage when no negative-reduced-cost column
// was found, or the iteration budget was exceeded. Returns false if
// already at StageEnumerate.
func (c *Controller) Promote(incumbent, lb float64) bool {
	if c.Current == StageEnumerate {
		return false
	}
	c.Current++
	c.iterationsAtStage = 0
	c.RecomputeGap(incumbent, lb)
	return true
}

// Rollback demotes to Stage1 after a dominance-state inconsistency
// following cut addition; the caller is responsible for dropping the SRC
// cuts and resetting label pools before re-running.
func (c *Controller) Rollback(incumbent, lb float64) {
	c.Current = Stage1
	c.iterationsAtStage = 0
	c.RecomputeGap(incumbent, lb)
}
