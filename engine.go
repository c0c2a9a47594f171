// Package baldes implements a bidirectional bucket-graph labeling engine
// that solves the resource-constrained elementary shortest path problem
// with resource constraints (RCESPPRC) as the pricing subproblem of a
// VRPTW column-generation solver.
package baldes

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Salancelot/baldes/arcgen"
	"github.com/Salancelot/baldes/bidirectional"
	"github.com/Salancelot/baldes/bucket"
	"github.com/Salancelot/baldes/cut"
	"github.com/Salancelot/baldes/dominance"
	"github.com/Salancelot/baldes/extend"
	"github.com/Salancelot/baldes/fixing"
	"github.com/Salancelot/baldes/internal/baldeserr"
	"github.com/Salancelot/baldes/internal/baldeslog"
	"github.com/Salancelot/baldes/internal/telemetry"
	"github.com/Salancelot/baldes/label"
	"github.com/Salancelot/baldes/resource"
	"github.com/Salancelot/baldes/sccgraph"
	"github.com/Salancelot/baldes/stage"
)

// Engine is one RCESPPRC pricing instance: a depot-to-depot vertex set,
// its forward and backward bucket partitions and label arenas, the
// escalation ladder governing how much pruning machinery is active, and
// the heuristic/exact fixing engine that tightens the bucket graph as the
// optimality gap narrows. An Engine is not safe for concurrent Solve calls
// against the same instance; callers needing concurrent pricing across
// several master LP nodes should construct one Engine per node.
type Engine struct {
	opts *EngineOptions

	vertices map[int]*resource.Vertex
	order    []int

	fwdPartition *bucket.Partition
	bwdPartition *bucket.Partition
	fwdGen       *arcgen.Generator
	bwdGen       *arcgen.Generator
	fwdLayering  *sccgraph.Layering
	bwdLayering  *sccgraph.Layering
	fwdPool      *label.Pool
	bwdPool      *label.Pool
	fwdExtend    *extend.Engine
	bwdExtend    *extend.Engine

	cuts            []*cut.Cut
	pendingRollback bool

	stageCtl *stage.Controller
	fixer    *fixing.Engine

	lastIncumbent, lastLB float64

	// Telemetry, when set, receives counters and histograms for every
	// Solve call. Nil-safe: leave unset to run without instrumentation.
	Telemetry *telemetry.Collector
}

// NewEngine returns an Engine configured by opts. A nil opts uses
// DefaultEngineOptions().
func NewEngine(opts *EngineOptions) *Engine {
	if opts == nil {
		opts = DefaultEngineOptions()
	}
	return &Engine{
		opts:     opts,
		stageCtl: stage.NewController(opts.IterationBudget),
	}
}

// Setup builds the forward and backward bucket partitions, lifts every
// vertex arc into bucket arcs, computes each direction's SCC layering, and
// allocates the label arenas. qCapacity, if given, overrides the depot and
// end-depot upper bound on resource index 1 (conventionally capacity).
func (e *Engine) Setup(nodes []*resource.Vertex, timeHorizon float64, bucketInterval resource.Vector, qCapacity ...float64) error {
	if len(nodes) < 2 {
		return baldeserr.New(baldeserr.CodeInvalidResourceVector, "setup requires at least a start and end depot")
	}

	verrs := baldeserr.NewValidationErrors()
	resourceLen := len(bucketInterval)
	vm := make(map[int]*resource.Vertex, len(nodes))
	order := make([]int, 0, len(nodes))
	for _, v := range nodes {
		if len(v.LB) != resourceLen || len(v.UB) != resourceLen {
			verrs.AddError(baldeserr.CodeInvalidResourceVector,
				fmt.Sprintf("vertex %d: resource window dimension does not match bucket_interval length %d", v.ID, resourceLen))
			continue
		}
		if v.NGNeighborhood == nil {
			v.NGNeighborhood = make(map[int]struct{})
		}
		vm[v.ID] = v
		order = append(order, v.ID)
	}
	if verrs.HasErrors() {
		return verrs
	}
	sort.Ints(order)

	if e.opts.EndDepot < 0 {
		e.opts.EndDepot = order[len(order)-1]
	}
	if e.opts.MaxPathSize <= 0 {
		e.opts.MaxPathSize = len(order) / 2
	}

	depot, ok := vm[e.opts.Depot]
	if !ok {
		return baldeserr.NewWithField(baldeserr.CodeInvalidResourceVector, "depot id not found among nodes", "Depot")
	}
	endDepot, ok := vm[e.opts.EndDepot]
	if !ok {
		return baldeserr.NewWithField(baldeserr.CodeInvalidResourceVector, "end depot id not found among nodes", "EndDepot")
	}
	depot.UB[0] = timeHorizon
	endDepot.UB[0] = timeHorizon
	if len(qCapacity) > 0 && resourceLen > 1 {
		depot.UB[1] = qCapacity[0]
		endDepot.UB[1] = qCapacity[0]
	}

	e.vertices = vm
	e.order = order

	e.fwdPartition = bucket.NewPartition(label.Forward, nodes, bucketInterval)
	e.bwdPartition = bucket.NewPartition(label.Backward, nodes, bucketInterval)
	e.fwdGen = arcgen.NewGenerator(e.fwdPartition, nodes)
	e.bwdGen = arcgen.NewGenerator(e.bwdPartition, nodes)

	// Seed one bucket per vertex up front so a vertex with no incoming
	// live arc still appears in the SCC layering.
	for _, v := range nodes {
		e.fwdPartition.GetBucketNumber(v, v.LB)
		e.bwdPartition.GetBucketNumber(v, v.UB)
	}

	e.fwdGen.GenerateBucketArcs()
	e.bwdGen.GenerateBucketArcs()
	e.fwdLayering = sccgraph.Compute(e.fwdPartition.Len(), e.fwdGen.Out)
	e.bwdLayering = sccgraph.Compute(e.bwdPartition.Len(), e.bwdGen.Out)

	bitmapLen := order[len(order)-1] + 1
	e.fwdPool = label.NewPool(resourceLen, bitmapLen, 0)
	e.bwdPool = label.NewPool(resourceLen, bitmapLen, 0)
	e.fwdExtend = extend.NewEngine(label.Forward, e.fwdPool, nodes, e.fwdGen.FixedArc)
	e.bwdExtend = extend.NewEngine(label.Backward, e.bwdPool, nodes, e.bwdGen.FixedArc)
	e.fwdExtend.MaxPathSize = e.opts.MaxPathSize
	e.bwdExtend.MaxPathSize = e.opts.MaxPathSize

	e.fixer = &fixing.Engine{
		FwdPartition: e.fwdPartition,
		BwdPartition: e.bwdPartition,
		FwdPool:      e.fwdPool,
		BwdPool:      e.bwdPool,
		FwdGen:       e.fwdGen,
		BwdGen:       e.bwdGen,
		Vertices:     vm,
	}

	baldeslog.Info("engine setup complete",
		"vertices", len(nodes), "buckets_fwd", e.fwdPartition.Len(), "buckets_bwd", e.bwdPartition.Len())
	return nil
}

// SetDistanceMatrix installs D (indexed by vertex id) and seeds each
// vertex's ng-memory with its nNg nearest neighbors by distance. nNg <= 0
// falls back to the value from EngineOptions.
func (e *Engine) SetDistanceMatrix(D [][]float64, nNg int) error {
	if e.vertices == nil {
		return baldeserr.New(baldeserr.CodeNotSetup, "SetDistanceMatrix called before Setup")
	}
	if nNg <= 0 {
		nNg = e.opts.NNg
	}

	type candidate struct {
		id int
		d  float64
	}
	for _, id := range e.order {
		if id >= len(D) {
			continue
		}
		row := D[id]
		cands := make([]candidate, 0, len(e.order))
		for _, other := range e.order {
			if other == id || other >= len(row) {
				continue
			}
			cands = append(cands, candidate{other, row[other]})
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })

		v := e.vertices[id]
		v.NGNeighborhood = make(map[int]struct{}, nNg)
		for i := 0; i < nNg && i < len(cands); i++ {
			v.AddToNG(cands[i].id)
		}
	}
	e.opts.NNg = nNg
	return nil
}

// SetDuals installs the master LP's covering-constraint duals: duals[i] is
// the dual for vertex i+1, in the master's sign convention for a
// set-partition covering constraint (non-positive at optimality). The
// extension engine subtracts a vertex's stored DualCost from the arc cost
// on entry, so a covering dual of -5 is stored as +5: visiting that vertex
// then lowers the path's reduced cost by 5, matching how a visited
// covering constraint relaxes the master's objective.
func (e *Engine) SetDuals(duals []float64) error {
	if e.vertices == nil {
		return baldeserr.New(baldeserr.CodeNotSetup, "SetDuals called before Setup")
	}
	for i, dual := range duals {
		id := i + 1
		v, ok := e.vertices[id]
		if !ok {
			return baldeserr.New(baldeserr.CodeInvalidDuals, "dual vector references a vertex outside the instance").
				WithDetails("vertex", id)
		}
		v.DualCost = -dual
	}
	return nil
}

// SetCuts installs a new SRC/LMR1 cut set. Because a changed cut set
// invalidates every label's SRC counters, the next Solve call resets both
// arenas, demotes the stage controller to Stage1, and returns Rollback
// without running labeling, so the caller has one clean
// checkpoint before pricing resumes under the new cuts. Use SetCutDuals,
// not this, when only dual values moved and the cut set itself is
// unchanged.
func (e *Engine) SetCuts(cuts []*cut.Cut) error {
	if e.opts.MaxSRCCuts > 0 && len(cuts) > e.opts.MaxSRCCuts {
		return baldeserr.New(baldeserr.CodeSRCInconsistent, "cut set exceeds MaxSRCCuts").
			WithDetails("count", len(cuts)).WithDetails("max", e.opts.MaxSRCCuts)
	}
	e.cuts = cuts
	if e.fwdExtend != nil {
		e.fwdExtend.Cuts = cuts
		e.bwdExtend.Cuts = cuts
	}
	e.pendingRollback = true
	return nil
}

// SetCutDuals re-prices every live label's reduced cost in place for a
// dual-only change on the active cut set, without re-running extension.
func (e *Engine) SetCutDuals(cutDuals []float64) error {
	if len(cutDuals) != len(e.cuts) {
		return baldeserr.New(baldeserr.CodeSRCInconsistent,
			"cut dual vector length does not match the active cut set; call SetCuts instead").
			WithDetails("got", len(cutDuals)).WithDetails("want", len(e.cuts))
	}
	stage.RepriceCutDuals(e.fwdPool, e.cuts, cutDuals)
	stage.RepriceCutDuals(e.bwdPool, e.cuts, cutDuals)
	return nil
}

// SetGap caches the master LP's current optimality gap (incumbent - lb),
// read by stage promotion/rollback and by the fixing engine. The pricing
// engine has no visibility into the master objective on its own, so the
// caller supplies it once per round before calling Solve.
func (e *Engine) SetGap(incumbent, lb float64) {
	e.lastIncumbent = incumbent
	e.lastLB = lb
}

// Solve runs one bidirectional labeling round and returns the best-k
// negative-reduced-cost columns, ordered ascending by reduced cost,
// together with a Status describing how the caller should proceed. qStar
// is not used to pick midpoint buckets: concatenation pairs every forward
// label with every backward label across each direct vertex arc.
func (e *Engine) Solve(qStar resource.Vector) ([]bidirectional.Column, Status) {
	if e.vertices == nil {
		baldeslog.Error("Solve called before Setup")
		return nil, Error
	}

	if e.pendingRollback {
		e.pendingRollback = false
		e.fwdPool.Reset()
		e.bwdPool.Reset()
		e.stageCtl.Rollback(e.lastIncumbent, e.lastLB)
		if e.Telemetry != nil {
			e.Telemetry.StageTransition("rollback")
		}
		baldeslog.Warn("cut set changed since the last solve, pools reset and stage rolled back")
		return nil, Rollback
	}

	callID := uuid.NewString()
	log := baldeslog.WithCall(callID)
	start := time.Now()

	ctx := context.Background()
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	e.fwdPool.Reset()
	e.bwdPool.Reset()
	fwdPass, bwdPass := e.buildPasses()

	depot := e.vertices[e.opts.Depot]
	endDepot := e.vertices[e.opts.EndDepot]
	fwdBucket := e.fwdPartition.GetBucketNumber(depot, depot.LB)
	bwdBucket := e.bwdPartition.GetBucketNumber(endDepot, endDepot.UB)
	fwdPass.Seed(fwdBucket, depot.ID, depot.LB)
	bwdPass.Seed(bwdBucket, endDepot.ID, endDepot.UB)

	err := bidirectional.RunConcurrent(ctx, fwdPass, bwdPass)
	elapsed := time.Since(start).Seconds()

	if e.Telemetry != nil {
		e.Telemetry.SetPoolHighWater("fwd", e.fwdPool.HighWater())
		e.Telemetry.SetPoolHighWater("bwd", e.bwdPool.HighWater())
	}

	if err != nil {
		status := Error
		if ctx.Err() == context.DeadlineExceeded {
			status = NotOptimal
			log.Warn("solve aborted on timeout, returning best effort")
		} else {
			log.Error("solve failed", "error", err)
		}
		columns := e.concatenate(qStar)
		if e.Telemetry != nil {
			e.Telemetry.ObserveSolve(status.String(), elapsed, len(columns))
		}
		return columns, status
	}

	if e.stageCtl.HeuristicFixingEnabled() || e.stageCtl.ExactEliminationEnabled() {
		e.fixer.SetGap(e.lastIncumbent, e.lastLB)
		if e.stageCtl.HeuristicFixingEnabled() {
			if n := e.fixer.HeuristicArcFixing(); n > 0 {
				log.Info("heuristic arc fixing", "fixed", n)
			}
		}
		if e.stageCtl.ExactEliminationEnabled() {
			if n := e.fixer.BucketArcElimination(fwdPass.CBar, bwdPass.CBar); n > 0 {
				log.Info("exact bucket arc elimination", "eliminated", n)
			}
		}
	}

	columns := e.concatenate(qStar)
	status := e.classify(columns)

	if len(columns) == 0 || e.stageCtl.NoteIteration() {
		if e.stageCtl.Promote(e.lastIncumbent, e.lastLB) && e.Telemetry != nil {
			e.Telemetry.StageTransition("promote")
		}
	}

	if e.Telemetry != nil {
		e.Telemetry.ObserveSolve(status.String(), elapsed, len(columns))
	}
	log.Info("solve complete", "columns", len(columns), "status", status.String())
	return columns, status
}

// AugmentNGMemories grows ng-memory from consecutive vertex pairs observed
// in paths (typically the support of a fractional master solution),
// capped at eta1 entries per vertex normally and eta2 when aggressive,
// both bounded by etaMax. Only the first n paths are considered; n <= 0
// means all of them.
func (e *Engine) AugmentNGMemories(paths [][]int, aggressive bool, eta1, eta2, etaMax, n int) int {
	if e.vertices == nil {
		return 0
	}
	if n > 0 && n < len(paths) {
		paths = paths[:n]
	}
	added := stage.AugmentNGMemories(e.vertices, paths, aggressive, eta1, eta2, etaMax)
	if added > 0 {
		baldeslog.Info("ng-memory augmented", "added", added, "aggressive", aggressive)
	}
	return added
}

// PhaseOne runs Solve restricted to Stage1 (relaxed ng-memory, no SRC, no
// jump arcs, no fixing), for debugging and step-wise integration.
func (e *Engine) PhaseOne(qStar resource.Vector) ([]bidirectional.Column, Status) {
	return e.runPhase(stage.Stage1, qStar)
}

// PhaseTwo runs Solve restricted to Stage2 (tight ng-memory, SRC active).
func (e *Engine) PhaseTwo(qStar resource.Vector) ([]bidirectional.Column, Status) {
	return e.runPhase(stage.Stage2, qStar)
}

// PhaseThree runs Solve restricted to Stage3 (adds heuristic arc fixing).
func (e *Engine) PhaseThree(qStar resource.Vector) ([]bidirectional.Column, Status) {
	return e.runPhase(stage.Stage3, qStar)
}

// PhaseFour runs Solve restricted to Stage4 (adds jump arcs and exact
// bucket-arc elimination).
func (e *Engine) PhaseFour(qStar resource.Vector) ([]bidirectional.Column, Status) {
	return e.runPhase(stage.Stage4, qStar)
}

func (e *Engine) runPhase(s stage.Stage, qStar resource.Vector) ([]bidirectional.Column, Status) {
	saved := e.stageCtl.Current
	e.stageCtl.Current = s
	defer func() { e.stageCtl.Current = saved }()
	return e.Solve(qStar)
}

func (e *Engine) buildPasses() (*bidirectional.Pass, *bidirectional.Pass) {
	e.fwdExtend.NGTight = e.stageCtl.NGTight()
	e.bwdExtend.NGTight = e.stageCtl.NGTight()
	useSRC := e.stageCtl.SRCActive() && len(e.cuts) > 0
	e.fwdExtend.UseSRC = useSRC
	e.bwdExtend.UseSRC = useSRC

	srcPolicy := dominance.SRCPolicy{}
	if useSRC {
		duals := make([]float64, len(e.cuts))
		for i, c := range e.cuts {
			duals[i] = c.Dual
		}
		srcPolicy = dominance.SRCPolicy{Active: true, Duals: duals}
	}

	fwdPass := bidirectional.NewPass(label.Forward, e.fwdPartition, e.fwdGen, e.fwdLayering, e.fwdExtend, e.fwdPool, srcPolicy)
	bwdPass := bidirectional.NewPass(label.Backward, e.bwdPartition, e.bwdGen, e.bwdLayering, e.bwdExtend, e.bwdPool, srcPolicy)
	fwdPass.JumpArcsEnabled = e.stageCtl.JumpArcsEnabled()
	bwdPass.JumpArcsEnabled = e.stageCtl.JumpArcsEnabled()

	if e.Telemetry != nil {
		fwdPass.OnLabelCreated = func() { e.Telemetry.LabelCreated("fwd") }
		fwdPass.OnLabelDominated = func() { e.Telemetry.LabelDominated("fwd") }
		fwdPass.OnLabelPruned = func() { e.Telemetry.LabelPruned("fwd") }
		bwdPass.OnLabelCreated = func() { e.Telemetry.LabelCreated("bwd") }
		bwdPass.OnLabelDominated = func() { e.Telemetry.LabelDominated("bwd") }
		bwdPass.OnLabelPruned = func() { e.Telemetry.LabelPruned("bwd") }
	}
	return fwdPass, bwdPass
}

func (e *Engine) concatenate(qStar resource.Vector) []bidirectional.Column {
	ngCore := label.NewBitmap(e.order[len(e.order)-1] + 1)
	ngCore.Set(e.opts.Depot)
	ngCore.Set(e.opts.EndDepot)

	c := &bidirectional.Concatenator{
		FwdPartition: e.fwdPartition,
		BwdPartition: e.bwdPartition,
		FwdPool:      e.fwdPool,
		BwdPool:      e.bwdPool,
		Vertices:     e.vertices,
		NGCore:       ngCore,
		MaxColumns:   e.opts.MaxColumns,
	}
	return c.Concatenate()
}

func (e *Engine) classify(columns []bidirectional.Column) Status {
	if len(columns) > 0 {
		return NotOptimal
	}
	if e.stageCtl.Current == stage.StageEnumerate {
		return Optimal
	}
	return Separation
}
