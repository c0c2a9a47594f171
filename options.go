package baldes

import (
	"time"

	"github.com/Salancelot/baldes/resource"
)

// EngineOptions configures an Engine. Zero values are safe to use --
// DefaultEngineOptions applies sensible defaults. Options chain using the
// builder pattern:
//
//	opts := DefaultEngineOptions().
//	    WithDepot(0).
//	    WithNNg(10).
//	    WithTimeout(5 * time.Second)
type EngineOptions struct {
	// Depot is the vertex id of the start depot.
	// Default: 0
	Depot int

	// EndDepot is the vertex id of the end depot. A negative value tells
	// Setup to resolve it to N-1 once the vertex count is known.
	// Default: -1 (resolved to N-1)
	EndDepot int

	// MaxPathSize hard-caps the number of vertices a single label may
	// visit. A non-positive value tells Setup to resolve it to N/2.
	// Default: 0 (resolved to N/2)
	MaxPathSize int

	// NNg is the initial ng-memory neighborhood size computed by
	// SetDistanceMatrix.
	// Default: 8
	NNg int

	// MaxSRCCuts upper-bounds the number of concurrent SRC/LMR1 cuts
	// accepted by SetCuts. Zero means unbounded.
	// Default: 0 (unbounded)
	MaxSRCCuts int

	// Epsilon is a floating-point tolerance stored with the options. The
	// engine does not read it: dominance and feasibility comparisons use
	// the resource.Epsilon constant.
	// Default: resource.Epsilon (1e-9)
	Epsilon float64

	// Timeout bounds a single Solve call. Zero means Solve runs without a
	// timeout.
	// Default: 30 seconds
	Timeout time.Duration

	// IterationBudget is the number of pricing iterations allowed at each
	// stage before the stage controller promotes.
	// Default: 50
	IterationBudget int

	// MaxColumns caps how many negative-reduced-cost columns Solve
	// returns per call.
	// Default: 5
	MaxColumns int
}

// DefaultEngineOptions returns options with sensible defaults for most
// VRPTW pricing instances.
//
// Default values:
//   - Depot: 0
//   - EndDepot: resolved to N-1 at Setup
//   - MaxPathSize: resolved to N/2 at Setup
//   - NNg: 8
//   - MaxSRCCuts: unbounded
//   - Epsilon: 1e-9
//   - Timeout: 30 seconds
//   - IterationBudget: 50
//   - MaxColumns: 5
func DefaultEngineOptions() *EngineOptions {
	return &EngineOptions{
		Depot:           0,
		EndDepot:        -1,
		MaxPathSize:     0,
		NNg:             8,
		MaxSRCCuts:      0,
		Epsilon:         resource.Epsilon,
		Timeout:         30 * time.Second,
		IterationBudget: 50,
		MaxColumns:      5,
	}
}

// WithDepot sets the start depot id and returns the options for chaining.
func (o *EngineOptions) WithDepot(id int) *EngineOptions {
	o.Depot = id
	return o
}

// WithEndDepot sets the end depot id and returns the options for chaining.
func (o *EngineOptions) WithEndDepot(id int) *EngineOptions {
	o.EndDepot = id
	return o
}

// WithMaxPathSize sets the per-label vertex-visit cap and returns the
// options for chaining.
func (o *EngineOptions) WithMaxPathSize(n int) *EngineOptions {
	o.MaxPathSize = n
	return o
}

// WithNNg sets the initial ng-memory neighborhood size and returns the
// options for chaining.
func (o *EngineOptions) WithNNg(n int) *EngineOptions {
	o.NNg = n
	return o
}

// WithMaxSRCCuts sets the concurrent SRC-cut bound and returns the options
// for chaining.
func (o *EngineOptions) WithMaxSRCCuts(n int) *EngineOptions {
	o.MaxSRCCuts = n
	return o
}

// WithEpsilon sets the floating-point tolerance and returns the options
// for chaining.
func (o *EngineOptions) WithEpsilon(eps float64) *EngineOptions {
	o.Epsilon = eps
	return o
}

// WithTimeout sets the per-Solve timeout and returns the options for
// chaining.
func (o *EngineOptions) WithTimeout(timeout time.Duration) *EngineOptions {
	o.Timeout = timeout
	return o
}

// WithIterationBudget sets the per-stage iteration budget and returns the
// options for chaining.
func (o *EngineOptions) WithIterationBudget(n int) *EngineOptions {
	o.IterationBudget = n
	return o
}

// WithMaxColumns sets the best-k column return cap and returns the
// options for chaining.
func (o *EngineOptions) WithMaxColumns(n int) *EngineOptions {
	o.MaxColumns = n
	return o
}
