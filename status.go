package baldes

// Status reports the outcome of a Solve call (or a PhaseN debug call) back
// to the column-generation master.
type Status int

const (
	// Optimal means no negative-reduced-cost column exists even at the
	// final stage: the current LP relaxation is provably optimal and
	// pricing can stop.
	Optimal Status = iota

	// NotOptimal means at least one negative-reduced-cost column was
	// returned (the LP is not yet optimal and the master should iterate),
	// or the solve was aborted/timed out and the columns returned are a
	// best-effort partial result.
	NotOptimal

	// Separation means no negative-reduced-cost column was found, but
	// pricing has not yet reached the final stage: the caller should try
	// separating cuts before the next, more expensive pricing round.
	Separation

	// Error means a structural failure occurred (bucket overflow, label
	// pool exhaustion, invalid input); the caller should abort pricing.
	Error

	// Rollback means the cut set changed (SetCuts) since the last Solve;
	// the engine has reset its label pools and returned to Stage1 without
	// running labeling, and the caller re-solves.
	Rollback
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case NotOptimal:
		return "not_optimal"
	case Separation:
		return "separation"
	case Error:
		return "error"
	case Rollback:
		return "rollback"
	default:
		return "unknown"
	}
}
