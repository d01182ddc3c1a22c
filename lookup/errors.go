// Package lookup maintains the bidirectional correspondence between bare
// product states and dressed eigenstates across a parameter sweep, and serves
// indexed spectrum queries against the resulting table.
package lookup

import "errors"

// Unassigned is the table sentinel for a bare position that no dressed state
// claimed: its best overlap fell below the threshold. It is an expected
// outcome for strongly hybridized states, never an error.
const Unassigned = -1

// OverlapThreshold is the squared-overlap cutoff below which a bare/dressed
// pairing is rejected.
const OverlapThreshold = 0.5

var (
	// ErrStaleLookup is returned by every query when the underlying
	// eigensystem has been recomputed without rebuilding the table.
	ErrStaleLookup = errors.New("lookup table out of sync with eigensystem data, rebuild required")

	// ErrLabelNotFound is returned when a bare label falls outside the
	// enumerated canonical set or has the wrong arity. Callers probe labels
	// speculatively, so this is a checkable sentinel rather than a hard
	// failure.
	ErrLabelNotFound = errors.New("bare label not in the canonical set")

	// ErrBareNotFound is returned when no bare position maps to the
	// requested dressed index at the given parameter point.
	ErrBareNotFound = errors.New("no bare label assigned to dressed index")

	// ErrPartialSelection is returned when an operation that is only
	// defined at a single parameter point receives a partial selection.
	ErrPartialSelection = errors.New("all parameter axes must be fixed to concrete values")
)
