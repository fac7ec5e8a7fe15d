package graph

import "errors"

// Sentinel errors returned by Index operations.
//
// Readers never fail on missing data — an unknown node in a query, an
// unknown edge type in a pattern, or an empty start set are non-errors that
// simply produce empty results. Only mutators, snapshot I/O, and
// MatchPattern (for an ill-formed pattern) surface errors to the caller.
var (
	// ErrTooManyEdgeTypes is returned when a 257th distinct edge-type label
	// is requested; the type domain is a uint8.
	ErrTooManyEdgeTypes = errors.New("graph: more than 256 distinct edge types")

	// ErrIO wraps a snapshot path that could not be read or written.
	ErrIO = errors.New("graph: snapshot i/o failure")

	// ErrDecode is returned when a columnar ingestion batch is malformed:
	// a missing column, a null in a non-null field, or a row that fails to
	// resolve against the fixed schema. LoadSnapshot also returns it for a
	// snapshot file that cannot be decoded.
	ErrDecode = errors.New("graph: malformed ingestion batch or snapshot")

	// ErrSnapshotVersionMismatch is returned when a snapshot file's header
	// version is not one this build of the package understands.
	ErrSnapshotVersionMismatch = errors.New("graph: snapshot version mismatch")

	// ErrIllFormedPattern is returned by MatchPattern when a pattern edge
	// violates the injectivity precondition (src_var == tgt_var) or the
	// connectivity requirement (a variable never bound to a lower one).
	ErrIllFormedPattern = errors.New("graph: ill-formed pattern")
)
