// Package graph implements the temporal property graph index: a CSR-like
// adjacency structure keyed on (node, edge type, direction), with
// incremental mutation, bulk columnar ingestion, deduplicating compaction,
// temporal filtering, deletion tombstones, traversal, subgraph-isomorphism
// pattern matching, and single-file snapshots.
//
// A node is an opaque external string ID normalized by an intern.Interner
// into a dense uint32; an edge type is normalized by an intern.TypeInterner
// into a uint8. Every logical edge (u --t--> v, [from,to)) is stored twice:
// once as an Outgoing record on u, once as an Incoming record on v. Both
// records carry the same type and validity interval and must be created,
// tombstoned, and compacted together — see adjacency.go.
package graph

import (
	"sync"

	"github.com/quackgraph/quackgraph/pkg/intern"
)

// Direction selects which side of an adjacency pair to read or write.
type Direction int

const (
	// Outgoing selects edges where the node being queried is the source.
	Outgoing Direction = iota
	// Incoming selects edges where the node being queried is the target.
	Incoming
)

// EdgeRecord is one physical adjacency-list entry: a typed, optionally
// temporally-bounded pointer at a peer node.
//
// ValidFrom and ValidTo are microsecond timestamps; a nil pointer means
// unbounded (-infinity for ValidFrom, +infinity for ValidTo). The interval
// is half-open: [ValidFrom, ValidTo).
type EdgeRecord struct {
	Peer      uint32
	Type      uint8
	ValidFrom *int64
	ValidTo   *int64
	Deleted   bool
}

// sameTriple reports whether two records describe the same logical edge
// version, ignoring the Deleted flag. Used by compact() to dedup.
func (e EdgeRecord) sameTriple(o EdgeRecord) bool {
	return e.Peer == o.Peer && e.Type == o.Type &&
		equalPtr(e.ValidFrom, o.ValidFrom) && equalPtr(e.ValidTo, o.ValidTo)
}

func equalPtr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// adjacency holds one node's outgoing and incoming edge records.
type adjacency struct {
	Out []EdgeRecord
	In  []EdgeRecord
}

// Index is the in-memory temporal property graph index. The zero value is
// not usable; use New.
//
// Index is safe for concurrent readers, and safe for one writer running
// exclusive of all other operations — the internal RWMutex is a defensive
// discipline layered under the single-writer/multi-reader contract the host
// process is expected to hold; it is not a substitute for that contract,
// since compact() and other mutators assume no concurrent mutation is ever
// attempted by program logic (only guarded against by accident).
type Index struct {
	mu sync.RWMutex

	nodes   *intern.Interner
	types   *intern.TypeInterner
	adj     []adjacency // indexed by node id
	deleted []bool      // indexed by node id
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		nodes: intern.New(),
		types: intern.NewType(),
	}
}

// ensureNodeSlot grows adj/deleted to cover id. Caller must hold mu.
func (g *Index) ensureNodeSlot(id uint32) {
	for uint32(len(g.adj)) <= id {
		g.adj = append(g.adj, adjacency{})
		g.deleted = append(g.deleted, false)
	}
}
