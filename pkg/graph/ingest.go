package graph

import "fmt"

// BatchRow is one decoded row of the fixed columnar ingestion schema
// (spec §6): source_id, target_id, edge_type (all non-null UTF-8 strings),
// and valid_from/valid_to (nullable microsecond timestamps). Each row is
// one logical edge.
//
// Decoding the external columnar format itself — Arrow, or whatever the
// upstream analytical store emits — is the host's responsibility; Batch
// carries already-decoded rows, the same way the original native binding
// receives an already-parsed arrow.RecordBatch rather than decoding Arrow
// IPC frames itself.
type BatchRow struct {
	SourceID  string
	TargetID  string
	EdgeType  string
	ValidFrom *int64
	ValidTo   *int64
}

// Batch is an ordered set of BatchRow to ingest. A batch may be ingested in
// any order.
type Batch []BatchRow

// IngestBatch appends one edge per row, with the same effect as repeated
// AddEdge calls but without per-row lock churn. It does NOT deduplicate —
// callers must call Compact afterwards for the sort/dedup invariants to
// hold; an un-compacted index may over-count edges on read but must never
// mis-direct a traversal or match.
//
// Returns ErrDecode, wrapping the offending row index and column name, if a
// row is missing a required field.
func (g *Index) IngestBatch(batch Batch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, row := range batch {
		missing := ""
		switch {
		case row.SourceID == "":
			missing = "source_id"
		case row.TargetID == "":
			missing = "target_id"
		case row.EdgeType == "":
			missing = "edge_type"
		}
		if missing != "" {
			return fmt.Errorf("%w: row %d missing required column %s", ErrDecode, i, missing)
		}

		srcID := g.getOrCreateNodeLocked(row.SourceID)
		tgtID := g.getOrCreateNodeLocked(row.TargetID)
		typeID, err := g.internTypeLocked(row.EdgeType)
		if err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrDecode, i, err)
		}

		g.adj[srcID].Out = append(g.adj[srcID].Out, EdgeRecord{
			Peer: tgtID, Type: typeID, ValidFrom: row.ValidFrom, ValidTo: row.ValidTo,
		})
		g.adj[tgtID].In = append(g.adj[tgtID].In, EdgeRecord{
			Peer: srcID, Type: typeID, ValidFrom: row.ValidFrom, ValidTo: row.ValidTo,
		})
	}

	return nil
}
