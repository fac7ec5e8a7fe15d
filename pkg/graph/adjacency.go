package graph

// msToMicros converts a host-facing millisecond timestamp to the internal
// microsecond domain, multiplying by 1000 per the documented unit
// asymmetry between AddEdge (millis in) and Traverse*/MatchPattern (micros
// in) — both are preserved deliberately rather than reconciled.
func msToMicros(ms *float64) *int64 {
	if ms == nil {
		return nil
	}
	us := int64(*ms * 1000)
	return &us
}

// GetOrCreateNode interns ext and returns its dense id, clearing the
// deleted tombstone if the node had previously been removed. Safe to call
// on every reference site — nodes are created lazily on first mention by
// any mutating call.
func (g *Index) GetOrCreateNode(ext string) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.getOrCreateNodeLocked(ext)
}

func (g *Index) getOrCreateNodeLocked(ext string) uint32 {
	id := g.nodes.Intern(ext)
	g.ensureNodeSlot(id)
	g.deleted[id] = false
	return id
}

// internTypeLocked interns an edge-type label, growing nothing on the node
// dimension. Caller must hold mu.
func (g *Index) internTypeLocked(ext string) (uint8, error) {
	id, err := g.types.Intern(ext)
	if err != nil {
		return 0, ErrTooManyEdgeTypes
	}
	return id, nil
}

// AddEdge interns src, tgt, and edgeType, then appends a record to src's
// Outgoing list and a mirror record to tgt's Incoming list. Does not dedup
// or sort — call Compact afterwards to restore those invariants.
//
// validFromMs and validToMs are milliseconds (nil means unbounded) and are
// multiplied by 1000 to produce the internal microsecond interval — this
// surface is deliberately a different unit than Traverse/TraverseRecursive/
// MatchPattern's as-of parameter, which take microseconds directly. Both
// conventions are preserved verbatim from the existing caller contract.
func (g *Index) AddEdge(src, tgt, edgeType string, validFromMs, validToMs *float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcID := g.getOrCreateNodeLocked(src)
	tgtID := g.getOrCreateNodeLocked(tgt)
	typeID, err := g.internTypeLocked(edgeType)
	if err != nil {
		return err
	}

	validFrom := msToMicros(validFromMs)
	validTo := msToMicros(validToMs)

	g.adj[srcID].Out = append(g.adj[srcID].Out, EdgeRecord{
		Peer: tgtID, Type: typeID, ValidFrom: validFrom, ValidTo: validTo,
	})
	g.adj[tgtID].In = append(g.adj[tgtID].In, EdgeRecord{
		Peer: srcID, Type: typeID, ValidFrom: validFrom, ValidTo: validTo,
	})

	return nil
}

// RemoveNode tombstones the node identified by ext. Its edges are left in
// place physically and filtered out of every read until the next Compact.
// A reference to an unknown external id lazily creates the node (already
// tombstoned), matching the lazy-creation lifecycle of every other mutator.
func (g *Index) RemoveNode(ext string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.getOrCreateNodeLocked(ext)
	g.deleted[id] = true
}

// RemoveEdge tombstones every record, in both directions and across all
// temporal versions, whose (peer, type) matches (src, tgt, edgeType). An
// unknown src, tgt, or edgeType is a no-op.
func (g *Index) RemoveEdge(src, tgt, edgeType string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcID, ok := g.nodes.LookupID(src)
	if !ok {
		return
	}
	tgtID, ok := g.nodes.LookupID(tgt)
	if !ok {
		return
	}
	typeID, ok := g.types.LookupID(edgeType)
	if !ok {
		return
	}

	for i := range g.adj[srcID].Out {
		r := &g.adj[srcID].Out[i]
		if r.Peer == tgtID && r.Type == typeID {
			r.Deleted = true
		}
	}
	for i := range g.adj[tgtID].In {
		r := &g.adj[tgtID].In[i]
		if r.Peer == srcID && r.Type == typeID {
			r.Deleted = true
		}
	}
}

// NodeCount returns the number of distinct nodes ever interned, including
// tombstoned ones — tombstoning is a logical-deletion marker, not a
// removal from the interner's dense domain.
func (g *Index) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nodes.Len()
}

// EdgeCount returns the number of logical (non-tombstoned) edges, counting
// each physical Outgoing/Incoming pair once.
func (g *Index) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	count := 0
	for _, a := range g.adj {
		for _, r := range a.Out {
			if !r.Deleted {
				count++
			}
		}
	}
	return count
}

// isDeletedLocked reports whether id is tombstoned. Caller must hold a
// read or write lock. Out-of-range ids (never interned) are not deleted.
func (g *Index) isDeletedLocked(id uint32) bool {
	if int(id) >= len(g.deleted) {
		return false
	}
	return g.deleted[id]
}
