package graph

// neighborsLocked returns the peer ids admitted from node's adjacency list
// in direction dir, optionally restricted to typeID, passing the temporal
// filter for ts. Caller must hold a read (or write) lock.
func (g *Index) neighborsLocked(node uint32, typeID *uint8, dir Direction, ts *int64) []uint32 {
	if int(node) >= len(g.adj) {
		return nil
	}

	var list []EdgeRecord
	if dir == Outgoing {
		list = g.adj[node].Out
	} else {
		list = g.adj[node].In
	}

	out := make([]uint32, 0, len(list))
	for _, r := range list {
		if typeID != nil && r.Type != *typeID {
			continue
		}
		if !admits(r, ts) {
			continue
		}
		if g.isDeletedLocked(r.Peer) {
			continue
		}
		out = append(out, r.Peer)
	}
	return out
}

// resolveType resolves an optional edge-type label to its interned id.
// Returns (id, true, true) if present and known, (0, false, true) if
// absent (meaning "any type"), and (0, false, false) if the label is
// unknown — in which case the caller should treat the query as matching
// nothing rather than erroring, per spec §7.
func (g *Index) resolveType(edgeType *string) (id uint8, has bool, ok bool) {
	if edgeType == nil {
		return 0, false, true
	}
	tid, found := g.types.LookupID(*edgeType)
	if !found {
		return 0, false, false
	}
	return tid, true, true
}

// Traverse performs a single-hop lookup from sources: for each source
// external ID present in the index and not tombstoned, collect neighbors
// whose type matches edgeType (nil means any type) and that pass the
// temporal filter for asOf, and return the unique external IDs of those
// neighbors. An unknown source id, or an unknown edgeType, contributes no
// results rather than erroring. Order is deterministic: insertion order of
// first discovery.
func (g *Index) Traverse(sources []string, edgeType *string, dir Direction, asOf *int64) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	typeID, hasType, ok := g.resolveType(edgeType)
	if !ok {
		return []string{}
	}
	var typePtr *uint8
	if hasType {
		typePtr = &typeID
	}

	seen := make(map[uint32]struct{})
	result := make([]string, 0)

	for _, src := range sources {
		srcID, found := g.nodes.LookupID(src)
		if !found || g.isDeletedLocked(srcID) {
			continue
		}
		for _, peer := range g.neighborsLocked(srcID, typePtr, dir, asOf) {
			if _, dup := seen[peer]; dup {
				continue
			}
			seen[peer] = struct{}{}
			if name, ok := g.nodes.Lookup(peer); ok {
				result = append(result, name)
			}
		}
	}

	return result
}

// TraverseRecursive performs a bounded BFS from sources, one admitted hop
// at a time, and returns the unique external IDs of every node whose
// shortest admitted-path depth from any source lies in [minDepth,
// maxDepth]. Sources are never returned (their depth is 0). Each node is
// visited at most once per BFS layer, so cycles cannot cause
// non-termination. minDepth must be >= 1 and maxDepth >= minDepth; callers
// violating that get an empty result rather than a panic.
func (g *Index) TraverseRecursive(sources []string, edgeType *string, dir Direction, minDepth, maxDepth int, asOf *int64) []string {
	if minDepth < 1 || maxDepth < minDepth {
		return []string{}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	typeID, hasType, ok := g.resolveType(edgeType)
	if !ok {
		return []string{}
	}
	var typePtr *uint8
	if hasType {
		typePtr = &typeID
	}

	visited := make(map[uint32]struct{})
	frontier := make([]uint32, 0, len(sources))
	for _, src := range sources {
		srcID, found := g.nodes.LookupID(src)
		if !found || g.isDeletedLocked(srcID) {
			continue
		}
		visited[srcID] = struct{}{}
		frontier = append(frontier, srcID)
	}

	order := make([]uint32, 0)
	depthOf := make(map[uint32]int)

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		next := make([]uint32, 0)
		for _, node := range frontier {
			for _, peer := range g.neighborsLocked(node, typePtr, dir, asOf) {
				if _, dup := visited[peer]; dup {
					continue
				}
				visited[peer] = struct{}{}
				depthOf[peer] = depth
				next = append(next, peer)
				if depth >= minDepth {
					order = append(order, peer)
				}
			}
		}
		frontier = next
	}

	result := make([]string, 0, len(order))
	for _, id := range order {
		if name, ok := g.nodes.Lookup(id); ok {
			result = append(result, name)
		}
	}
	return result
}
