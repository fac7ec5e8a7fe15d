package graph

import "sort"

// Compact restores the adjacency invariants that incremental mutation and
// bulk ingestion are allowed to violate: for every (node, direction) list,
// tombstoned records and records incident to a tombstoned peer are dropped,
// the remainder is sorted by (type, peer, validFrom, validTo), adjacent
// duplicates are removed, and the backing slice is shrunk to fit. This is a
// writer operation: it requires the same exclusive access as AddEdge or
// RemoveNode.
func (g *Index) Compact() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id := range g.adj {
		g.adj[id].Out = compactList(g.adj[id].Out, g.deleted)
		g.adj[id].In = compactList(g.adj[id].In, g.deleted)
	}
}

func compactList(list []EdgeRecord, deleted []bool) []EdgeRecord {
	kept := list[:0:0]
	for _, r := range list {
		if r.Deleted {
			continue
		}
		if int(r.Peer) < len(deleted) && deleted[r.Peer] {
			continue
		}
		kept = append(kept, r)
	}

	sort.Slice(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Peer != b.Peer {
			return a.Peer < b.Peer
		}
		af, bf := ptrValOrMin(a.ValidFrom), ptrValOrMin(b.ValidFrom)
		if af != bf {
			return af < bf
		}
		at, bt := ptrValOrMax(a.ValidTo), ptrValOrMax(b.ValidTo)
		return at < bt
	})

	dedup := kept[:0:0]
	for i, r := range kept {
		if i > 0 && r.sameTriple(kept[i-1]) {
			continue
		}
		dedup = append(dedup, r)
	}

	// Shrink to fit: a fresh slice at exact capacity releases whatever
	// extra capacity ingestion over-allocated.
	out := make([]EdgeRecord, len(dedup))
	copy(out, dedup)
	return out
}

func ptrValOrMin(p *int64) int64 {
	if p == nil {
		return minInt64
	}
	return *p
}

func ptrValOrMax(p *int64) int64 {
	if p == nil {
		return maxInt64
	}
	return *p
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)
