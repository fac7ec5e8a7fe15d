package graph

// PatternEdge is one constraint of a subgraph pattern: a directed, typed
// edge required to exist between the bindings of two pattern variables.
// Variables are named by their index in 0..V-1.
type PatternEdge struct {
	SrcVar   int
	TgtVar   int
	EdgeType string
	Dir      Direction
}

// resolvedEdge is a PatternEdge with its type pre-interned.
type resolvedEdge struct {
	srcVar, tgtVar int
	typeID         uint8
	dir            Direction
}

// MatchPattern returns every injective assignment of graph nodes to the
// pattern's variables such that every pattern edge is realized by an
// admitted edge in the index, no bound node is tombstoned, and variable 0
// binds to a member of startCandidates.
//
// The pattern must be connected: every variable i > 0 must appear as one
// side of some pattern edge whose other side is a variable j < i. A
// pattern violating that, or one where a single edge has SrcVar == TgtVar
// (which can never bind injectively), is rejected with
// ErrIllFormedPattern.
//
// An unknown edge type, or an empty startCandidates after resolution,
// yields an empty result rather than an error — both are non-errors per
// spec §7. Pattern edges are filtered by the same asOf timestamp as any
// other query. An empty pattern is well-formed: it binds only variable 0,
// yielding one singleton match per resolvable, non-tombstoned member of
// startCandidates.
func (g *Index) MatchPattern(startCandidates []string, pattern []PatternEdge, asOf *int64) ([][]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	numVars := 0
	for _, e := range pattern {
		if e.SrcVar == e.TgtVar {
			return nil, ErrIllFormedPattern
		}
		if e.SrcVar+1 > numVars {
			numVars = e.SrcVar + 1
		}
		if e.TgtVar+1 > numVars {
			numVars = e.TgtVar + 1
		}
	}
	if numVars == 0 {
		// An empty pattern still has variable 0, bound directly to each seed,
		// with no edges left to satisfy — mirrors the original matcher's
		// max_var+1 sizing, which yields 1 rather than 0.
		numVars = 1
	}

	if err := checkConnected(numVars, pattern); err != nil {
		return nil, err
	}

	resolved := make([]resolvedEdge, len(pattern))
	for i, e := range pattern {
		typeID, found := g.types.LookupID(e.EdgeType)
		if !found {
			return [][]string{}, nil
		}
		resolved[i] = resolvedEdge{srcVar: e.SrcVar, tgtVar: e.TgtVar, typeID: typeID, dir: e.Dir}
	}

	seedIDs := make([]uint32, 0, len(startCandidates))
	for _, s := range startCandidates {
		if id, ok := g.nodes.LookupID(s); ok && !g.isDeletedLocked(id) {
			seedIDs = append(seedIDs, id)
		}
	}
	if len(seedIDs) == 0 {
		return [][]string{}, nil
	}

	m := &matcher{index: g, pattern: resolved, numVars: numVars, asOf: asOf}
	rawResults := m.findMatches(seedIDs)

	out := make([][]string, 0, len(rawResults))
	for _, row := range rawResults {
		names := make([]string, len(row))
		for i, id := range row {
			name, _ := g.nodes.Lookup(id)
			names[i] = name
		}
		out = append(out, names)
	}
	return out, nil
}

// checkConnected verifies that every variable i > 0 is bound to some
// variable j < i by at least one pattern edge.
func checkConnected(numVars int, pattern []PatternEdge) error {
	for v := 1; v < numVars; v++ {
		bound := false
		for _, e := range pattern {
			if (e.SrcVar == v && e.TgtVar < v) || (e.TgtVar == v && e.SrcVar < v) {
				bound = true
				break
			}
		}
		if !bound {
			return ErrIllFormedPattern
		}
	}
	return nil
}

// matcher holds the state for one MatchPattern call: backtracking
// variable-by-variable in index order, per spec §4.D's state machine
// (Unbound -> Candidates-computed -> Iterating -> Bound -> Backtracked).
type matcher struct {
	index   *Index
	pattern []resolvedEdge
	numVars int
	asOf    *int64
}

func (m *matcher) findMatches(startCandidates []uint32) [][]uint32 {
	var results [][]uint32
	assignment := make([]uint32, m.numVars)
	bound := make([]bool, m.numVars)
	used := make(map[uint32]struct{}, m.numVars)

	for _, start := range startCandidates {
		if m.index.isDeletedLocked(start) {
			continue
		}

		assignment[0] = start
		bound[0] = true
		used[start] = struct{}{}

		m.backtrack(1, assignment, bound, used, &results)

		delete(used, start)
		bound[0] = false
	}

	return results
}

func (m *matcher) backtrack(v int, assignment []uint32, bound []bool, used map[uint32]struct{}, results *[][]uint32) {
	if v == m.numVars {
		row := make([]uint32, m.numVars)
		copy(row, assignment)
		*results = append(*results, row)
		return
	}

	var candidates []uint32
	haveCandidates := false

	for _, e := range m.pattern {
		var known uint32
		var dir Direction

		switch {
		case e.srcVar < v && e.tgtVar == v:
			known = assignment[e.srcVar]
			dir = e.dir // edge goes known -(dir)-> v; neighbor lookup direction matches pattern direction
		case e.tgtVar < v && e.srcVar == v:
			known = assignment[e.tgtVar]
			dir = flip(e.dir) // v -(dir)-> known in the pattern, so look up the opposite side from known
		default:
			continue
		}

		typeID := e.typeID
		next := m.index.neighborsLocked(known, &typeID, dir, m.asOf)

		if !haveCandidates {
			candidates = next
			haveCandidates = true
		} else {
			candidates = intersect(candidates, next)
		}

		if len(candidates) == 0 {
			return
		}
	}

	if !haveCandidates {
		// v has no pattern edge to an already-bound variable; checkConnected
		// should have prevented this, but guard anyway.
		return
	}

	for _, cand := range candidates {
		if _, dup := used[cand]; dup {
			continue
		}
		if m.index.isDeletedLocked(cand) {
			continue
		}

		assignment[v] = cand
		bound[v] = true
		used[cand] = struct{}{}

		m.backtrack(v+1, assignment, bound, used, results)

		delete(used, cand)
		bound[v] = false
	}
}

// flip returns the opposite direction.
func flip(d Direction) Direction {
	if d == Outgoing {
		return Incoming
	}
	return Outgoing
}

// intersect returns the elements of a that also appear in b, via a hash
// set, per spec §4.D ("edge-type intersection is by hash set; for small
// fan-outs a linear scan is acceptable" — the set buys us the general case
// without needing two code paths).
func intersect(a, b []uint32) []uint32 {
	set := make(map[uint32]struct{}, len(b))
	for _, x := range b {
		set[x] = struct{}{}
	}
	out := make([]uint32, 0, len(a))
	for _, x := range a {
		if _, ok := set[x]; ok {
			out = append(out, x)
		}
	}
	return out
}
