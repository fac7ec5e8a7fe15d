package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quackgraph/quackgraph/pkg/graph"
)

// buildTriangle creates a 3-node cycle a -rel-> b -rel-> c -rel-> a, the
// canonical fixture for the triangle pattern-match scenario.
func buildTriangle(t *testing.T, g *graph.Index) {
	t.Helper()
	require.NoError(t, g.AddEdge("a", "b", "rel", nil, nil))
	require.NoError(t, g.AddEdge("b", "c", "rel", nil, nil))
	require.NoError(t, g.AddEdge("c", "a", "rel", nil, nil))
}

// TestMatchPatternTransitiveTriangleYieldsSingleMatch is spec §8 scenario
// 6: a DAG A->B, B->C, A->C against pattern (0->1),(1->2),(0->2) with all
// three nodes offered as start candidates for variable 0. Unlike the
// rotationally-symmetric 3-cycle in TestMatchPatternFindsTriangle, only A
// satisfies all three edges as var 0, so exactly one match is expected.
func TestMatchPatternTransitiveTriangleYieldsSingleMatch(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("A", "B", "rel", nil, nil))
	require.NoError(t, g.AddEdge("B", "C", "rel", nil, nil))
	require.NoError(t, g.AddEdge("A", "C", "rel", nil, nil))

	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 1, EdgeType: "rel", Dir: graph.Outgoing},
		{SrcVar: 1, TgtVar: 2, EdgeType: "rel", Dir: graph.Outgoing},
		{SrcVar: 0, TgtVar: 2, EdgeType: "rel", Dir: graph.Outgoing},
	}

	results, err := g.MatchPattern([]string{"A", "B", "C"}, pattern, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "C"}}, results)
}

func TestMatchPatternFindsTriangle(t *testing.T) {
	g := graph.New()
	buildTriangle(t, g)

	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 1, EdgeType: "rel", Dir: graph.Outgoing},
		{SrcVar: 1, TgtVar: 2, EdgeType: "rel", Dir: graph.Outgoing},
		{SrcVar: 2, TgtVar: 0, EdgeType: "rel", Dir: graph.Outgoing},
	}

	results, err := g.MatchPattern([]string{"a", "b", "c"}, pattern, nil)
	require.NoError(t, err)
	assert.Len(t, results, 3) // one match rooted at each of a, b, c
	assert.Contains(t, results, []string{"a", "b", "c"})
}

func TestMatchPatternInjectivityRejectsSelfLoop(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "a", "rel", nil, nil)) // self-loop
	require.NoError(t, g.AddEdge("a", "b", "rel", nil, nil))
	require.NoError(t, g.AddEdge("a", "c", "rel", nil, nil))

	// Pattern requires two DISTINCT variables both reachable from var 0 via
	// "rel" — var 0's self-loop candidate (itself) must never bind to var 1
	// or var 2 as well, by injectivity, and no result may bind var 1 and
	// var 2 to the same node.
	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 1, EdgeType: "rel", Dir: graph.Outgoing},
		{SrcVar: 0, TgtVar: 2, EdgeType: "rel", Dir: graph.Outgoing},
	}

	results, err := g.MatchPattern([]string{"a"}, pattern, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	for _, row := range results {
		assert.NotEqual(t, row[0], row[1])
		assert.NotEqual(t, row[0], row[2])
		assert.NotEqual(t, row[1], row[2])
	}
}

func TestMatchPatternRejectsSelfReferentialEdge(t *testing.T) {
	g := graph.New()
	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 0, EdgeType: "rel", Dir: graph.Outgoing},
	}

	_, err := g.MatchPattern([]string{"a"}, pattern, nil)
	assert.ErrorIs(t, err, graph.ErrIllFormedPattern)
}

func TestMatchPatternRejectsDisconnectedVariable(t *testing.T) {
	g := graph.New()
	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 1, EdgeType: "rel", Dir: graph.Outgoing},
		{SrcVar: 2, TgtVar: 3, EdgeType: "rel", Dir: graph.Outgoing}, // var 2 never bound to 0 or 1
	}

	_, err := g.MatchPattern([]string{"a"}, pattern, nil)
	assert.ErrorIs(t, err, graph.ErrIllFormedPattern)
}

func TestMatchPatternUnknownEdgeTypeIsEmptyNotError(t *testing.T) {
	g := graph.New()
	buildTriangle(t, g)

	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 1, EdgeType: "nope", Dir: graph.Outgoing},
	}

	results, err := g.MatchPattern([]string{"a"}, pattern, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchPatternEmptyStartCandidatesIsEmpty(t *testing.T) {
	g := graph.New()
	buildTriangle(t, g)

	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 1, EdgeType: "rel", Dir: graph.Outgoing},
	}

	results, err := g.MatchPattern([]string{"ghost"}, pattern, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchPatternRespectsTemporalFilter(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", "rel", msPtr(1), msPtr(2)))

	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 1, EdgeType: "rel", Dir: graph.Outgoing},
	}

	inWindow, err := g.MatchPattern([]string{"a"}, pattern, ptr(1500))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, inWindow)

	outOfWindow, err := g.MatchPattern([]string{"a"}, pattern, ptr(2500))
	require.NoError(t, err)
	assert.Empty(t, outOfWindow)
}

func TestMatchPatternSkipsTombstonedNodes(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", "rel", nil, nil))
	g.RemoveNode("b")

	pattern := []graph.PatternEdge{
		{SrcVar: 0, TgtVar: 1, EdgeType: "rel", Dir: graph.Outgoing},
	}

	results, err := g.MatchPattern([]string{"a"}, pattern, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestMatchPatternEmptyPatternYieldsSingletonPerStart covers an empty
// pattern (numVars would be 0 from the edge loop alone): MatchPattern must
// not panic, and should return one singleton match per live, resolvable
// start candidate — mirroring the original matcher sizing variable 0 as
// max_var+1 == 1 rather than 0.
func TestMatchPatternEmptyPatternYieldsSingletonPerStart(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", "rel", nil, nil))

	results, err := g.MatchPattern([]string{"a", "b", "ghost"}, []graph.PatternEdge{}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]string{{"a"}, {"b"}}, results)
}
