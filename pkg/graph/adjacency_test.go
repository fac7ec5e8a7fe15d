package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quackgraph/quackgraph/pkg/graph"
)

// ptr builds a microsecond timestamp pointer, for Traverse/TraverseRecursive/
// MatchPattern's as-of parameter and for raw columnar BatchRow fields —
// both take microseconds directly.
func ptr(v int64) *int64 { return &v }

// msPtr builds a millisecond timestamp pointer for AddEdge's validFrom/
// validTo parameters, which are multiplied by 1000 internally.
func msPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func TestAddEdgeCreatesMirroredRecords(t *testing.T) {
	g := graph.New()

	err := g.AddEdge("alice", "bob", "knows", msPtr(1), msPtr(2))
	require.NoError(t, err)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())

	out := g.Traverse([]string{"alice"}, strPtr("knows"), graph.Outgoing, ptr(1500))
	assert.Equal(t, []string{"bob"}, out)

	in := g.Traverse([]string{"bob"}, strPtr("knows"), graph.Incoming, ptr(1500))
	assert.Equal(t, []string{"alice"}, in)
}

func TestAddEdgeConvertsMillisToMicros(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", "rel", msPtr(1), msPtr(2)))

	// 1ms/2ms become 1000us/2000us: admitted just inside the window, not at
	// or past its upper bound.
	assert.Equal(t, []string{"b"}, g.Traverse([]string{"a"}, nil, graph.Outgoing, ptr(1999)))
	assert.Empty(t, g.Traverse([]string{"a"}, nil, graph.Outgoing, ptr(2000)))
}

func TestGetOrCreateNodeClearsTombstone(t *testing.T) {
	g := graph.New()

	g.RemoveNode("alice")
	id1 := g.GetOrCreateNode("alice")

	require.NoError(t, g.AddEdge("alice", "bob", "knows", nil, nil))

	out := g.Traverse([]string{"alice"}, nil, graph.Outgoing, nil)
	assert.Equal(t, []string{"bob"}, out)
	assert.Equal(t, uint32(0), id1) // alice was the first interned string
}

func TestRemoveNodeHidesIncidentEdges(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("alice", "bob", "knows", nil, nil))

	g.RemoveNode("bob")

	out := g.Traverse([]string{"alice"}, nil, graph.Outgoing, nil)
	assert.Empty(t, out)
}

func TestRemoveEdgeIsNoOpOnUnknownEndpoints(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("alice", "bob", "knows", nil, nil))

	g.RemoveEdge("alice", "carol", "knows") // carol never existed

	out := g.Traverse([]string{"alice"}, nil, graph.Outgoing, nil)
	assert.Equal(t, []string{"bob"}, out)
}

func TestRemoveEdgeTombstonesAllTemporalVersions(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("alice", "bob", "knows", msPtr(0), msPtr(100)))
	require.NoError(t, g.AddEdge("alice", "bob", "knows", msPtr(200), msPtr(300)))

	g.RemoveEdge("alice", "bob", "knows")

	assert.Empty(t, g.Traverse([]string{"alice"}, nil, graph.Outgoing, ptr(50000)))
	assert.Empty(t, g.Traverse([]string{"alice"}, nil, graph.Outgoing, ptr(250000)))
}

func TestEdgeCountCountsLogicalEdgesOnce(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("alice", "bob", "knows", nil, nil))
	require.NoError(t, g.AddEdge("bob", "carol", "knows", nil, nil))

	assert.Equal(t, 2, g.EdgeCount())
}

func TestAddEdgeRejectsTooManyEdgeTypes(t *testing.T) {
	g := graph.New()
	for i := 0; i < 256; i++ {
		require.NoError(t, g.AddEdge("a", "b", label(i), nil, nil))
	}
	err := g.AddEdge("a", "b", "one_too_many", nil, nil)
	assert.ErrorIs(t, err, graph.ErrTooManyEdgeTypes)
}

func label(i int) string {
	return string(rune('a'+(i%26))) + string(rune('A'+((i/26)%26)))
}
