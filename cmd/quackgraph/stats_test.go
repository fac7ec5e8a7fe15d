package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quackgraph/quackgraph/pkg/graph"
)

func TestRunStatsOnEmptySnapshotPathIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUACKGRAPH_SNAPSHOT_PATH", filepath.Join(dir, "missing.json"))

	cmd := newStatsCmd()
	require.NoError(t, cmd.Execute())
}

func TestRunStatsOnExistingSnapshot(t *testing.T) {
	dir := t.TempDir()
	snapshotPath := filepath.Join(dir, "snap.json")
	t.Setenv("QUACKGRAPH_SNAPSHOT_PATH", snapshotPath)

	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", "rel", nil, nil))
	require.NoError(t, g.SaveSnapshot(snapshotPath))

	cmd := newStatsCmd()
	require.NoError(t, cmd.Execute())
}
