package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quackgraph/quackgraph/pkg/graphconfig"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print node and edge counts for the configured snapshot",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := graphconfig.LoadFromEnv()
	path := resolveSnapshotPath(cfg)

	g, err := openIndex(path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}

	fmt.Printf("snapshot: %s\n", path)
	fmt.Printf("  nodes: %d\n", g.NodeCount())
	fmt.Printf("  edges: %d\n", g.EdgeCount())
	return nil
}
