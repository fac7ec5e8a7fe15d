// Package main provides the quackgraph CLI entry point.
//
// This is the thin operator/debug driver noted in SPEC_FULL.md §6.2: it
// loads a pkg/graph.Index from a snapshot file, runs one operation against
// it, and (for mutating subcommands) writes the snapshot back. It is not a
// production host binding — there is no server loop, no concurrent request
// handling, just one process per invocation, the same shape as nornicdb's
// `init`/`import`/`shell` subcommands around its own core.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quackgraph/quackgraph/pkg/graphconfig"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// snapshotFlag holds the --snapshot override shared by every subcommand
// that reads the configured snapshot (all but `snapshot load`, which takes
// its path as an argument). Left empty, each such subcommand falls back to
// graphconfig.LoadFromEnv().SnapshotPath.
var snapshotFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "quackgraph",
		Short: "quackgraph - in-memory temporal property graph index",
		Long: `quackgraph indexes a temporal property graph in memory: typed,
interval-stamped edges over interned node and edge-type identifiers, with
bulk columnar ingestion, compaction, bounded BFS traversal, and backtracking
subgraph pattern matching.

This CLI is an operator tool for inspecting and driving a snapshot from a
terminal. Embedding quackgraph in a service means importing pkg/graph
directly, not shelling out to this binary.`,
	}

	rootCmd.PersistentFlags().StringVar(&snapshotFlag, "snapshot", "",
		"snapshot file path (default: QUACKGRAPH_SNAPSHOT_PATH or ./data/snapshot.json)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("quackgraph v%s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolveSnapshotPath returns the --snapshot override if set, otherwise the
// configured default.
func resolveSnapshotPath(cfg *graphconfig.Config) string {
	if snapshotFlag != "" {
		return snapshotFlag
	}
	return cfg.SnapshotPath
}
