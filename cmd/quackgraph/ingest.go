package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quackgraph/quackgraph/pkg/graph"
	"github.com/quackgraph/quackgraph/pkg/graphconfig"
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Bulk-load a JSON-encoded batch of edges into the snapshot",
		Long: `ingest reads a JSON array of rows shaped like:

  [{"source_id":"a","target_id":"b","edge_type":"knows",
    "valid_from":1000,"valid_to":2000}]

(valid_from/valid_to are microseconds, omit or null for unbounded), loads
them via IngestBatch, compacts unless --no-compact is given or
QUACKGRAPH_COMPACT_ON_EXIT is false, and writes the result back to the
snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
	cmd.Flags().Bool("no-compact", false, "skip Compact() after ingestion")
	return cmd
}

// ingestRow mirrors graph.BatchRow's JSON shape with exported tags, since
// BatchRow itself carries no json struct tags (it is an in-process decoded
// form, not a wire format).
type ingestRow struct {
	SourceID  string `json:"source_id"`
	TargetID  string `json:"target_id"`
	EdgeType  string `json:"edge_type"`
	ValidFrom *int64 `json:"valid_from"`
	ValidTo   *int64 `json:"valid_to"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	file := args[0]
	noCompact, _ := cmd.Flags().GetBool("no-compact")

	cfg := graphconfig.LoadFromEnv()
	path := resolveSnapshotPath(cfg)

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	var rows []ingestRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	batch := make(graph.Batch, len(rows))
	for i, r := range rows {
		batch[i] = graph.BatchRow{
			SourceID:  r.SourceID,
			TargetID:  r.TargetID,
			EdgeType:  r.EdgeType,
			ValidFrom: r.ValidFrom,
			ValidTo:   r.ValidTo,
		}
	}

	g, err := openIndex(path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}

	if err := g.IngestBatch(batch); err != nil {
		return fmt.Errorf("ingesting %s: %w", file, err)
	}

	if !noCompact && cfg.CompactOnExit {
		g.Compact()
	}

	if err := g.SaveSnapshot(path); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	fmt.Printf("ingested %d rows into %s\n", len(batch), path)
	fmt.Printf("  nodes: %d  edges: %d\n", g.NodeCount(), g.EdgeCount())
	return nil
}
