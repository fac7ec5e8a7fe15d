package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quackgraph/quackgraph/pkg/graph"
	"github.com/quackgraph/quackgraph/pkg/graphconfig"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read-only queries against a snapshot",
	}
	cmd.AddCommand(newQueryTraverseCmd())
	cmd.AddCommand(newQueryTraverseRecursiveCmd())
	cmd.AddCommand(newQueryMatchCmd())
	return cmd
}

func addTraverseFlags(cmd *cobra.Command) {
	cmd.Flags().String("sources", "", "comma-separated source node IDs")
	cmd.Flags().String("type", "", "edge type label (omit for any type)")
	cmd.Flags().String("dir", "out", "direction: out or in")
	cmd.Flags().Int64("as-of", 0, "as-of timestamp, microseconds (omit --as-of to mean currently-live)")
	cmd.MarkFlagRequired("sources")
}

func parseDirFlag(cmd *cobra.Command) (graph.Direction, error) {
	dir, _ := cmd.Flags().GetString("dir")
	switch strings.ToLower(dir) {
	case "out", "outgoing":
		return graph.Outgoing, nil
	case "in", "incoming":
		return graph.Incoming, nil
	default:
		return 0, fmt.Errorf("invalid --dir %q, want out or in", dir)
	}
}

func parseAsOfFlag(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("as-of") {
		return nil
	}
	v, _ := cmd.Flags().GetInt64("as-of")
	return &v
}

func parseTypeFlag(cmd *cobra.Command) *string {
	t, _ := cmd.Flags().GetString("type")
	if t == "" {
		return nil
	}
	return &t
}

func parseSourcesFlag(cmd *cobra.Command) ([]string, error) {
	raw, _ := cmd.Flags().GetString("sources")
	if raw == "" {
		return nil, fmt.Errorf("--sources is required")
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func newQueryTraverseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traverse",
		Short: "Single-hop traversal from a set of sources",
		RunE:  runQueryTraverse,
	}
	addTraverseFlags(cmd)
	return cmd
}

func runQueryTraverse(cmd *cobra.Command, args []string) error {
	sources, err := parseSourcesFlag(cmd)
	if err != nil {
		return err
	}
	dir, err := parseDirFlag(cmd)
	if err != nil {
		return err
	}

	cfg := graphconfig.LoadFromEnv()
	g, err := openIndex(resolveSnapshotPath(cfg))
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}

	results := g.Traverse(sources, parseTypeFlag(cmd), dir, parseAsOfFlag(cmd))
	return printJSON(results)
}

func newQueryTraverseRecursiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traverse-recursive",
		Short: "Bounded BFS traversal from a set of sources",
		RunE:  runQueryTraverseRecursive,
	}
	addTraverseFlags(cmd)
	cmd.Flags().Int("min-depth", 1, "minimum admitted depth")
	cmd.Flags().Int("max-depth", 1, "maximum admitted depth")
	return cmd
}

func runQueryTraverseRecursive(cmd *cobra.Command, args []string) error {
	sources, err := parseSourcesFlag(cmd)
	if err != nil {
		return err
	}
	dir, err := parseDirFlag(cmd)
	if err != nil {
		return err
	}
	minDepth, _ := cmd.Flags().GetInt("min-depth")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")

	cfg := graphconfig.LoadFromEnv()
	g, err := openIndex(resolveSnapshotPath(cfg))
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}

	results := g.TraverseRecursive(sources, parseTypeFlag(cmd), dir, minDepth, maxDepth, parseAsOfFlag(cmd))
	return printJSON(results)
}

// patternEdgeJSON mirrors graph.PatternEdge's JSON shape, since PatternEdge
// itself carries no struct tags.
type patternEdgeJSON struct {
	SrcVar   int    `json:"src_var"`
	TgtVar   int    `json:"tgt_var"`
	EdgeType string `json:"edge_type"`
	Dir      string `json:"dir"`
}

func newQueryMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Subgraph pattern match over a set of start candidates",
		Long: `match reads a JSON array of pattern edges from --pattern, shaped like:

  [{"src_var":0,"tgt_var":1,"edge_type":"knows","dir":"out"}]

and returns every injective binding of the pattern's variables rooted at
one of --starts, as a JSON array of string arrays (one row per match,
indexed by variable number).`,
		RunE: runQueryMatch,
	}
	cmd.Flags().String("starts", "", "comma-separated candidate node IDs for variable 0")
	cmd.Flags().String("pattern", "", "path to a JSON file describing the pattern edges")
	cmd.Flags().Int64("as-of", 0, "as-of timestamp, microseconds (omit --as-of to mean currently-live)")
	cmd.MarkFlagRequired("starts")
	cmd.MarkFlagRequired("pattern")
	return cmd
}

func runQueryMatch(cmd *cobra.Command, args []string) error {
	startsRaw, _ := cmd.Flags().GetString("starts")
	if startsRaw == "" {
		return fmt.Errorf("--starts is required")
	}
	starts := strings.Split(startsRaw, ",")
	for i := range starts {
		starts[i] = strings.TrimSpace(starts[i])
	}

	patternPath, _ := cmd.Flags().GetString("pattern")
	data, err := os.ReadFile(patternPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", patternPath, err)
	}

	var rawEdges []patternEdgeJSON
	if err := json.Unmarshal(data, &rawEdges); err != nil {
		return fmt.Errorf("parsing %s: %w", patternPath, err)
	}

	pattern := make([]graph.PatternEdge, len(rawEdges))
	for i, e := range rawEdges {
		dir := graph.Outgoing
		switch strings.ToLower(e.Dir) {
		case "", "out", "outgoing":
			dir = graph.Outgoing
		case "in", "incoming":
			dir = graph.Incoming
		default:
			return fmt.Errorf("pattern edge %d: invalid dir %q", i, e.Dir)
		}
		pattern[i] = graph.PatternEdge{
			SrcVar: e.SrcVar, TgtVar: e.TgtVar, EdgeType: e.EdgeType, Dir: dir,
		}
	}

	cfg := graphconfig.LoadFromEnv()
	g, err := openIndex(resolveSnapshotPath(cfg))
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}

	results, err := g.MatchPattern(starts, pattern, parseAsOfFlag(cmd))
	if err != nil {
		return fmt.Errorf("matching pattern: %w", err)
	}
	return printJSON(results)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
