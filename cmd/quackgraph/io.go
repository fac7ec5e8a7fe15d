package main

import (
	"errors"
	"os"

	"github.com/quackgraph/quackgraph/pkg/graph"
)

// openIndex loads the index at path, or returns a fresh empty one if the
// file does not exist yet — the CLI's convention for "first run" parity
// with `nornicdb init` creating an empty store rather than erroring.
func openIndex(path string) (*graph.Index, error) {
	g := graph.New()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return g, nil
	}

	if err := g.LoadSnapshot(path); err != nil {
		return nil, err
	}
	return g, nil
}
