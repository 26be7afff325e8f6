package main

import (
	"fmt"

	"github.com/mzawadzki/ordpipe"
	"github.com/mzawadzki/ordpipe/chunk"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	docs, err := deps.Loader.LoadDir(deps.Ctx, c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ordpipe.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no supported documents found in %q\n", c.Dir)
		return ordpipe.Errorf(ordpipe.ENOTFOUND, "no supported documents in %q", c.Dir)
	}
	fmt.Fprintf(deps.Stdout, "Loaded %d documents from %s\n", len(docs), c.Dir)

	passages, err := deps.Chunker.ChunkAll(deps.Ctx, docs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ordpipe.ErrorMessage(err))
		return err
	}
	unique := chunk.Deduplicate(passages)
	fmt.Fprintf(deps.Stdout, "Chunked into %d passages (%d after deduplication)\n",
		len(passages), len(unique))

	for _, p := range unique {
		vector, err := deps.Embedder.Embed(deps.Ctx, p.Text)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ordpipe.ErrorMessage(err))
			return err
		}
		p.Embedding = vector
	}

	if err := deps.Store.Upsert(deps.Ctx, unique); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ordpipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d passages\n", len(unique))
	return nil
}
