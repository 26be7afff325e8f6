package main

import (
	"context"
	"io"

	"github.com/mzawadzki/ordpipe"
	"github.com/mzawadzki/ordpipe/chunk"
	"github.com/mzawadzki/ordpipe/fs"
	"github.com/mzawadzki/ordpipe/scrape"
	"github.com/mzawadzki/ordpipe/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Scraper  *scrape.Orchestrator
	Loader   *fs.DirLoader
	Chunker  *chunk.Chunker
	Embedder ordpipe.Embedder
	Store    ordpipe.VectorStore
	Asker    ordpipe.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape ordinance pages and write JSON/CSV/summary outputs"`
	Ingest IngestCmd `cmd:"" help:"Load documents from a directory, chunk, embed, and store them"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about the stored ordinances"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Output   string `short:"o" default:"scraped_data" help:"Output directory"`
	Delay    int    `default:"3" help:"Seconds to wait between page requests"`
	Headless bool   `default:"true" negatable:"" help:"Run the browser headless"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Dir string `arg:"" help:"Directory of source documents (.pdf, .docx)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the ordinances"`
}
