package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mzawadzki/ordpipe"
	"github.com/mzawadzki/ordpipe/chunk"
	"github.com/mzawadzki/ordpipe/docx"
	"github.com/mzawadzki/ordpipe/fs"
	"github.com/mzawadzki/ordpipe/gemini"
	"github.com/mzawadzki/ordpipe/goquery"
	"github.com/mzawadzki/ordpipe/pdf"
	"github.com/mzawadzki/ordpipe/rod"
	"github.com/mzawadzki/ordpipe/scrape"
	ordslog "github.com/mzawadzki/ordpipe/slog"
	"github.com/mzawadzki/ordpipe/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the passage store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ordpipe"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ordpipe --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	if cmd == "scrape" {
		fetcher, err := rod.NewFetcher(cli.Scrape.Headless, rod.WithLogger(logger))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		deps.Scraper = &scrape.Orchestrator{
			Fetcher:   rod.NewLoggingFetcher(fetcher, logger),
			Extractor: goquery.NewExtractor(),
			Records:   fs.NewWriter(cli.Scrape.Output),
			Logger:    logger,
			Config: scrape.Config{
				Delay: time.Duration(cli.Scrape.Delay) * time.Second,
			},
		}
	}

	if cmd == "ingest" || cmd == "ask" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set ORDPIPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.DB = m.DB

		store := sqlite.NewPassageStore(m.DB)
		store.Logger = logger
		deps.Store = ordslog.NewLoggingVectorStore(store, logger)
		deps.Embedder = ordslog.NewLoggingEmbedder(gemini.NewEmbedder(client), logger)

		if cmd == "ingest" {
			deps.Loader = &fs.DirLoader{
				Loaders: map[string]ordpipe.DocumentLoader{
					".pdf":  pdf.NewLoader(),
					".docx": docx.NewLoader(),
				},
				Logger: logger,
			}
			deps.Chunker = &chunk.Chunker{}
		}

		if cmd == "ask" {
			deps.Asker = gemini.NewAsker(client, deps.Embedder, deps.Store)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("ORDPIPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ordpipe.db"
	}
	dir := filepath.Join(home, ".ordpipe")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ordpipe.db")
}
