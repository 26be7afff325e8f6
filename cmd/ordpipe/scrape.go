package main

import (
	"fmt"

	"github.com/mzawadzki/ordpipe"
	"github.com/mzawadzki/ordpipe/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Scraper.Run(deps.Ctx, scrape.KnownChapters())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ordpipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d sections (%d pages failed or were empty)\n",
		len(result.Records), len(result.FailedURLs))
	fmt.Fprintf(deps.Stdout, "Outputs written to %s\n", c.Output)
	return nil
}
