package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/jobscout/internal/source"
)

type DetailsCmd struct {
	URL     string `arg:"" help:"Listing URL to fetch."`
	Raw     bool   `help:"Print the raw markup snippet when no description is found."`
	Timeout int    `help:"Fetch deadline in seconds." default:"30"`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBSCOUT_PROXIES"`
}

func (d *DetailsCmd) Run(ctx *Context) error {
	fetcher, err := newFetcher(ctx, SearchOptions{Proxies: d.Proxies})
	if err != nil {
		return err
	}
	detail := source.NewDetailFetcher(fetcher, ctx.Logger)

	fetchCtx, cancel := context.WithTimeout(context.Background(), time.Duration(d.Timeout)*time.Second)
	defer cancel()

	details, err := detail.FetchDetails(fetchCtx, d.URL)
	if err != nil {
		return err
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(details)
	}

	if details.Description != "" {
		_, err := fmt.Fprintln(ctx.Out, details.Description)
		return err
	}

	ctx.UI.Warnf("No description found at %s", d.URL)
	if d.Raw && strings.TrimSpace(details.Raw) != "" {
		_, err := fmt.Fprintln(ctx.Out, details.Raw)
		return err
	}
	return nil
}
