package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jimezsa/jobscout/internal/config"
	"github.com/jimezsa/jobscout/internal/export"
	"github.com/jimezsa/jobscout/internal/fetch"
	"github.com/jimezsa/jobscout/internal/models"
	"github.com/jimezsa/jobscout/internal/network"
	"github.com/jimezsa/jobscout/internal/search"
	"github.com/jimezsa/jobscout/internal/source"
	"github.com/muesli/termenv"
)

type SearchCmd struct {
	Query   string `arg:"" help:"Search query."`
	Sources string `help:"Comma-separated list of sources (default: all)." default:"all"`
	SearchOptions
}

type SourceCmd struct {
	Query string `arg:"" help:"Search query."`
	SearchOptions
	Source string `kong:"-"`
}

type SearchOptions struct {
	Location string `help:"Job location." env:"JOBSCOUT_DEFAULT_LOCATION"`
	Limit    int    `help:"Maximum results per source." env:"JOBSCOUT_DEFAULT_LIMIT"`
	Remote   bool   `help:"Remote-only roles."`
	Deadline int    `help:"Overall search deadline in seconds."`
	Format   string `help:"Output format: csv, json, md, tsv." enum:",csv,json,md,tsv" default:""`
	Links    string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output   string `name:"output" short:"o" help:"Write output to a file."`
	Proxies  string `help:"Comma-separated proxy URLs." env:"JOBSCOUT_PROXIES"`
}

func (s *SearchCmd) Run(ctx *Context) error {
	orch, err := newOrchestrator(ctx, s.SearchOptions)
	if err != nil {
		return err
	}

	stopIndicator := startSearchIndicator(ctx)
	if stopIndicator != nil {
		defer stopIndicator()
	}

	req := search.Request{
		Query:    s.Query,
		Location: firstNonEmpty(s.Location, ctx.Config.DefaultLocation),
		Sources:  resolveSources(s.Sources, ctx.Config.Sources),
		Limit:    defaultInt(s.Limit, ctx.Config.DefaultLimit),
		Remote:   s.Remote,
	}

	searchCtx, cancel := searchContext(s.SearchOptions)
	defer cancel()
	result := orch.SearchAll(searchCtx, req)

	reportSourceFailures(ctx, result)

	jobs := flattenResult(result)
	if err := writeJobs(ctx, jobs, s.SearchOptions); err != nil {
		return err
	}

	printSearchSummary(ctx, result)
	return nil
}

func (s *SourceCmd) Run(ctx *Context) error {
	orch, err := newOrchestrator(ctx, s.SearchOptions)
	if err != nil {
		return err
	}

	stopIndicator := startSearchIndicator(ctx)
	if stopIndicator != nil {
		defer stopIndicator()
	}

	searchCtx, cancel := searchContext(s.SearchOptions)
	defer cancel()

	jobs, err := orch.SearchSingle(
		searchCtx,
		s.Source,
		s.Query,
		firstNonEmpty(s.Location, ctx.Config.DefaultLocation),
		defaultInt(s.Limit, ctx.Config.DefaultLimit),
	)
	if err != nil {
		return err
	}

	return writeJobs(ctx, jobs, s.SearchOptions)
}

// newOrchestrator wires the whole stack: proxies, client, governor,
// fetcher, source registry.
func newOrchestrator(ctx *Context, opts SearchOptions) (*search.Orchestrator, error) {
	fetcher, err := newFetcher(ctx, opts)
	if err != nil {
		return nil, err
	}

	registry := source.Registry(fetcher, ctx.Logger)
	return search.New(registry, ctx.Logger,
		search.WithLimits(ctx.Config.DefaultLimit, ctx.Config.MaxLimit),
	), nil
}

func newFetcher(ctx *Context, opts SearchOptions) (*fetch.Fetcher, error) {
	proxies, err := config.LoadProxies(opts.Proxies)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, ctx.Config.ProxyBanWindow())
		if err != nil {
			return nil, err
		}
	}

	client, err := network.NewClient(rotator, ctx.Config.Timeout())
	if err != nil {
		return nil, err
	}

	governor := fetch.NewGovernor(ctx.Config.RequestDelay())
	return fetch.NewFetcher(client, governor, ctx.Config.Timeout(), ctx.Logger), nil
}

// searchContext applies the caller's overall deadline; the
// orchestrator inherits it and records stragglers as timeouts.
func searchContext(opts SearchOptions) (context.Context, context.CancelFunc) {
	if opts.Deadline <= 0 {
		return context.Background(), func() {}
	}
	return context.WithTimeout(context.Background(), time.Duration(opts.Deadline)*time.Second)
}

func resolveSources(flagValue string, configured []string) []string {
	requested := source.NormalizeSources(strings.Split(flagValue, ","))
	if len(requested) == 1 && requested[0] == "all" {
		requested = nil
	}
	if len(requested) == 0 {
		requested = source.NormalizeSources(configured)
	}
	if len(requested) == 0 {
		return nil
	}
	return requested
}

func flattenResult(result search.Result) []models.Job {
	names := make([]string, 0, len(result.Sources))
	for name := range result.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var jobs []models.Job
	for _, name := range names {
		if res := result.Sources[name]; res.Err == nil {
			jobs = append(jobs, res.Listings...)
		}
	}
	return jobs
}

func reportSourceFailures(ctx *Context, result search.Result) {
	if ctx == nil || ctx.UI == nil {
		return
	}

	failures := make(map[string]error, result.Failed())
	for name, res := range result.Sources {
		if res.Err != nil {
			failures[name] = res.Err
		}
	}
	ctx.UI.FailureReport(len(result.Sources), failures)
}

func printSearchSummary(ctx *Context, result search.Result) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatSearchSummary(result))
}

func formatSearchSummary(result search.Result) string {
	names := make([]string, 0, len(result.Sources))
	for name := range result.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return "summary: listings=0 by_source=none"
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		res := result.Sources[name]
		if res.Err != nil {
			parts = append(parts, name+":error")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d", name, len(res.Listings)))
	}

	return fmt.Sprintf("summary: listings=%d by_source=%s", result.Total(), strings.Join(parts, ", "))
}

func writeJobs(ctx *Context, jobs []models.Job, opts SearchOptions) error {
	writer := ctx.Out
	if opts.Output != "" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	format, err := resolveFormat(ctx, opts, opts.Output)
	if err != nil {
		return err
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(opts.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteJobs(writer, jobs, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	})
}

func resolveFormat(ctx *Context, opts SearchOptions, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if opts.Format != "" {
		return parseFormat(opts.Format)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startSearchIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KSearching... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
