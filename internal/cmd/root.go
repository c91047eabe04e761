package cmd

import (
	"github.com/alecthomas/kong"
	"github.com/jimezsa/jobscout/internal/source"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version      VersionCmd `cmd:"" help:"Print version."`
	Config       ConfigCmd  `cmd:"" help:"Manage configuration."`
	Search       SearchCmd  `cmd:"" help:"Search job listings across sources."`
	LinkedIn     SourceCmd  `cmd:"" name:"linkedin" help:"Search LinkedIn."`
	Indeed       SourceCmd  `cmd:"" name:"indeed" help:"Search Indeed."`
	Glassdoor    SourceCmd  `cmd:"" name:"glassdoor" help:"Search Glassdoor."`
	ZipRecruiter SourceCmd  `cmd:"" name:"ziprecruiter" help:"Search ZipRecruiter."`
	Details      DetailsCmd `cmd:"" help:"Fetch the full description for a listing URL."`
	Proxies      ProxiesCmd `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{
		LinkedIn:     SourceCmd{Source: source.SourceLinkedIn},
		Indeed:       SourceCmd{Source: source.SourceIndeed},
		Glassdoor:    SourceCmd{Source: source.SourceGlassdoor},
		ZipRecruiter: SourceCmd{Source: source.SourceZipRecruiter},
	}
}
