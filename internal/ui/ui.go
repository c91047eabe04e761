package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UI writes crawler status lines: info to stdout, warnings and
// per-source failure reports to stderr.
type UI struct {
	Out          io.Writer
	Err          io.Writer
	ColorEnabled bool

	out    *termenv.Output
	errOut *termenv.Output
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	return &UI{
		Out:          out,
		Err:          err,
		ColorEnabled: shouldEnableColor(output, mode, disableColor),
		out:          output,
		errOut:       errOutput,
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Infof(format string, args ...any) {
	u.emit(u.out, u.Out, "4", format, args...)
}

func (u *UI) Warnf(format string, args ...any) {
	u.emit(u.errOut, u.Err, "3", format, args...)
}

func (u *UI) Errorf(format string, args ...any) {
	u.emit(u.errOut, u.Err, "1", format, args...)
}

func (u *UI) emit(output *termenv.Output, w io.Writer, color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = output.String(msg).Foreground(output.Color(color)).String()
	}
	fmt.Fprintln(w, msg)
}

// FailureReport warns about failed sources under a "k of n sources
// returned results" header. total is the number of sources attempted;
// a nil or empty failures map prints nothing.
func (u *UI) FailureReport(total int, failures map[string]error) {
	if len(failures) == 0 {
		return
	}

	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)

	u.Warnf("%d of %d sources returned results:", total-len(failures), total)
	for _, name := range names {
		u.Warnf("  %s: %v", name, failures[name])
	}
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
