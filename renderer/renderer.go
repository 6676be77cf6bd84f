// Package renderer formats projection results as markdown reports for the
// command line.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockledger"
)

// mdRenderer accumulates a markdown document.
type mdRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// date renders a date cell, using a dash for unknown dates.
func date(d stockledger.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

// mark renders a boolean cell.
func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
