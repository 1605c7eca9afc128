// Package enginelog provides the engine's structured logger: a thin
// charmbracelet/log wrapper with an additional human-readable
// timestamp field built from lestrrat-go/strftime, in the style the
// teacher repo stamps packet log lines.
package enginelog

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

const stampPattern = "%Y-%m-%d %H:%M:%S"

// New returns a logger writing to w at the given level. Pass nil for w
// to log to stderr.
func New(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return l
}

// Stamp formats t as "YYYY-MM-DD HH:MM:SS" for log fields that
// annotate wall-clock time alongside the logger's own timestamp, as
// beepdemo does on its startup line.
func Stamp(t time.Time) string {
	formatted, err := strftime.Format(stampPattern, t)
	if err != nil {
		return t.String()
	}
	return formatted
}
