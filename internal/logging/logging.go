// Package logging builds the structured logger used for diagnostic output.
// User-facing progress messages go through the report package; the logger
// only carries debug detail and is quiet unless verbose mode is on.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/branding"
)

// New returns a logger writing to w. Verbose enables debug output;
// otherwise only warnings and errors are emitted.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          branding.CLIName(),
		Level:           level,
		ReportTimestamp: verbose,
	})
}

// NewForTest returns a logger that discards everything.
func NewForTest() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
