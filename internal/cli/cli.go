// Package cli implements the netmap command-line interface: an
// interactive viewer (view) and a headless generation/animation report
// (report). Logging goes through charmbracelet/log; --verbose switches
// it to debug level.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the netmap CLI and returns the first command error.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "netmap",
		Short:        "netmap renders an interactive 3D network map",
		Long:         "netmap procedurally generates a field of animated particles around a set of labeled module nodes and renders it as an interactive 3D map.",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newViewCmd(&verbose))
	root.AddCommand(newReportCmd(&verbose))
	return root.Execute()
}

// newLogger builds the shared logger. Timestamps are formatted as
// "HH:MM:SS.ms".
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
