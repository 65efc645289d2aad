// Package cli implements the docxaur command-line interface.
//
// Two commands are provided:
//   - build: assemble a DOCX package from a TOML document description
//   - inspect: list the parts and relationships of an existing package
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version string displayed by --version. It is called
// by the main package with a value injected via ldflags at build time.
func SetVersion(v string) {
	version = v
}

// Execute runs the docxaur CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "docxaur",
		Short:        "DocXaur assembles DOCX packages from structured document descriptions",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newInspectCmd())

	return root.ExecuteContext(context.Background())
}
