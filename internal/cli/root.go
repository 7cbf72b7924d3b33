// Package cli provides the Cobra command structure for mkforge.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmittal27/mkforge/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mkforge command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "mkforge",
		Short: "A dialect-aware Markdown parser and document inspector",
		Long: `mkforge parses Markdown into a document tree and reports on its structure.

It targets CommonMark and GitHub Flavored Markdown (GFM), selecting the
dialect by flavor name. mkforge can render parse trees, extract heading
outlines and link inventories, aggregate fence-language usage across a
documentation set, and re-parse on file changes in watch mode.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Flag parse failures are usage errors, not internal ones.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newFlavorsCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
