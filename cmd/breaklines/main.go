/*
Breaklines breaks paragraphs of text into lines and prints them to the
console.

	breaklines [flags] [file]

Text is read from file or, if no file is given, from stdin. Paragraphs are
separated by blank lines. With --html, every paragraph is read as an HTML
fragment, and inline elements like <b> or <i> style the text.

Configuration is taken from flags, which override environment variables
(BREAKLINES_WIDTH, BREAKLINES_EM_SIZE, BREAKLINES_FAMILY,
BREAKLINES_TRACE_LEVEL, BREAKLINES_COLOR), which override defaults.
Paragraph properties may be read from a YAML style file.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "breaklines [file]",
		Short: "Break paragraphs of text into lines",
		Long: `Breaklines formats paragraphs of text into lines of a given width, using
the line-breaking engine of package textformat, and prints the lines to the console.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(cmd); err != nil {
				return err
			}
			return run(cmd, args, opts)
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.width, "width", "w", 0, "line width in console cells (default: terminal width)")
	flags.Float64Var(&opts.emSize, "em-size", 13, "em-size of the text")
	flags.StringVar(&opts.family, "family", "Fixed", "font family of the text")
	flags.StringVar(&opts.marker, "marker", "", "list marker style (disc, circle, square, decimal, lower-roman, …)")
	flags.IntVar(&opts.startIndex, "start-index", 1, "number of the first list item")
	flags.StringVar(&opts.wrap, "wrap", "wrap", "text wrapping: wrap, nowrap or overflow")
	flags.StringVar(&opts.align, "align", "left", "text alignment: left, right, center or justify")
	flags.StringVar(&opts.styleFile, "style-file", "", "YAML file with paragraph properties")
	flags.BoolVar(&opts.html, "html", false, "read paragraphs as HTML fragments")
	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "breaklines version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		},
	}
}
