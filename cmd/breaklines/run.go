package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/textformat/breakpoint"
	"github.com/npillmayer/textformat/lineservices"
	"github.com/npillmayer/textformat/lineservices/simple"
	"github.com/npillmayer/textformat/styled"
	"github.com/npillmayer/textformat/styled/formatter"
	"github.com/npillmayer/textformat/styled/inline"
	"github.com/npillmayer/uax/bidi"
	"github.com/npillmayer/uax/uax11"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func run(cmd *cobra.Command, args []string, opts *options) error {
	setupTracing(opts.traceLevel)
	in := cmd.InOrStdin()
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	paragraphs, err := readParagraphs(in)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	config := opts.formatConfig(out)
	device := formatter.NewConsoleFixedWidthFormat(&formatter.PlainCodes, nil)
	if opts.color && isTerminal(out) {
		device = formatter.NewConsoleFixedWidthFormat(nil, nil)
	} else {
		color.NoColor = true
	}
	backend := simple.New(simple.Options{})
	for i, p := range paragraphs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := opts.formatParagraph(backend, p, opts.startIndex+i, out, config, device); err != nil {
			return fmt.Errorf("paragraph %d: %w", i+1, err)
		}
	}
	return nil
}

// formatConfig creates the formatter configuration. Without a line width
// set, the width of the terminal is used.
func (opts *options) formatConfig(out io.Writer) *formatter.Config {
	var config *formatter.Config
	if opts.width == 0 && isTerminal(out) {
		config = formatter.ConfigFromTerminal()
	} else {
		config = &formatter.Config{LineWidth: opts.width, Context: uax11.ContextFromEnvironment()}
		if config.LineWidth == 0 {
			config.LineWidth = 65
		}
	}
	config.CellWidth = opts.cellWidth()
	config.Direction = bidi.LeftToRight
	if opts.style.Direction == "rtl" {
		config.Direction = bidi.RightToLeft
	}
	return config
}

func (opts *options) formatParagraph(backend lineservices.Backend, p string, index int,
	out io.Writer, config *formatter.Config, device formatter.Device) error {
	//
	var text *styled.Text
	if opts.html {
		var err error
		if text, err = inline.TextFromHTML(strings.NewReader(p)); err != nil {
			return err
		}
	} else {
		text = styled.TextFromString(p)
	}
	if text.Len() == 0 {
		return nil
	}
	props, err := opts.paragraphProperties(index)
	if err != nil {
		return err
	}
	pc, err := breakpoint.NewParagraphCache(backend, text.Source(props), props, 0, 0)
	if err != nil {
		return err
	}
	defer pc.Close()
	lines, err := formatter.Format(pc, config)
	if err != nil {
		return err
	}
	para, err := styled.ParagraphFromText(text, 0, text.Len(), config.Direction, nil)
	if err != nil {
		return err
	}
	return formatter.Output(para, lines, out, config, device)
}

// readParagraphs splits input into paragraphs at blank lines. Lines within
// a paragraph are joined by a single space.
func readParagraphs(r io.Reader) ([]string, error) {
	var paragraphs []string
	var lines []string
	flush := func() {
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, " "))
			lines = lines[:0]
		}
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return paragraphs, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
