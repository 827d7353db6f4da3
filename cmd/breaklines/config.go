package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/generic"
	"github.com/npillmayer/textformat/marker"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// envPrefix prefixes every environment variable read by breaklines.
const envPrefix = "BREAKLINES"

// envConfig holds settings taken from the environment.
type envConfig struct {
	Width      int     `envconfig:"WIDTH"`
	EmSize     float64 `envconfig:"EM_SIZE" default:"13"`
	Family     string  `envconfig:"FAMILY" default:"Fixed"`
	TraceLevel string  `envconfig:"TRACE_LEVEL" default:"error"`
	Color      bool    `envconfig:"COLOR" default:"true"`
}

// styleFile holds paragraph properties read from a YAML file, e.g.
//
//	align: justify
//	wrap: overflow
//	indent: 14
//	marker: lower-roman
//	tabs: [28, 56]
type styleFile struct {
	Align           string    `yaml:"align"`
	Wrap            string    `yaml:"wrap"`
	Direction       string    `yaml:"direction"`
	Indent          float64   `yaml:"indent"`
	ParagraphIndent float64   `yaml:"paragraph-indent"`
	LineHeight      float64   `yaml:"line-height"`
	IncrementalTab  float64   `yaml:"incremental-tab"`
	Tabs            []float64 `yaml:"tabs"`
	Marker          string    `yaml:"marker"`
	MarkerOffset    float64   `yaml:"marker-offset"`
}

func loadStyleFile(path string) (*styleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style file: %w", err)
	}
	style := &styleFile{}
	if err := yaml.Unmarshal(data, style); err != nil {
		return nil, fmt.Errorf("parsing style file %s: %w", path, err)
	}
	return style, nil
}

type options struct {
	width      int
	emSize     float64
	family     string
	marker     string
	startIndex int
	wrap       string
	align      string
	styleFile  string
	html       bool
	traceLevel string
	color      bool
	style      styleFile
}

// load merges settings: flags set on the command line override the
// environment, which overrides the style file and defaults.
func (opts *options) load(cmd *cobra.Command) error {
	var env envConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	flags := cmd.Flags()
	if !flags.Changed("width") {
		opts.width = env.Width
	}
	if !flags.Changed("em-size") {
		opts.emSize = env.EmSize
	}
	if !flags.Changed("family") {
		opts.family = env.Family
	}
	opts.traceLevel = env.TraceLevel
	opts.color = env.Color
	if opts.styleFile != "" {
		style, err := loadStyleFile(opts.styleFile)
		if err != nil {
			return err
		}
		opts.style = *style
		if !flags.Changed("align") && style.Align != "" {
			opts.align = style.Align
		}
		if !flags.Changed("wrap") && style.Wrap != "" {
			opts.wrap = style.Wrap
		}
		if !flags.Changed("marker") && style.Marker != "" {
			opts.marker = style.Marker
		}
	}
	if opts.emSize <= 0 {
		return &textformat.ArgumentError{Param: "em-size", Reason: "must be positive"}
	}
	if opts.width < 0 {
		return &textformat.ArgumentError{Param: "width", Reason: "must not be negative"}
	}
	return nil
}

// paragraphProperties creates the properties of the paragraph with list
// index index.
func (opts *options) paragraphProperties(index int) (*generic.ParagraphProperties, error) {
	align, err := parseAlignment(opts.align)
	if err != nil {
		return nil, err
	}
	wrapping, err := parseWrapping(opts.wrap)
	if err != nil {
		return nil, err
	}
	dir := textformat.LeftToRight
	if opts.style.Direction == "rtl" {
		dir = textformat.RightToLeft
	}
	var tabs []textformat.TabStop
	for _, loc := range opts.style.Tabs {
		tabs = append(tabs, textformat.TabStop{Location: loc})
	}
	props := generic.NewParagraphProperties(dir, align, true, false,
		generic.Plain(opts.family, opts.emSize), wrapping,
		opts.style.LineHeight, opts.style.Indent, opts.style.ParagraphIndent,
		opts.style.IncrementalTab, tabs, nil)
	if opts.marker == "" || opts.marker == marker.None.String() {
		return props, nil
	}
	ms, err := marker.ParseStyle(opts.marker)
	if err != nil {
		return nil, err
	}
	offset := opts.style.MarkerOffset
	if offset <= 0 {
		offset = 2 * opts.emSize
	}
	mp, err := marker.NewProperties(ms, offset, index, props)
	if err != nil {
		return nil, err
	}
	return props.WithMarker(mp), nil
}

// cellWidth is the width of a console cell for the configured em-size.
func (opts *options) cellWidth() float64 {
	return fixedAdvance * opts.emSize / fixedEmSize
}

// Advance of the fixed face at its natural size.
const (
	fixedAdvance = 7.0
	fixedEmSize  = 13.0
)

func parseAlignment(name string) (textformat.TextAlignment, error) {
	switch strings.ToLower(name) {
	case "", "left":
		return textformat.AlignLeft, nil
	case "right":
		return textformat.AlignRight, nil
	case "center":
		return textformat.AlignCenterText, nil
	case "justify":
		return textformat.AlignJustify, nil
	}
	return textformat.AlignLeft, &textformat.ArgumentError{Param: "align", Reason: fmt.Sprintf("unknown alignment %q", name)}
}

func parseWrapping(name string) (textformat.TextWrapping, error) {
	switch strings.ToLower(name) {
	case "", "wrap":
		return textformat.Wrap, nil
	case "nowrap":
		return textformat.NoWrap, nil
	case "overflow":
		return textformat.WrapWithOverflow, nil
	}
	return textformat.Wrap, &textformat.ArgumentError{Param: "wrap", Reason: fmt.Sprintf("unknown wrapping %q", name)}
}

// setupTracing routes tracing output to the standard logger.
func setupTracing(level string) {
	gtrace.CoreTracer = gologadapter.New()
	switch strings.ToLower(level) {
	case "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	case "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	default:
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}
}
