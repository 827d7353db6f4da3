package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textformat"
)

func TestReadParagraphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	input := "  Hello\nworld  \n\n\n Second\r\n one\n"
	paragraphs, err := readParagraphs(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Hello world", "Second one"}, paragraphs); diff != "" {
		t.Errorf("unexpected paragraphs (-want +got):\n%s", diff)
	}
}

func TestParseNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	if a, err := parseAlignment("Justify"); err != nil || a != textformat.AlignJustify {
		t.Errorf("expected justified alignment, have %v (%v)", a, err)
	}
	if w, err := parseWrapping("overflow"); err != nil || w != textformat.WrapWithOverflow {
		t.Errorf("expected wrapping with overflow, have %v (%v)", w, err)
	}
	if _, err := parseAlignment("diagonal"); err == nil {
		t.Errorf("expected unknown alignment to be rejected")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	t.Setenv("BREAKLINES_WIDTH", "5")
	t.Setenv("BREAKLINES_EM_SIZE", "26")
	dir := t.TempDir()
	styles := filepath.Join(dir, "style.yaml")
	writeFile(t, styles, "align: right\nwrap: overflow\nindent: 14\ntabs: [28, 56]\n")
	cmd := rootCmd()
	if err := cmd.ParseFlags([]string{"--width", "30", "--wrap", "nowrap", "--style-file", styles}); err != nil {
		t.Fatal(err)
	}
	opts := &options{}
	opts.width, _ = cmd.Flags().GetInt("width")
	opts.wrap, _ = cmd.Flags().GetString("wrap")
	opts.align, _ = cmd.Flags().GetString("align")
	opts.styleFile, _ = cmd.Flags().GetString("style-file")
	if err := opts.load(cmd); err != nil {
		t.Fatal(err)
	}
	if opts.width != 30 || opts.emSize != 26 {
		t.Errorf("expected width 30 from flag and em-size 26 from env, have %d/%.0f", opts.width, opts.emSize)
	}
	if opts.align != "right" || opts.wrap != "nowrap" {
		t.Errorf("expected align from style file and wrap from flag, have %s/%s", opts.align, opts.wrap)
	}
	if opts.cellWidth() != 14 {
		t.Errorf("expected cells to be 14 wide at em-size 26, are %.2f", opts.cellWidth())
	}
	props, err := opts.paragraphProperties(1)
	if err != nil {
		t.Fatal(err)
	}
	if props.Indent() != 14 || len(props.Tabs()) != 2 || props.TextWrapping() != textformat.NoWrap {
		t.Errorf("unexpected paragraph properties: indent %.0f, %d tabs, %v",
			props.Indent(), len(props.Tabs()), props.TextWrapping())
	}
}

func TestBreakLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	t.Setenv("BREAKLINES_COLOR", "false")
	input := filepath.Join(t.TempDir(), "input.txt")
	writeFile(t, input, "Hello\nworld\n\nSecond one\n")
	out := &bytes.Buffer{}
	cmd := rootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--width", "20", "--marker", "decimal", "--start-index", "3", input})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "3. Hello world\n\n4. Second one\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestBreakLinesRejectsUnknownMarker(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("Hello"))
	cmd.SetArgs([]string{"--width", "20", "--marker", "star"})
	if err := cmd.Execute(); err == nil {
		t.Errorf("expected unknown marker style to be rejected")
	}
}

func TestVersion(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := rootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "breaklines version dev") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
