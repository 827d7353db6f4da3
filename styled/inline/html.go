package inline

import (
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/styled"
	"golang.org/x/net/html"
)

// InnerText creates a styled text for the textual content of an HTML element and all
// its descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript, except that `InnerText` cannot respect CSS styling (including
// properties changing the visibility of the node's descendents).
// Therefore the resulting styled text is limited to inline span elements like
//
//	<strong> … </strong>
//	<i> … </i>
//
// etc. Clients should provide a paragraph-like element. Runs of white space
// are collapsed into a single space, <br> elements become line breaks.
func InnerText(n *html.Node) (*styled.Text, error) {
	if n == nil {
		return nil, textformat.ErrIllegalArguments
	}
	c := &collector{b: styled.NewTextBuilder(), space: true}
	c.collectText(n, PlainStyle)
	return c.b.Text(), nil
}

// TextFromHTML creates a styled.Text from the textual content of an HTML fragment.
// The HTML fragment should reflect the content of a paragraph-like element.
func TextFromHTML(input io.Reader) (*styled.Text, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	c := &collector{b: styled.NewTextBuilder(), space: true}
	for _, n := range nodes {
		c.collectText(n, PlainStyle)
	}
	return c.b.Text(), nil
}

type collector struct {
	b     *styled.TextBuilder
	space bool // last character appended was white space
}

func (c *collector) collectText(n *html.Node, style Style) {
	switch n.Type {
	case html.ElementNode:
		tracer().Debugf("styled inline text: collect text of <%s>", n.Data)
		switch n.Data {
		case "br":
			c.b.Append("\n", style)
			c.space = true
			return
		case "script", "style", "head":
			return
		}
		style = style.Add(StyleFromHTMLName(n.Data))
	case html.TextNode:
		if s := c.collapse(n.Data); s != "" {
			tracer().Debugf("styled inline text = %q (%v)", s, style)
			c.b.Append(s, style)
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.collectText(ch, style)
	}
}

// collapse replaces runs of white space by a single space, dropping white
// space which follows white space already collected.
func (c *collector) collapse(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !c.space {
				b.WriteByte(' ')
				c.space = true
			}
			continue
		}
		b.WriteRune(r)
		c.space = false
	}
	return b.String()
}
