// Package markup converts tafsir commentary HTML into plain text.
//
// Two modes are provided. Structural mode splits the body into the text
// of its heading and paragraph elements, in document order, for backends
// that index tagged fragments. PlainText mode flattens the whole body
// into one blob with block boundaries as newlines, for backends that
// chunk a single file themselves.
package markup

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Structural returns the text content of every <h1>, <h2> and <p>
// element in document order. Elements with no textual content are
// dropped silently. A nil result is returned for empty input or input
// with no recognised structural elements.
func Structural(fragment string) []string {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}

	doc, err := xhtml.Parse(strings.NewReader(fragment))
	if err != nil {
		// The x/net parser recovers from almost anything; a hard error
		// means there is nothing worth extracting.
		return nil
	}

	var parts []string
	walkStructural(doc, &parts)
	return parts
}

// walkStructural collects heading and paragraph text. Other elements
// are transparent: their children are still visited, but their own
// loose text is not collected.
func walkStructural(n *xhtml.Node, parts *[]string) {
	if n.Type == xhtml.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		case atom.H1, atom.H2, atom.P:
			if text := collectText(n); text != "" {
				*parts = append(*parts, text)
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkStructural(c, parts)
	}
}

// collectText extracts all text from a node subtree, space-joined.
func collectText(n *xhtml.Node) string {
	var sb strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == xhtml.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// Pre-compiled expressions for plain-text stripping.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockClose    = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table)>`)
	blockOpen     = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table)[^>]*>`)
	brTags        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// PlainText strips all markup and returns one flat blob with block
// boundaries converted to newlines. Empty input yields "".
func PlainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	content := scriptTag.ReplaceAllString(fragment, "")
	content = styleTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Block boundaries become line breaks.
	content = blockOpen.ReplaceAllString(content, "\n")
	content = blockClose.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	// Trim lines and drop the empty ones.
	lines := strings.Split(content, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
