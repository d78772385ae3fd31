package research

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// extractParagraphs parses an HTML document and returns the text content of
// each <p> element, whitespace-normalized. A parse failure returns nothing;
// the caller treats the page as empty.
func extractParagraphs(body []byte) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			text := normalizeWhitespace(nodeText(n))
			if text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return paragraphs
}

// nodeText concatenates all text nodes under n, skipping script and style
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
