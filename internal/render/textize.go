package render

import (
	"strings"

	"golang.org/x/net/html"
)

// Textize walks an HTML parse tree depth-first and returns plain text: each
// child's text is trimmed and non-empty pieces are joined with a single
// space; whitespace inside one text node is kept as is. script/style
// elements contribute nothing; comments,
// doctypes and other non-content node kinds contribute nothing. The
// function is pure: it never fails and never touches I/O.
func Textize(n *html.Node) string {
	if n == nil {
		return ""
	}

	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return ""
		}
	case html.DocumentNode:
		// falls through to child recursion below
	default:
		return ""
	}

	var acc strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child := strings.TrimSpace(Textize(c))
		if child == "" {
			continue
		}
		if acc.Len() > 0 {
			acc.WriteByte(' ')
		}
		acc.WriteString(child)
	}
	return acc.String()
}
