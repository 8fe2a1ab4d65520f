package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, s string) *html.Node {
	t.Helper()
	n, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return n
}

func TestTextizeCollapsesWhitespace(t *testing.T) {
	n := parseFragment(t, `<p>  Hello   <b>world</b>  </p>`)
	got := Textize(n)
	if got != "Hello world" {
		t.Fatalf("Textize: got %q", got)
	}
}

func TestTextizeSkipsScriptAndStyle(t *testing.T) {
	n := parseFragment(t, `<div><script>alert(1)</script><style>p{color:red}</style><p>ok</p></div>`)
	got := Textize(n)
	if got != "ok" {
		t.Fatalf("Textize should skip script/style, got %q", got)
	}
}

func TestTextizeIsTotalOnNil(t *testing.T) {
	if got := Textize(nil); got != "" {
		t.Fatalf("Textize(nil): got %q", got)
	}
}
