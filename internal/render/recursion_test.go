package render

import (
	"strings"
	"testing"
)

// nestRFC822 wraps innermost depth times in message/rfc822 containers and
// puts the result in a top-level message/rfc822 message, so the chain has
// depth+1 containers, exercising the recursion cap.
func nestRFC822(depth int, innermost []byte) []byte {
	data := innermost
	for i := 0; i < depth; i++ {
		var b strings.Builder
		b.WriteString("Content-Type: message/rfc822\r\n\r\n")
		b.Write(data)
		data = []byte(b.String())
	}
	var top strings.Builder
	top.WriteString("From: sender@example.com\r\nTo: rcpt@example.com\r\nSubject: nested\r\n")
	top.WriteString("Content-Type: message/rfc822\r\n\r\n")
	top.Write(data)
	return []byte(top.String())
}

// TestRecursionCapDoesNotStackOverflow exercises a chain of 32 nested
// message/rfc822 containers, past the configured cap of 30; the subtree
// below the cap is simply dropped and rendering completes normally rather
// than failing.
func TestRecursionCapDoesNotStackOverflow(t *testing.T) {
	leaf := []byte("Content-Type: text/plain\r\n\r\ndeeply nested body")
	raw := nestRFC822(31, leaf)

	out, err := RenderMessage(raw, true, DefaultLimits())
	if err != nil {
		t.Fatalf("RenderMessage should not fail on recursion overflow: %v", err)
	}
	if out == "" {
		t.Fatalf("expected a JSON document even when the deepest subtree is dropped")
	}
}

func TestPreviewTruncatedTo512(t *testing.T) {
	raw := buildEML(map[string]string{
		"From":         "sender@example.com",
		"To":           "rcpt@example.com",
		"Subject":      "long",
		"Content-Type": "text/plain; charset=utf-8",
	}, strings.Repeat("word ", 300))

	out, err := RenderMessage(raw, true, DefaultLimits())
	if err != nil {
		t.Fatalf("RenderMessage: %v", err)
	}
	idx := strings.Index(out, `"preview":"`)
	if idx < 0 {
		t.Fatalf("no preview field in %q", out)
	}
	rest := out[idx+len(`"preview":"`):]
	end := strings.Index(rest, `"`)
	if end > 512 {
		t.Fatalf("preview exceeds 512 characters: %d", end)
	}
}
