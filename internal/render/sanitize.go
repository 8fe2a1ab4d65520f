package render

import (
	"encoding/base64"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

var defaultPermittedTags = strings.Fields(
	`a abbr acronym address area b bdo body big blockquote br button caption
	 center cite code col colgroup dd del dfn dir div dl dt em fieldset font
	 form h1 h2 h3 h4 h5 h6 hr i img input ins kbd label legend li map menu
	 ol optgroup option p pre q s samp select small span style strike strong
	 sub sup table tbody td textarea tfoot th thead u tr tt u ul var`)

var defaultPermittedAttributes = strings.Fields(
	`href src action style color bgcolor width height colspan rowspan
	 cellspacing cellpadding border align valign dir type`)

var defaultPermittedSchemes = strings.Fields(
	`ftp http https cid data irc mailto news gopher nntp telnet webcal xmpp callto feed`)

var protocolAttributes = toSet(strings.Fields(`href src action`))

var emptyTags = toSet(strings.Fields(`area br col hr img input`))

var specialHandlingTags = toSet(strings.Fields(`html body`))

var noEntitySubTags = toSet(strings.Fields(`style`))

var (
	allowListMu      sync.RWMutex
	permittedTags    = toSet(defaultPermittedTags)
	permittedAttrs   = toSet(defaultPermittedAttributes)
	permittedSchemes = toSet(defaultPermittedSchemes)
)

// ConfigureAllowLists replaces the sanitizer's permitted tag/attribute/
// scheme sets. A nil slice leaves the corresponding list at its current
// value (the built-in defaults, unless ConfigureAllowLists was already
// called). Intended to be called once, at startup, from internal/config.
func ConfigureAllowLists(tags, attributes, schemes []string) {
	allowListMu.Lock()
	defer allowListMu.Unlock()
	if tags != nil {
		permittedTags = toSet(tags)
	}
	if attributes != nil {
		permittedAttrs = toSet(attributes)
	}
	if schemes != nil {
		permittedSchemes = toSet(schemes)
	}
}

func allowLists() (tags, attrs, schemes map[string]struct{}) {
	allowListMu.RLock()
	defer allowListMu.RUnlock()
	return permittedTags, permittedAttrs, permittedSchemes
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[strings.ToLower(it)] = struct{}{}
	}
	return set
}

// schemeSeparator splits an attribute value into a leading scheme token and
// the rest, accepting the common obfuscations of a bare colon.
var schemeSeparator = regexp.MustCompile(`:|(&#0*58)|(&#x70)|(&#x0*3a)|(%|&#37;)3A`)

func splitScheme(v string) (scheme, rest string, ok bool) {
	loc := schemeSeparator.FindStringIndex(v)
	if loc == nil {
		return "", v, false
	}
	return v[:loc[0]], v[loc[1]:], true
}

// Sanitize walks an HTML parse tree and produces a safe HTML serialization:
// only permitted tags/attributes survive, protocol-bearing attributes are
// scheme-gated, and cid: references are inlined as data URIs against
// inlines (used for the html body only; pass nil for the text body).
func Sanitize(root *html.Node, inlines []CollectedPart, limits Limits) string {
	var buf strings.Builder
	sanitizeDocument(root, inlines, limits, &buf)
	return buf.String()
}

func sanitizeDocument(n *html.Node, inlines []CollectedPart, limits Limits, buf *strings.Builder) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			buf.WriteString(buildDoctype(c))
			buf.WriteByte('\n')
			continue
		}
		sanitizeNode(c, inlines, limits, false, buf)
	}
}

func sanitizeNode(n *html.Node, inlines []CollectedPart, limits Limits, verbatim bool, buf *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		if verbatim {
			buf.WriteString(n.Data)
		} else {
			buf.WriteString(EscapeText(n.Data))
		}
	case html.CommentNode:
		// comments are dropped
	case html.DoctypeNode:
		buf.WriteString(buildDoctype(n))
	case html.ElementNode:
		sanitizeElement(n, inlines, limits, buf)
	default:
		log.Printf("render: sanitizer skipping unknown node kind %v", n.Type)
	}
}

func buildDoctype(n *html.Node) string {
	var public, system string
	for _, a := range n.Attr {
		switch a.Key {
		case "public":
			public = a.Val
		case "system":
			system = a.Val
		}
	}
	if public != "" || system != "" {
		return fmt.Sprintf(`<!DOCTYPE %s PUBLIC "%s" "%s">`, n.Data, public, system)
	}
	return fmt.Sprintf("<!DOCTYPE %s>", n.Data)
}

func sanitizeElement(n *html.Node, inlines []CollectedPart, limits Limits, buf *strings.Builder) {
	tags, _, _ := allowLists()
	tag := strings.ToLower(n.Data)
	_, permitted := tags[tag]
	_, special := specialHandlingTags[tag]
	if tag == "" || (!permitted && !special) {
		return
	}

	attrs := serializeAttributes(n, tag, inlines, limits)
	if tag == "a" || tag == "form" {
		attrs += ` target="_blank"`
		if tag == "form" {
			attrs += ` onSubmit="return confirm('Are you sure you want to submit this form?');"`
		}
	}

	if _, empty := emptyTags[tag]; empty {
		buf.WriteString("<" + tag + attrs + "/>")
		return
	}

	_, noEntitySub := noEntitySubTags[tag]
	var inner strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sanitizeNode(c, inlines, limits, noEntitySub, &inner)
	}
	content := inner.String()

	if special {
		content = Trim(content)
		buf.WriteString("\n<" + tag + attrs + ">\n" + content + "\n</" + tag + ">\n")
		return
	}

	buf.WriteString("<" + tag + attrs + ">" + content + "</" + tag + ">")
}

func serializeAttributes(n *html.Node, tag string, inlines []CollectedPart, limits Limits) string {
	_, attrs, schemes := allowLists()
	_, noEntitySub := noEntitySubTags[tag]

	var buf strings.Builder
	for _, a := range n.Attr {
		name := strings.ToLower(a.Key)
		if _, ok := attrs[name]; !ok {
			continue
		}

		val := Trim(a.Val)
		if _, protocolBearing := protocolAttributes[name]; protocolBearing {
			scheme, rest, ok := splitScheme(val)
			scheme = strings.ToLower(Trim(scheme))
			if !ok {
				continue
			}
			if _, permittedScheme := schemes[scheme]; !permittedScheme {
				continue
			}
			if scheme == "cid" {
				val = resolveCID(rest, inlines, limits)
			}
		}

		if val == "" {
			buf.WriteString(" " + name)
			continue
		}

		out := val
		if !noEntitySub {
			out = EscapeAttr('"', val)
		}
		buf.WriteString(" " + name + `="` + out + `"`)
	}
	return buf.String()
}

// resolveCID looks up rawCID (the remainder after the "cid:" scheme) among
// inlines by case-insensitive Content-ID match. The first match wins. A
// match under the inline size cap becomes a data: URI of its exact bytes;
// anything else — no match, or a match too large — becomes the fixed
// fallback image, and the cid: value never reaches the output. The inline
// part itself is still listed among the message's attachments.
func resolveCID(rawCID string, inlines []CollectedPart, limits Limits) string {
	cid := normalizeCID(rawCID)
	for _, part := range inlines {
		if !strings.EqualFold(normalizeCID(part.ContentID), cid) {
			continue
		}
		if len(part.Content) >= limits.MaxInlineDataURIBytes {
			break
		}
		ct := part.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(part.Content)
	}
	return MinDataURIImage
}
