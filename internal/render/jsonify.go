package render

import (
	"bytes"
	"encoding/json"
	"net/mail"

	"golang.org/x/net/html"
)

type bodyJSON struct {
	Size    int    `json:"size"`
	Preview string `json:"preview"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

type attachmentJSON struct {
	Type        string `json:"type"`
	Disposition string `json:"disposition,omitempty"`
	PartID      int    `json:"partId"`
	Filename    string `json:"filename"`
	Size        int    `json:"size"`
}

type messageJSON struct {
	MessageID   *string          `json:"messageId"`
	From        *Address         `json:"from,omitempty"`
	ReplyTo     []Address        `json:"replyTo,omitempty"`
	To          []Address        `json:"to,omitempty"`
	Cc          []Address        `json:"cc,omitempty"`
	Bcc         []Address        `json:"bcc,omitempty"`
	Subject     *string          `json:"subject"`
	Date        *string          `json:"date"`
	InReplyTo   *string          `json:"inReplyTo"`
	References  *string          `json:"references"`
	Text        *bodyJSON        `json:"text,omitempty"`
	HTML        *bodyJSON        `json:"html,omitempty"`
	Attachments []attachmentJSON `json:"attachments,omitempty"`
}

// Jsonify composes the final JSON document: headers, and — iff
// includeContent — the text/html body sections and the aggregated
// attachments list.
func Jsonify(msg *mail.Message, st *PartCollectorState, includeContent bool, limits Limits) ([]byte, error) {
	h := msg.Header
	out := messageJSON{}

	if v := Trim(h.Get("Message-Id")); v != "" {
		out.MessageID = &v
	}
	out.From = parseFirstAddress(h.Get("From"))
	out.ReplyTo = parseAddressList(h.Get("Reply-To"))
	out.To = parseAddressList(h.Get("To"))
	out.Cc = parseAddressList(h.Get("Cc"))
	out.Bcc = parseAddressList(h.Get("Bcc"))
	if v := Trim(decodeHeaderValue(h.Get("Subject"))); v != "" {
		out.Subject = &v
	}
	if v := Trim(h.Get("Date")); v != "" {
		out.Date = &v
	}
	if v := Trim(h.Get("In-Reply-To")); v != "" {
		out.InReplyTo = &v
	}
	if v := Trim(h.Get("References")); v != "" {
		out.References = &v
	}

	if includeContent {
		if st.TextBody != nil {
			out.Text = buildBodyJSON(st.TextBody, nil, limits)
		}
		if st.HTMLBody != nil {
			out.HTML = buildBodyJSON(st.HTMLBody, st.Inlines, limits)
		}
		out.Attachments = buildAttachments(st)
	}

	return json.Marshal(out)
}

// buildBodyJSON parses a body's filtered content as HTML, textizes it for
// the preview and sanitizes it for content. Both the text and html bodies
// take this path: the text body's filter chain already turned it into
// HTML-ish markup (br tags, links, citation spans).
func buildBodyJSON(part *CollectedPart, inlines []CollectedPart, limits Limits) *bodyJSON {
	tree, err := html.Parse(bytes.NewReader(part.Content))

	var preview, content string
	if err == nil {
		preview = Textize(tree)
		content = Sanitize(tree, inlines, limits)
	} else {
		preview = string(part.Content)
		content = EscapeText(string(part.Content))
	}
	preview = truncateRunes(preview, limits.MaxPreviewLength)

	return &bodyJSON{
		Size:    len(part.Content),
		Preview: preview,
		Content: content,
		Type:    part.ContentType,
	}
}

func buildAttachments(st *PartCollectorState) []attachmentJSON {
	var out []attachmentJSON
	for _, p := range st.Attachments {
		out = append(out, toAttachmentJSON(p, "_attachment_", "_unnamed_attachment"))
	}
	for _, p := range st.Inlines {
		out = append(out, toAttachmentJSON(p, "_inline_", "_unnamed_inline_content"))
	}
	for _, p := range st.AlternativeBodies {
		out = append(out, toAttachmentJSON(p, "_alt_", "_unnamed_alt_content"))
	}
	return out
}

func toAttachmentJSON(p CollectedPart, cidPrefix, unnamedBase string) attachmentJSON {
	filename := p.Filename
	if filename == "" {
		ext := extensionFor(p.ContentType)
		if p.ContentID != "" {
			filename = cidPrefix + p.ContentID + "." + ext
		} else {
			filename = unnamedBase + "." + ext
		}
	}
	return attachmentJSON{
		Type:        p.ContentType,
		Disposition: p.Disposition,
		PartID:      p.PartID,
		Filename:    filename,
		Size:        len(p.Content),
	}
}
