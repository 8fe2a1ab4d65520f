package render

import (
	"io"
	"net/mail"
	"strings"
)

// CollectedPart is one classified MIME leaf.
type CollectedPart struct {
	PartID      int
	ContentType string
	// Content is the post-filter bytes for text-branch leaves, the raw
	// decoded bytes for everything else.
	Content     []byte
	ContentID   string
	Filename    string
	Disposition string
}

// PartCollectorState is the transient accumulator for one collector
// traversal: at most one text body and one html body, plus the ordered
// alternative/inline/attachment sequences.
type PartCollectorState struct {
	limits Limits

	TextBody          *CollectedPart
	HTMLBody          *CollectedPart
	AlternativeBodies []CollectedPart
	Inlines           []CollectedPart
	Attachments       []CollectedPart
}

// Collect runs the part collector over msg's MIME tree.
func Collect(msg *mail.Message, limits Limits) *PartCollectorState {
	st := &PartCollectorState{limits: limits}
	partID := 0
	_ = walkMessage(msg, 0, &partID, limits, st.collectLeaf)
	return st
}

func (st *PartCollectorState) collectLeaf(id int, meta partMeta, decoded io.Reader) error {
	if meta.Missing {
		// Content type missing: skip the leaf; the walker advances the part
		// id after this returns either way.
		return nil
	}

	part := CollectedPart{
		PartID:      id,
		ContentType: meta.MediaType,
		ContentID:   meta.ContentID,
		Filename:    meta.Filename,
		Disposition: meta.Disposition,
	}

	isAttachmentDisposition := meta.Disposition == "attachment"
	isText := strings.HasPrefix(meta.MediaType, "text/")

	if !isAttachmentDisposition && isText {
		subtype := strings.TrimPrefix(meta.MediaType, "text/")
		isNewText := st.TextBody == nil && subtype == "plain"
		isNewHTML := st.HTMLBody == nil && (subtype == "html" || subtype == "enriched" || subtype == "rtf")

		data, err := io.ReadAll(decoded)
		if err != nil {
			return nil
		}

		chain := buildFilterChain(meta, isNewText, isNewHTML, subtype)
		data = chain.apply(data)

		if len(data) == 0 {
			// Empty post-filter content: discard the candidate, do not
			// record it as an alternative.
			return nil
		}
		part.Content = data

		switch {
		case isNewText:
			st.TextBody = &part
		case isNewHTML:
			st.HTMLBody = &part
		default:
			st.AlternativeBodies = append(st.AlternativeBodies, part)
		}
		return nil
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil
	}
	part.Content = data

	if strings.EqualFold(meta.Disposition, "inline") {
		st.Inlines = append(st.Inlines, part)
	} else {
		// Unknown or missing disposition on a non-text leaf defaults to
		// attachment, matching the error-handling policy for that case.
		st.Attachments = append(st.Attachments, part)
	}
	return nil
}
