package render

import (
	"io"
	"net/mail"
	"strings"
)

// PartExtractorState is the transient state for a single-part retrieval: a
// countdown copy of the target part id, decremented at every leaf visited
// (regardless of whether it matches), plus the target content type and a
// captured byte slice once found.
type PartExtractorState struct {
	countdown  int
	targetType string
	data       []byte
	found      bool
}

// Extract runs the part extractor over msg's MIME tree, using the exact
// same pre-order leaf walk as Collect so a part id means the same leaf in
// both. Returns nil if no leaf at partID matches contentType.
func Extract(msg *mail.Message, partID int, contentType string, limits Limits) []byte {
	st := &PartExtractorState{countdown: partID, targetType: strings.ToLower(strings.TrimSpace(contentType))}
	id := 0
	_ = walkMessage(msg, 0, &id, limits, st.extractLeaf)
	if !st.found {
		return nil
	}
	return st.data
}

func (st *PartExtractorState) extractLeaf(_ int, meta partMeta, decoded io.Reader) error {
	if !st.found && st.countdown == 0 && meta.MediaType == st.targetType {
		data, err := io.ReadAll(decoded)
		if err == nil {
			st.data = data
			st.found = true
		}
	}
	st.countdown--
	return nil
}
