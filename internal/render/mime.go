package render

import (
	"encoding/base64"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// partMeta describes one MIME leaf's envelope, mirroring the "leaf" node
// kind of the external MIME tree abstraction: content type plus
// parameters, disposition plus parameters, Content-ID, and filename.
type partMeta struct {
	MediaType   string
	Params      map[string]string
	Disposition string
	DispParams  map[string]string
	ContentID   string
	Filename    string
	// Missing is true when the part carried no Content-Type header at all,
	// distinct from one that parsed to the text/plain default.
	Missing bool
}

// leafFunc is invoked once per MIME leaf, in pre-order, with the leaf's
// 0-based part id (shared identically between the collector and the
// extractor) and a reader over its transfer-decoded bytes.
type leafFunc func(partID int, meta partMeta, decoded io.Reader) error

// walkMessage walks a parsed message's top-level body as the root of the
// MIME tree.
func walkMessage(msg *mail.Message, depth int, partID *int, limits Limits, visit leafFunc) error {
	h := msg.Header
	return walkPart(h.Get("Content-Type"), h.Get("Content-Transfer-Encoding"),
		h.Get("Content-Disposition"), h.Get("Content-ID"), msg.Body, depth, partID, limits, visit)
}

// walkPart dispatches on MIME node kind: SubMessage (message/rfc822)
// recurses into the embedded message bounded by the recursion cap; Partial
// (message/partial) is skipped and contributes zero leaves; Multipart
// descends into each child part; Leaf invokes visit and advances partID.
func walkPart(ctHeader, cteHeader, cdHeader, contentIDHeader string, body io.Reader, depth int, partID *int, limits Limits, visit leafFunc) error {
	mediaType, params, missing := parseContentType(ctHeader)
	disposition, dispParams := parseContentDisposition(cdHeader)
	filename := extractFilename(params, dispParams)

	switch {
	case mediaType == "message/rfc822":
		if depth >= limits.MaxRecursionDepth {
			log.Printf("render: recursion depth %d exceeded, aborting subtree", limits.MaxRecursionDepth)
			return nil
		}
		sub, err := mail.ReadMessage(decodeTransferEncoding(body, cteHeader))
		if err != nil {
			return nil
		}
		return walkMessage(sub, depth+1, partID, limits, visit)

	case mediaType == "message/partial":
		// Recognized and skipped; contributes zero leaves.
		return nil

	case strings.HasPrefix(mediaType, "multipart/"):
		boundary := params["boundary"]
		if boundary == "" {
			return nil
		}
		mr := multipart.NewReader(body, boundary)
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				break
			}
			err = walkPart(part.Header.Get("Content-Type"), part.Header.Get("Content-Transfer-Encoding"),
				part.Header.Get("Content-Disposition"), part.Header.Get("Content-ID"), part, depth, partID, limits, visit)
			part.Close()
			if err != nil {
				return err
			}
		}
		return nil

	default:
		meta := partMeta{
			MediaType:   mediaType,
			Params:      params,
			Disposition: disposition,
			DispParams:  dispParams,
			ContentID:   normalizeCID(contentIDHeader),
			Filename:    filename,
			Missing:     missing,
		}
		decoded := decodeTransferEncoding(body, cteHeader)
		id := *partID
		err := visit(id, meta, decoded)
		*partID++
		return err
	}
}

func parseContentType(raw string) (mediaType string, params map[string]string, missing bool) {
	if strings.TrimSpace(raw) == "" {
		return "text/plain", map[string]string{}, true
	}
	mt, p, err := mime.ParseMediaType(raw)
	if err != nil {
		return "text/plain", map[string]string{}, false
	}
	if p == nil {
		p = map[string]string{}
	}
	return strings.ToLower(mt), p, false
}

func parseContentDisposition(raw string) (disposition string, params map[string]string) {
	if strings.TrimSpace(raw) == "" {
		return "", map[string]string{}
	}
	d, p, err := mime.ParseMediaType(raw)
	if err != nil {
		return "", map[string]string{}
	}
	if p == nil {
		p = map[string]string{}
	}
	return strings.ToLower(d), p
}

func extractFilename(ctParams, dispParams map[string]string) string {
	name := dispParams["filename"]
	if name == "" {
		name = ctParams["name"]
	}
	if name == "" {
		return ""
	}
	return decodeHeaderValue(name)
}

func decodeTransferEncoding(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}
