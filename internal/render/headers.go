package render

import (
	"fmt"
	"io"
	"mime"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// headerDecoder decodes RFC 2047 encoded words. It leans on the RFC2047
// leniency the original C core turns on at init: unsupported or malformed
// encodings fall back to the raw header value instead of failing the parse.
var headerDecoder = &mime.WordDecoder{
	CharsetReader: func(charset string, input io.Reader) (io.Reader, error) {
		cs := strings.ToLower(strings.TrimSpace(charset))
		if cs == "" || cs == "utf-8" || cs == "us-ascii" || cs == "ascii" {
			return input, nil
		}
		enc, err := htmlindex.Get(cs)
		if err != nil {
			return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
		}
		return transform.NewReader(input, enc.NewDecoder()), nil
	},
}

func decodeHeaderValue(raw string) string {
	if raw == "" {
		return raw
	}
	decoded, err := headerDecoder.DecodeHeader(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func charsetConvertStep(charset string) func([]byte) []byte {
	return func(data []byte) []byte {
		cs := strings.ToLower(strings.TrimSpace(charset))
		if cs == "" || cs == "utf-8" || cs == "us-ascii" || cs == "ascii" {
			return data
		}
		enc, err := htmlindex.Get(cs)
		if err != nil || enc == nil {
			return data
		}
		converted, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return data
		}
		return converted
	}
}

// normalizeCID strips the angle brackets and surrounding whitespace from a
// Content-ID (or a cid: reference's remainder) for map/equality lookups.
func normalizeCID(cid string) string {
	cid = Trim(cid)
	if strings.HasPrefix(cid, "<") && strings.HasSuffix(cid, ">") && len(cid) >= 2 {
		cid = Trim(cid[1 : len(cid)-1])
	}
	return cid
}

var extensionByContentType = map[string]string{
	"text/plain":    "txt",
	"text/html":     "html",
	"text/rtf":      "rtf",
	"text/enriched": "etf",
	"text/calendar": "ics",
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/pjpeg":   "pjpg",
	"image/gif":     "gif",
	"image/png":     "png",
	"image/x-png":   "png",
	"image/bmp":     "bmp",
}

func extensionFor(contentType string) string {
	if ext, ok := extensionByContentType[strings.ToLower(contentType)]; ok {
		return ext
	}
	return "txt"
}

// truncateRunes truncates s to at most n runes, respecting UTF-8 boundaries.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
