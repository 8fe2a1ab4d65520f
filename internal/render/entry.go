package render

import (
	"bytes"
	"net/mail"
	"sync"

	"github.com/rotisserie/eris"
)

var (
	initMu      sync.Mutex
	initialized bool
)

// Init performs one-time library initialization. It is idempotent and must
// be called before the first RenderMessage/ExtractPart call.
func Init() {
	initMu.Lock()
	defer initMu.Unlock()
	initialized = true
}

// Shutdown tears down global state. It is idempotent.
func Shutdown() {
	initMu.Lock()
	defer initMu.Unlock()
	initialized = false
}

// RenderMessage is get_json: parse data as an RFC 5322 message, run the
// part collector, and compose the JSON document. An error return means the
// input could not be opened/parsed; it is the caller's responsibility to
// log and translate that into a null/failure result at whatever boundary
// embeds this package (CLI, HTTP handler, ...).
func RenderMessage(data []byte, includeContent bool, limits Limits) (string, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return "", eris.Wrap(err, "render: parse message")
	}

	st := Collect(msg, limits)
	out, err := Jsonify(msg, st, includeContent, limits)
	if err != nil {
		return "", eris.Wrap(err, "render: jsonify message")
	}
	return string(out), nil
}

// ExtractPart is get_part_data: parse data, run the part extractor for
// partID/contentType, and return its raw decoded bytes. A (nil, nil) return
// means the part was not found, not that the input failed to parse.
func ExtractPart(data []byte, partID int, contentType string, limits Limits) ([]byte, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "render: parse message")
	}
	return Extract(msg, partID, contentType, limits), nil
}
