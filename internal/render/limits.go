// Package render implements the MIME-to-JSON rendering pipeline: traversing
// a message's MIME tree, classifying and filtering each leaf, parsing and
// sanitizing HTML bodies, and composing the final JSON document.
package render

// MinDataURIImage is the fixed 1x1 transparent GIF substituted for any
// cid: reference that cannot be resolved against the collected inlines.
const MinDataURIImage = "data:image/gif;base64,R0lGODlhAQABAAAAACwAAAAAAQABAAA="

// CitationColor is the color applied to quoted ("> ") lines by the
// plain-text-to-HTML filter.
const CitationColor = "#FF0000"

// Limits bounds the collector/extractor traversal and the inline-resource
// and preview sizes. The zero value is not useful; use DefaultLimits.
type Limits struct {
	MaxRecursionDepth     int
	MaxInlineDataURIBytes int
	MaxPreviewLength      int
}

// DefaultLimits returns the built-in limits: a recursion cap of 30 nested
// embedded messages, a 64KiB ceiling on cid: resources eligible for data
// URI inlining, and a 512-character preview length.
func DefaultLimits() Limits {
	return Limits{
		MaxRecursionDepth:     30,
		MaxInlineDataURIBytes: 65536,
		MaxPreviewLength:      512,
	}
}
