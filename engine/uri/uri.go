// Package uri classifies the URIs found on glTF buffers and images into inline payloads
// (base64 data URIs, decoded here) and external references (left for the caller to fetch).
package uri

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gltf/engine/codec"
)

// ErrUnsupportedDataURI is returned for data URIs whose media type or encoding is not one of
// the recognized prefixes.
var ErrUnsupportedDataURI = errors.New("unsupported data URI")

// Kind identifies what a URI refers to.
type Kind int

const (
	// KindExternalReference is a path or URL resolved by the caller.
	KindExternalReference Kind = iota
	// KindInlineBytes is a data URI whose payload has been decoded.
	KindInlineBytes
)

func (k Kind) String() string {
	switch k {
	case KindExternalReference:
		return "external"
	case KindInlineBytes:
		return "inline"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Data is the classification result for a single URI.
type Data struct {
	// Kind tells which of the fields below is populated.
	Kind Kind

	// Bytes holds the decoded payload for KindInlineBytes.
	Bytes []byte

	// MimeType is the media type declared by the data URI (empty for external references).
	MimeType string

	// Path is the raw, unresolved URI for KindExternalReference.
	Path string
}

const dataScheme = "data:"

// recognizedPrefixes lists every data URI header this package decodes.
var recognizedPrefixes = []struct {
	prefix   string
	mimeType string
}{
	{prefix: "data:application/octet-stream;base64,", mimeType: "application/octet-stream"},
	{prefix: "data:image/jpeg;base64,", mimeType: "image/jpeg"},
	{prefix: "data:image/png;base64,", mimeType: "image/png"},
}

// IsDataURI reports whether s uses the data: scheme.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, dataScheme)
}

// Classify inspects a URI and either decodes its inline payload or returns it as an
// external reference.
//
// Parameters:
//   - s: the URI exactly as written in the document
//
// Returns:
//   - Data: the classification result
//   - error: ErrUnsupportedDataURI for unrecognized data URIs, codec.ErrMalformedBase64 for bad payloads
func Classify(s string) (Data, error) {
	if !IsDataURI(s) {
		return Data{Kind: KindExternalReference, Path: s}, nil
	}

	for _, p := range recognizedPrefixes {
		payload, ok := strings.CutPrefix(s, p.prefix)
		if !ok {
			continue
		}
		b, err := codec.Decode(payload)
		if err != nil {
			return Data{}, fmt.Errorf("%s data URI: %w", p.mimeType, err)
		}
		return Data{Kind: KindInlineBytes, Bytes: b, MimeType: p.mimeType}, nil
	}

	return Data{}, fmt.Errorf("%w: %s", ErrUnsupportedDataURI, header(s))
}

// header returns the part of a data URI before the payload, for error messages.
func header(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[:i]
	}
	return TrimForDebug(s)
}

// TrimForDebug shortens long URIs (typically data URIs) for logs and String methods.
func TrimForDebug(s string) string {
	const limit = 30
	if len(s) > limit {
		return fmt.Sprintf("%s.., total length: %d", s[:limit], len(s))
	}
	return s
}
