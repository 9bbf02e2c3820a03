package resolver

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/uri"
)

// SourceKind identifies where the encoded bytes of an image live.
type SourceKind int

const (
	// SourceBytes is an inline data URI, already decoded.
	SourceBytes SourceKind = iota
	// SourceSlice is a range of a buffer, reached through a buffer view.
	SourceSlice
	// SourceExternalPath is a relative path or URL to be fetched by the caller.
	SourceExternalPath
)

func (k SourceKind) String() string {
	switch k {
	case SourceBytes:
		return "bytes"
	case SourceSlice:
		return "slice"
	case SourceExternalPath:
		return "external"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// ImageSource is the resolved location of an image's encoded bytes.
type ImageSource struct {
	Kind SourceKind

	// Bytes holds the decoded data URI payload for SourceBytes.
	Bytes []byte

	// Slice locates the bytes for SourceSlice.
	Slice Slice

	// Path is the unresolved URI for SourceExternalPath.
	Path string

	// MimeType comes from the image's mimeType field, falling back to the data URI media type.
	// Empty when neither is known.
	MimeType string
}

func (r *resolver) ImageSource(image *gltf.Image) (ImageSource, error) {
	src := ImageSource{}
	if image.MimeType != nil {
		src.MimeType = *image.MimeType
	}

	if image.URI != nil {
		data, err := uri.Classify(*image.URI)
		if err != nil {
			return ImageSource{}, err
		}
		switch data.Kind {
		case uri.KindInlineBytes:
			src.Kind = SourceBytes
			src.Bytes = data.Bytes
			if src.MimeType == "" {
				src.MimeType = data.MimeType
			}
		default:
			src.Kind = SourceExternalPath
			src.Path = data.Path
		}
		return src, nil
	}

	if image.BufferView != nil {
		s, err := r.BufferView(*image.BufferView)
		if err != nil {
			return ImageSource{}, err
		}
		src.Kind = SourceSlice
		src.Slice = s
		return src, nil
	}

	return ImageSource{}, ErrImageSourceMissing
}

func (r *resolver) ImageSourceAt(imageIndex int) (ImageSource, error) {
	img, err := r.doc.Image(imageIndex)
	if err != nil {
		return ImageSource{}, err
	}
	src, err := r.ImageSource(img)
	if err != nil {
		return ImageSource{}, fmt.Errorf("image %d: %w", imageIndex, err)
	}
	return src, nil
}
