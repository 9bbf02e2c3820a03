package importer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/accessor"
	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/resolver"
)

// Import is a loaded document together with the bytes of its buffers and its decoded images.
type Import struct {
	// Name comes from the default scene, falling back to the file name in ImportFile.
	Name string

	Document *gltf.Document
	Resolver resolver.Resolver

	// Buffers holds the bytes of every buffer, indexed like Document.Buffers.
	Buffers [][]byte

	// Images holds decoded pixels indexed like Document.Images; entries are nil when decoding was skipped.
	Images []*common.DecodedImage

	// Materials are the document's materials with texture slots resolved to images.
	Materials []common.ImportedMaterial

	bufferLoader BufferLoader
}

// Reader returns a typed accessor reader over the imported buffers.
//
// Returns:
//   - accessor.Reader: the reader
func (im *Import) Reader() accessor.Reader {
	return accessor.NewReader(im.Resolver, im.Buffers)
}

// AttributeBytes returns the raw (buffer, offset, length) range the resolver reports for an accessor.
// The returned slice aliases the buffer; use Reader for interleaved views.
//
// Parameters:
//   - accessorIndex: the index of the accessor
//
// Returns:
//   - []byte: the accessor's byte range
//   - error: error if the accessor cannot be resolved
func (im *Import) AttributeBytes(accessorIndex int) ([]byte, error) {
	s, err := im.Resolver.Attribute(accessorIndex)
	if err != nil {
		return nil, err
	}
	return im.sliceBytes(s)
}

// ImageBytes returns the encoded bytes of an image and its media type.
// External images are read through the importer's BufferLoader; the media type then falls back
// to the file extension.
//
// Parameters:
//   - imageIndex: the index of the image
//
// Returns:
//   - []byte: the encoded image
//   - string: the media type, or "" when unknown
//   - error: error if the image source cannot be resolved or read
func (im *Import) ImageBytes(imageIndex int) ([]byte, string, error) {
	src, err := im.Resolver.ImageSourceAt(imageIndex)
	if err != nil {
		return nil, "", err
	}

	switch src.Kind {
	case resolver.SourceBytes:
		return src.Bytes, src.MimeType, nil
	case resolver.SourceSlice:
		data, err := im.sliceBytes(src.Slice)
		if err != nil {
			return nil, "", fmt.Errorf("image %d: %w", imageIndex, err)
		}
		return data, src.MimeType, nil
	default:
		if im.bufferLoader == nil {
			return nil, "", fmt.Errorf("image %d: no buffer loader for %q", imageIndex, src.Path)
		}
		data, err := im.bufferLoader.LoadBuffer(src.Path)
		if err != nil {
			return nil, "", fmt.Errorf("image %d: %w", imageIndex, err)
		}
		return data, common.Coalesce(src.MimeType, mimeTypeFromPath(src.Path)), nil
	}
}

func (im *Import) sliceBytes(s resolver.Slice) ([]byte, error) {
	if s.Buffer >= len(im.Buffers) {
		return nil, fmt.Errorf("buffer %d: %w", s.Buffer, accessor.ErrMissingBufferData)
	}
	return s.From(im.Buffers[s.Buffer])
}
