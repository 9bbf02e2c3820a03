// Package resolver maps accessors, buffer views and images of a loaded glTF document onto the
// byte ranges that hold their data. It performs no I/O: results name a buffer index and a range
// the caller applies to bytes it has fetched itself.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#accessors
package resolver

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/uri"
)

// Slice locates a contiguous range of bytes inside one buffer.
// The data is bytes[Buffer][Offset : Offset+Length].
type Slice struct {
	Buffer int
	Offset int
	Length int
}

// End returns the exclusive end offset of the slice.
func (s Slice) End() int {
	return s.Offset + s.Length
}

// From returns the bytes of s inside data, the contents of buffer s.Buffer.
// It fails with ErrRangeOutOfBounds when data is shorter than the slice.
func (s Slice) From(data []byte) ([]byte, error) {
	if s.Offset < 0 || s.Length < 0 || s.End() > len(data) {
		return nil, fmt.Errorf("%w: [%d:%d] of %d bytes", ErrRangeOutOfBounds, s.Offset, s.End(), len(data))
	}
	return data[s.Offset:s.End()], nil
}

// resolver is the implementation of the Resolver interface.
type resolver struct {
	doc *gltf.Document
}

// Resolver defines the public-facing interface for locating attribute and image data.
// It only reads the document, so one Resolver may serve any number of goroutines.
type Resolver interface {
	// Attribute resolves an accessor to the byte range holding its elements.
	// The range covers Count tightly packed elements; interleaved (strided) views still report the
	// unstrided length, which is what the accessor package expects when reading with a stride.
	// The range must fit inside its buffer view: an accessor at byteOffset 8 with 288 bytes of
	// data needs a view at least 296 bytes long, otherwise ErrRangeOutOfBounds is returned.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - Slice: the buffer index, absolute offset and byte length
	//   - error: ErrSparseAccessorUnsupported, ErrMissingBufferView, gltf.ErrInvalidAccessorType,
	//     ErrRangeOutOfBounds or a *gltf.IndexOutOfRangeError
	Attribute(accessorIndex int) (Slice, error)

	// BufferView resolves a buffer view to its raw byte range.
	//
	// Parameters:
	//   - viewIndex: the index of the buffer view
	//
	// Returns:
	//   - Slice: the buffer index, offset and length of the view
	//   - error: ErrRangeOutOfBounds or a *gltf.IndexOutOfRangeError
	BufferView(viewIndex int) (Slice, error)

	// Buffer classifies the URI of a buffer.
	//
	// Parameters:
	//   - bufferIndex: the index of the buffer
	//
	// Returns:
	//   - uri.Data: decoded inline bytes or an external path
	//   - error: ErrGLBChunk when the buffer has no URI, otherwise a classification error
	Buffer(bufferIndex int) (uri.Data, error)

	// ImageSource determines where the encoded bytes of an image live.
	//
	// Parameters:
	//   - image: the image to resolve
	//
	// Returns:
	//   - ImageSource: inline bytes, a buffer slice or an external path
	//   - error: ErrImageSourceMissing or an error from URI classification / view resolution
	ImageSource(image *gltf.Image) (ImageSource, error)

	// ImageSourceAt is ImageSource for the image at the given index.
	//
	// Parameters:
	//   - imageIndex: the index of the image
	//
	// Returns:
	//   - ImageSource: the resolved source
	//   - error: error if the index or the image source is invalid
	ImageSourceAt(imageIndex int) (ImageSource, error)

	// Document returns the document the resolver reads.
	//
	// Returns:
	//   - *gltf.Document: the underlying document
	Document() *gltf.Document
}

var _ Resolver = &resolver{}

// New creates a Resolver over a loaded document.
//
// Parameters:
//   - doc: the document to resolve against
//
// Returns:
//   - Resolver: a new instance of Resolver
func New(doc *gltf.Document) Resolver {
	return &resolver{doc: doc}
}

func (r *resolver) Document() *gltf.Document {
	return r.doc
}

func (r *resolver) Attribute(accessorIndex int) (Slice, error) {
	acc, err := r.doc.Accessor(accessorIndex)
	if err != nil {
		return Slice{}, err
	}
	if acc.Sparse != nil {
		return Slice{}, fmt.Errorf("accessor %d: %w", accessorIndex, ErrSparseAccessorUnsupported)
	}
	if acc.BufferView == nil {
		return Slice{}, fmt.Errorf("accessor %d: %w", accessorIndex, ErrMissingBufferView)
	}

	view, err := r.doc.BufferView(*acc.BufferView)
	if err != nil {
		return Slice{}, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}
	buf, err := r.doc.Buffer(view.Buffer)
	if err != nil {
		return Slice{}, fmt.Errorf("accessor %d: bufferView %d: %w", accessorIndex, *acc.BufferView, err)
	}

	components, err := acc.Type.ComponentCount()
	if err != nil {
		return Slice{}, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}

	length := acc.Count * acc.ComponentType.ByteSize() * components
	if acc.ByteOffset+length > view.ByteLength {
		return Slice{}, fmt.Errorf("accessor %d: %w: %d bytes at offset %d exceed bufferView %d length %d",
			accessorIndex, ErrRangeOutOfBounds, length, acc.ByteOffset, *acc.BufferView, view.ByteLength)
	}

	s := Slice{
		Buffer: view.Buffer,
		Offset: view.ByteOffset + acc.ByteOffset,
		Length: length,
	}
	if s.End() > buf.ByteLength {
		return Slice{}, fmt.Errorf("accessor %d: %w: range end %d exceeds buffer %d length %d",
			accessorIndex, ErrRangeOutOfBounds, s.End(), view.Buffer, buf.ByteLength)
	}

	return s, nil
}

func (r *resolver) BufferView(viewIndex int) (Slice, error) {
	view, err := r.doc.BufferView(viewIndex)
	if err != nil {
		return Slice{}, err
	}
	buf, err := r.doc.Buffer(view.Buffer)
	if err != nil {
		return Slice{}, fmt.Errorf("bufferView %d: %w", viewIndex, err)
	}

	s := Slice{Buffer: view.Buffer, Offset: view.ByteOffset, Length: view.ByteLength}
	if s.End() > buf.ByteLength {
		return Slice{}, fmt.Errorf("bufferView %d: %w: range end %d exceeds buffer %d length %d",
			viewIndex, ErrRangeOutOfBounds, s.End(), view.Buffer, buf.ByteLength)
	}
	return s, nil
}

func (r *resolver) Buffer(bufferIndex int) (uri.Data, error) {
	buf, err := r.doc.Buffer(bufferIndex)
	if err != nil {
		return uri.Data{}, err
	}
	if buf.URI == "" {
		return uri.Data{}, fmt.Errorf("buffer %d: %w", bufferIndex, ErrGLBChunk)
	}

	data, err := uri.Classify(buf.URI)
	if err != nil {
		return uri.Data{}, fmt.Errorf("buffer %d: %w", bufferIndex, err)
	}
	return data, nil
}
