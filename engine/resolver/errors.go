package resolver

import "errors"

// Errors returned while resolving accessors and images to byte ranges.
var (
	// ErrSparseAccessorUnsupported is returned for accessors carrying sparse storage.
	ErrSparseAccessorUnsupported = errors.New("sparse accessors are not supported")

	// ErrMissingBufferView is returned for accessors without a buffer view.
	ErrMissingBufferView = errors.New("accessor has no bufferView")

	// ErrImageSourceMissing is returned for images with neither a uri nor a bufferView.
	ErrImageSourceMissing = errors.New("image has neither uri nor bufferView")

	// ErrRangeOutOfBounds is returned when a computed range does not fit its buffer view or buffer.
	ErrRangeOutOfBounds = errors.New("byte range out of bounds")

	// ErrGLBChunk marks a buffer without a URI; its bytes are the GLB binary chunk.
	ErrGLBChunk = errors.New("buffer has no uri: data lives in the GLB binary chunk")
)
