package importer

import "errors"

// Errors returned while importing a document and its payloads.
var (
	// ErrBufferSizeMismatch is returned when a buffer holds fewer bytes than its declared byteLength.
	ErrBufferSizeMismatch = errors.New("buffer size mismatch")

	// ErrMissingGLBChunk is returned when a buffer has no URI but no GLB binary chunk backs it.
	ErrMissingGLBChunk = errors.New("buffer has no uri and no GLB binary chunk")

	// ErrRemoteURI is returned by FileBufferLoader for URIs with a network scheme.
	ErrRemoteURI = errors.New("remote URIs are not supported")

	// ErrUnsupportedImageFormat is returned by the default ImageDecoder for unknown media types.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")

	// ErrNodeCycle is returned by WalkScene when the node hierarchy contains a cycle.
	ErrNodeCycle = errors.New("node hierarchy contains a cycle")
)
