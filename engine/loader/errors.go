package loader

import (
	"errors"
	"fmt"
)

// Errors returned while splitting a GLB container.
var (
	ErrGLBTooSmall       = errors.New("GLB file too small")
	ErrInvalidGLBMagic   = errors.New("invalid GLB magic number")
	ErrInvalidGLBVersion = errors.New("invalid GLB version: must be 2")
	ErrInvalidGLBLength  = errors.New("GLB length does not match header")
	ErrMissingJSONChunk  = errors.New("GLB file missing JSON chunk")
	ErrTruncatedGLBChunk = errors.New("GLB chunk exceeds file length")
)

// MalformedDocumentError reports a structural problem in the document JSON: a syntax error,
// a field of the wrong type, a missing required field, or an impossible value.
type MalformedDocumentError struct {
	// Path locates the offending field, e.g. "accessors[2].count". Empty for the root.
	Path string

	// Reason describes the problem.
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	if e.Path == "" {
		return "malformed glTF document: " + e.Reason
	}
	return fmt.Sprintf("malformed glTF document at %s: %s", e.Path, e.Reason)
}

// malformed builds a *MalformedDocumentError with a formatted reason.
func malformed(path, format string, args ...any) error {
	return &MalformedDocumentError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
