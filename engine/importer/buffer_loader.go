package importer

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// BufferLoader fetches the bytes behind an external buffer or image URI.
type BufferLoader interface {
	// LoadBuffer reads the resource named by a relative URI exactly as written in the document.
	//
	// Parameters:
	//   - path: the unresolved URI
	//
	// Returns:
	//   - []byte: the resource contents
	//   - error: error if the resource cannot be read
	LoadBuffer(path string) ([]byte, error)
}

// FileBufferLoader reads URIs as files relative to BaseDir.
type FileBufferLoader struct {
	BaseDir string
}

var _ BufferLoader = &FileBufferLoader{}

// NewFileBufferLoader creates a FileBufferLoader rooted at baseDir.
//
// Parameters:
//   - baseDir: the directory the document was loaded from
//
// Returns:
//   - *FileBufferLoader: the loader
func NewFileBufferLoader(baseDir string) *FileBufferLoader {
	return &FileBufferLoader{BaseDir: baseDir}
}

func (l *FileBufferLoader) LoadBuffer(path string) ([]byte, error) {
	if i := strings.Index(path, "://"); i > 0 {
		return nil, fmt.Errorf("%w: %s", ErrRemoteURI, path)
	}

	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return nil, fmt.Errorf("invalid URI %q: %w", path, err)
	}

	fullPath := unescaped
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(l.BaseDir, filepath.FromSlash(unescaped))
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return data, nil
}
