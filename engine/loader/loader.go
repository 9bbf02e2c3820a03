// Package loader turns glTF JSON text (or a GLB container) into an immutable *gltf.Document.
// Loading is a pure, in-memory computation: the loader never reads files or fetches URIs.
package loader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
)

// loader is the implementation of the Loader interface.
type loader struct {
	requireVersion2 bool

	// supportedExtensions is nil when every required extension is accepted.
	supportedExtensions []string
}

// Loader defines the public-facing interface for building glTF documents.
// A Loader holds only configuration, so one instance may be shared by concurrent callers.
type Loader interface {
	// Load parses glTF JSON text into a validated document.
	//
	// Parameters:
	//   - text: the complete glTF JSON document
	//
	// Returns:
	//   - *gltf.Document: the loaded document
	//   - error: *MalformedDocumentError or a wrapped *gltf.InvalidEnumCodeError if loading fails
	Load(text string) (*gltf.Document, error)

	// LoadBytes is Load for JSON held in a byte slice.
	//
	// Parameters:
	//   - data: the complete glTF JSON document
	//
	// Returns:
	//   - *gltf.Document: the loaded document
	//   - error: error if loading fails
	LoadBytes(data []byte) (*gltf.Document, error)

	// LoadGLB splits a binary GLB container and loads its JSON chunk.
	// The BIN chunk is returned untouched; it backs the first buffer when that buffer has no URI.
	//
	// Parameters:
	//   - data: the complete GLB file contents
	//
	// Returns:
	//   - *gltf.Document: the loaded document
	//   - []byte: the BIN chunk, or nil if the container has none
	//   - error: error if the container or the JSON chunk is invalid
	LoadGLB(data []byte) (*gltf.Document, []byte, error)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the given options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{}
	for _, option := range options {
		option(l)
	}
	return l
}

// defaultLoader backs the package-level Load and LoadBytes helpers.
var defaultLoader = NewLoader()

// Load parses glTF JSON text with the default loader configuration.
func Load(text string) (*gltf.Document, error) {
	return defaultLoader.Load(text)
}

// LoadBytes parses glTF JSON bytes with the default loader configuration.
func LoadBytes(data []byte) (*gltf.Document, error) {
	return defaultLoader.LoadBytes(data)
}

func (l *loader) Load(text string) (*gltf.Document, error) {
	return l.LoadBytes([]byte(text))
}

func (l *loader) LoadBytes(data []byte) (*gltf.Document, error) {
	tree, err := decodeValueTree(data)
	if err != nil {
		return nil, err
	}

	root, err := asObject("", tree)
	if err != nil {
		return nil, err
	}

	doc, err := convertDocument(root)
	if err != nil {
		return nil, err
	}

	if err := l.checkAsset(doc); err != nil {
		return nil, err
	}
	if err := l.checkExtensions(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (l *loader) LoadGLB(data []byte) (*gltf.Document, []byte, error) {
	jsonChunk, binChunk, err := SplitGLB(data)
	if err != nil {
		return nil, nil, err
	}

	doc, err := l.LoadBytes(jsonChunk)
	if err != nil {
		return nil, nil, fmt.Errorf("GLB JSON chunk: %w", err)
	}

	return doc, binChunk, nil
}

// checkAsset enforces the asset version when WithRequireVersion2 is set.
func (l *loader) checkAsset(doc *gltf.Document) error {
	if !l.requireVersion2 {
		return nil
	}
	if doc.Asset == nil {
		return malformed("asset", "missing required field")
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return malformed("asset.version", "unsupported glTF version %q: must be 2.x", doc.Asset.Version)
	}
	return nil
}

// checkExtensions rejects documents that require an extension outside the configured set.
func (l *loader) checkExtensions(doc *gltf.Document) error {
	if l.supportedExtensions == nil {
		return nil
	}
	for i, ext := range doc.ExtensionsRequired {
		if !slices.Contains(l.supportedExtensions, ext) {
			return malformed(fmt.Sprintf("extensionsRequired[%d]", i), "unsupported required extension %q", ext)
		}
	}
	return nil
}
