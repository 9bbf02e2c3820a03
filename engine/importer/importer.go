// Package importer wires the core glTF packages to their collaborators: it loads a document,
// fetches external buffers, decodes images in parallel and exposes typed views over the result.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
	"github.com/Carmen-Shannon/oxy-gltf/engine/resolver"
	"github.com/Carmen-Shannon/oxy-gltf/engine/uri"
)

// importer is the implementation of the Importer interface.
type importer struct {
	loader       loader.Loader
	bufferLoader BufferLoader
	imageDecoder ImageDecoder
	baseDir      string
	workers      int
	skipImages   bool

	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
}

// Importer defines the public-facing interface for importing glTF assets with their payloads.
type Importer interface {
	// ImportFile loads a .gltf or .glb file and everything it references.
	// The format is detected from the GLB magic number, not the extension.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *Import: the document with loaded buffers, decoded images and materials
	//   - error: error if loading, buffer fetching or image decoding fails
	ImportFile(path string) (*Import, error)

	// Import fetches the payloads of an already loaded document.
	//
	// Parameters:
	//   - doc: the loaded document
	//   - bin: the GLB binary chunk backing the first URI-less buffer, or nil
	//
	// Returns:
	//   - *Import: the document with loaded buffers, decoded images and materials
	//   - error: error if buffer fetching or image decoding fails
	Import(doc *gltf.Document, bin []byte) (*Import, error)
}

var _ Importer = &importer{}

// NewImporter creates a new Importer with the given options applied.
//
// Parameters:
//   - options: a variadic list of ImporterBuilderOption functions to configure the Importer
//
// Returns:
//   - Importer: a new instance of Importer
func NewImporter(options ...ImporterBuilderOption) Importer {
	i := &importer{
		loader:       loader.NewLoader(),
		imageDecoder: NewImageDecoder(),
		baseDir:      ".",
		workers:      max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(i)
	}
	return i
}

func (i *importer) ImportFile(path string) (*Import, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc *gltf.Document
	var bin []byte
	if loader.IsGLB(data) {
		doc, bin, err = i.loader.LoadGLB(data)
	} else {
		doc, err = i.loader.LoadBytes(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	bl := i.bufferLoader
	if bl == nil {
		bl = NewFileBufferLoader(filepath.Dir(path))
	}

	imp, err := i.importWith(doc, bin, bl)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	imp.Name = common.Coalesce(imp.Name, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	return imp, nil
}

func (i *importer) Import(doc *gltf.Document, bin []byte) (*Import, error) {
	bl := i.bufferLoader
	if bl == nil {
		bl = NewFileBufferLoader(i.baseDir)
	}
	return i.importWith(doc, bin, bl)
}

func (i *importer) importWith(doc *gltf.Document, bin []byte, bl BufferLoader) (*Import, error) {
	imp := &Import{
		Document: doc,
		Resolver: resolver.New(doc),
		Images:   make([]*common.DecodedImage, len(doc.Images)),

		bufferLoader: bl,
	}

	buffers, err := loadBuffers(imp.Resolver, bin, bl)
	if err != nil {
		return nil, err
	}
	imp.Buffers = buffers

	if !i.skipImages {
		if err := i.decodeImages(imp); err != nil {
			return nil, err
		}
	}

	if imp.Materials, err = extractMaterials(imp); err != nil {
		return nil, err
	}
	imp.Name = modelName(doc)

	return imp, nil
}

// loadBuffers fetches every buffer of the document and checks it against its declared length.
func loadBuffers(res resolver.Resolver, bin []byte, bl BufferLoader) ([][]byte, error) {
	doc := res.Document()
	buffers := make([][]byte, len(doc.Buffers))

	for idx := range doc.Buffers {
		data, err := res.Buffer(idx)
		switch {
		case errors.Is(err, resolver.ErrGLBChunk):
			if idx != 0 || bin == nil {
				return nil, fmt.Errorf("buffer %d: %w", idx, ErrMissingGLBChunk)
			}
			buffers[idx] = bin
		case err != nil:
			return nil, err
		case data.Kind == uri.KindInlineBytes:
			buffers[idx] = data.Bytes
		default:
			loaded, err := bl.LoadBuffer(data.Path)
			if err != nil {
				return nil, fmt.Errorf("buffer %d: %w", idx, err)
			}
			buffers[idx] = loaded
		}

		if len(buffers[idx]) < doc.Buffers[idx].ByteLength {
			return nil, fmt.Errorf("buffer %d: %w: have %d bytes, byteLength is %d",
				idx, ErrBufferSizeMismatch, len(buffers[idx]), doc.Buffers[idx].ByteLength)
		}
	}

	return buffers, nil
}

// decodeImages decodes every image on the worker pool. Each task writes only its own slot.
func (i *importer) decodeImages(imp *Import) error {
	if len(imp.Document.Images) == 0 {
		return nil
	}

	i.poolOnce.Do(func() {
		i.pool = worker.NewDynamicWorkerPool(i.workers, 256, 1*time.Second)
	})

	errs := make([]error, len(imp.Document.Images))
	var wg sync.WaitGroup

	for idx := range imp.Document.Images {
		wg.Add(1)
		id := idx
		i.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				data, mimeType, err := imp.ImageBytes(id)
				if err == nil {
					imp.Images[id], err = i.imageDecoder.Decode(data, mimeType)
				}
				if err != nil {
					errs[id] = fmt.Errorf("image %d: %w", id, err)
				}
				return nil, errs[id]
			},
		})
	}

	wg.Wait()
	return errors.Join(errs...)
}

// modelName derives a model name from the default scene, or "" when it has none.
func modelName(doc *gltf.Document) string {
	scene, _, err := doc.DefaultScene()
	if err != nil || scene == nil {
		return ""
	}
	return scene.Name
}
