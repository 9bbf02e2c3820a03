package importer

import "github.com/Carmen-Shannon/oxy-gltf/engine/loader"

// ImporterBuilderOption is a function that configures an importer.
type ImporterBuilderOption func(*importer)

// WithBufferLoader sets the collaborator that reads external buffers and images.
// By default ImportFile reads files next to the document and Import reads from BaseDir.
//
// Parameters:
//   - l: the BufferLoader to use
//
// Returns:
//   - ImporterBuilderOption: a function that applies the buffer loader to an importer
func WithBufferLoader(l BufferLoader) ImporterBuilderOption {
	return func(i *importer) {
		i.bufferLoader = l
	}
}

// WithBaseDir sets the directory the default FileBufferLoader resolves relative URIs against in Import.
//
// Parameters:
//   - dir: the base directory
//
// Returns:
//   - ImporterBuilderOption: a function that applies the base directory to an importer
func WithBaseDir(dir string) ImporterBuilderOption {
	return func(i *importer) {
		i.baseDir = dir
	}
}

// WithImageDecoder sets the collaborator that turns encoded images into pixels.
//
// Parameters:
//   - d: the ImageDecoder to use
//
// Returns:
//   - ImporterBuilderOption: a function that applies the image decoder to an importer
func WithImageDecoder(d ImageDecoder) ImporterBuilderOption {
	return func(i *importer) {
		i.imageDecoder = d
	}
}

// WithWorkers sets the number of goroutines that decode images in parallel.
// Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - ImporterBuilderOption: a function that applies the worker count to an importer
func WithWorkers(n int) ImporterBuilderOption {
	return func(i *importer) {
		if n > 0 {
			i.workers = n
		}
	}
}

// WithSkipImages disables image decoding; Import.Images stays all nil.
//
// Returns:
//   - ImporterBuilderOption: a function that disables image decoding on an importer
func WithSkipImages() ImporterBuilderOption {
	return func(i *importer) {
		i.skipImages = true
	}
}

// WithLoader sets the document loader used by ImportFile.
//
// Parameters:
//   - l: the loader.Loader to use
//
// Returns:
//   - ImporterBuilderOption: a function that applies the loader to an importer
func WithLoader(l loader.Loader) ImporterBuilderOption {
	return func(i *importer) {
		i.loader = l
	}
}
