package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRequireVersion2 is an option builder that makes the Loader reject documents without an
// asset block or whose asset version is not 2.x.
//
// Returns:
//   - LoaderBuilderOption: a function that applies the version check to a loader
func WithRequireVersion2() LoaderBuilderOption {
	return func(l *loader) {
		l.requireVersion2 = true
	}
}

// WithSupportedExtensions is an option builder that restricts the extensions a document may list
// in extensionsRequired. Without this option every required extension is accepted.
//
// Parameters:
//   - names: the extension names the caller can honor
//
// Returns:
//   - LoaderBuilderOption: a function that applies the extension allow-list to a loader
func WithSupportedExtensions(names ...string) LoaderBuilderOption {
	return func(l *loader) {
		l.supportedExtensions = append([]string{}, names...)
	}
}
