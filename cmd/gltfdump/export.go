package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gltf/engine/importer"
	"github.com/HugoSmits86/nativewebp"
)

// exportTextures writes every decoded image of imp to dir as WebP.
// Images that were not decoded are skipped.
//
// Parameters:
//   - imp: the import whose images are written
//   - dir: the output directory, created if missing
//
// Returns:
//   - []string: the written file paths
//   - error: error if the directory cannot be created or an image cannot be written
func exportTextures(imp *importer.Import, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("texture dir: %w", err)
	}

	var written []string
	for i, img := range imp.Images {
		if img == nil {
			continue
		}
		outPath := filepath.Join(dir, textureFileName(imp, i))
		if err := writeWebP(outPath, img.RGBA); err != nil {
			return written, fmt.Errorf("image %d: %w", i, err)
		}
		log.Printf("[gltfdump] wrote %s (%dx%d)", outPath, img.Width, img.Height)
		written = append(written, outPath)
	}
	return written, nil
}

func writeWebP(outPath string, rgba func() (*image.RGBA, error)) error {
	img, err := rgba()
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}

// textureFileName derives a file name from the image name, falling back to its index.
func textureFileName(imp *importer.Import, index int) string {
	name := ""
	if index < len(imp.Document.Images) {
		name = imp.Document.Images[index].Name
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSuffix(name, filepath.Ext(name)))
	if name == "" {
		return fmt.Sprintf("image_%d.webp", index)
	}
	return fmt.Sprintf("%d_%s.webp", index, name)
}
