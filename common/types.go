// Package common contains plain value types shared by the importer, the inspector and callers. They are not interface-wrapped
// structs, just data produced after a glTF document has been loaded and its bytes resolved.
package common

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// DecodedImage holds RGBA pixel data decoded from an image source.
type DecodedImage struct {
	// Width is the image width in pixels.
	Width int
	// Height is the image height in pixels.
	Height int
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major with no row padding.
	Pixels []byte
}

// NewDecodedImage converts any decoded image into tightly packed RGBA pixels.
// Reference: https://pkg.go.dev/golang.org/x/image/draw
//
// Parameters:
//   - img: the decoded image in any color model
//
// Returns:
//   - *DecodedImage: the RGBA pixel data
func NewDecodedImage(img image.Image) *DecodedImage {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &DecodedImage{Width: b.Dx(), Height: b.Dy(), Pixels: rgba.Pix}
}

// RGBA wraps the pixel data as an *image.RGBA without copying.
//
// Returns:
//   - *image.RGBA: an image view over Pixels
//   - error: error if Pixels does not hold Width*Height*4 bytes
func (d *DecodedImage) RGBA() (*image.RGBA, error) {
	if d == nil {
		return nil, fmt.Errorf("decoded image is nil")
	}
	if len(d.Pixels) != d.Width*d.Height*4 {
		return nil, fmt.Errorf("pixel buffer holds %d bytes, want %d for %dx%d", len(d.Pixels), d.Width*d.Height*4, d.Width, d.Height)
	}
	return &image.RGBA{
		Pix:    d.Pixels,
		Stride: d.Width * 4,
		Rect:   image.Rect(0, 0, d.Width, d.Height),
	}, nil
}

// ImportedMaterial represents material properties resolved from a glTF material.
type ImportedMaterial struct {
	// Name is the material identifier.
	Name string

	// BaseColor is the albedo color (RGBA).
	BaseColor [4]float32

	// Metallic factor (0.0 = dielectric, 1.0 = metal).
	Metallic float32

	// Roughness factor (0.0 = smooth, 1.0 = rough).
	Roughness float32

	// Emissive is the emissive color (RGB).
	Emissive [3]float32

	// AlphaMode is OPAQUE, MASK or BLEND.
	AlphaMode string

	// AlphaCutoff is the MASK threshold.
	AlphaCutoff float32

	DoubleSided bool

	// BaseColorTexture references the albedo texture (if present).
	BaseColorTexture *ImportedTexture

	// MetallicRoughnessTexture references the metallic/roughness texture (if present).
	MetallicRoughnessTexture *ImportedTexture

	// NormalTexture references the normal map (if present).
	NormalTexture *ImportedTexture

	// OcclusionTexture references the occlusion map (if present).
	OcclusionTexture *ImportedTexture

	// EmissiveTexture references the emissive map (if present).
	EmissiveTexture *ImportedTexture
}

// ImportedTexture represents a texture slot of a material.
// For embedded images the Image field carries the decoded pixels; external images also keep their Path.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "baseColor", "normal").
	Name string

	// ImageIndex is the index of the source image in the document, or -1 if the texture has no source.
	ImageIndex int

	// TexCoord selects the TEXCOORD_n set used to sample the texture.
	TexCoord int

	// Path is the unresolved URI for external images (empty for embedded).
	Path string

	// MimeType indicates the image format (e.g., "image/png", "image/jpeg").
	MimeType string

	// Image holds the decoded pixels, nil when image decoding was skipped or the image failed to decode.
	Image *DecodedImage
}
