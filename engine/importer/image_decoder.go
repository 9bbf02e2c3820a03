package importer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ImageDecoder turns encoded image bytes into RGBA pixels.
type ImageDecoder interface {
	// Decode decodes an encoded image.
	//
	// Parameters:
	//   - data: the encoded image bytes
	//   - mimeType: the declared media type, or "" to sniff the format
	//
	// Returns:
	//   - *common.DecodedImage: the RGBA pixels
	//   - error: error if the format is unsupported or the data is corrupt
	Decode(data []byte, mimeType string) (*common.DecodedImage, error)
}

// imageDecoder is the default ImageDecoder. It handles PNG, JPEG, WebP, BMP and TGA.
type imageDecoder struct{}

var _ ImageDecoder = &imageDecoder{}

// NewImageDecoder creates the default ImageDecoder.
//
// Returns:
//   - ImageDecoder: a decoder for PNG, JPEG, WebP, BMP and TGA images
func NewImageDecoder() ImageDecoder {
	return &imageDecoder{}
}

func (d *imageDecoder) Decode(data []byte, mimeType string) (*common.DecodedImage, error) {
	if mimeType == "" {
		mimeType = sniffMimeType(data)
	}
	r := bytes.NewReader(data)

	var img image.Image
	var err error
	switch strings.ToLower(mimeType) {
	case "image/png":
		img, err = png.Decode(r)
	case "image/jpeg", "image/jpg":
		img, err = jpeg.Decode(r)
	case "image/webp":
		img, err = webp.Decode(r)
	case "image/bmp":
		img, err = bmp.Decode(r)
	case "image/tga", "image/x-tga":
		img, err = tga.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImageFormat, mimeType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", mimeType, err)
	}

	return common.NewDecodedImage(img), nil
}

// sniffMimeType detects the image format from its signature. TGA has no signature and is the fallback.
func sniffMimeType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	case bytes.HasPrefix(data, []byte("BM")):
		return "image/bmp"
	default:
		return "image/tga"
	}
}

// mimeTypeFromPath guesses an image media type from a URI's extension, or "" when unknown.
func mimeTypeFromPath(uri string) string {
	switch strings.ToLower(path.Ext(uri)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".tga":
		return "image/tga"
	default:
		return ""
	}
}
