package cli

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"

	// webp decoding for imaging.Open
	_ "golang.org/x/image/webp"
)

// PromptLine writes prompt to w and reads one line from r.
// The returned string is trimmed of surrounding whitespace (including the newline).
func PromptLine(r io.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LoadImage decodes the file at path, applying any EXIF orientation.
// PNG, JPEG, GIF, TIFF, BMP and WebP are supported.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img to path using the format implied by the file extension.
func SaveImage(path string, img image.Image) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("cannot save %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return imaging.Encode(f, img, format, imaging.JPEGQuality(92))
}

// GetImageInfo returns a short info string for an image.
func GetImageInfo(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	b := img.Bounds()
	kind := "unknown"
	switch img.(type) {
	case *image.YCbCr:
		kind = "YCbCr"
	case *image.Paletted:
		kind = "paletted"
	case *image.Gray:
		kind = "gray"
	case *image.Gray16:
		kind = "gray16"
	case *image.NRGBA, *image.RGBA:
		kind = "rgba"
	case *image.NRGBA64, *image.RGBA64:
		kind = "rgba64"
	}
	return fmt.Sprintf("Color: %s, Width: %d, Height: %d", kind, b.Dx(), b.Dy()), nil
}
