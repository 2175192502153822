// Package edge implements an edge-detection engine over locked raster bitmaps: grayscale
// conversion, Gaussian blur and sharpen, Sobel and Prewitt gradient filters and the Canny
// pipeline.
package edge

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"sync"
)

// Format describes the channel layout of a Bitmap.
type Format int

const (
	// FormatIndexed8 is one byte per pixel: a gray level or a palette index.
	FormatIndexed8 Format = iota
	// FormatRGB24 is three bytes per pixel in R, G, B order.
	FormatRGB24
	// FormatRGBA32 is four bytes per pixel in non-premultiplied R, G, B, A order.
	FormatRGBA32
	// FormatGray16 is a big-endian 16-bit gray level per pixel. The engine does not process it.
	FormatGray16
	// FormatRGBA64 is four big-endian 16-bit channels per pixel. The engine does not process it.
	FormatRGBA64
)

// BytesPerPixel returns the pixel size of the format, or 0 for an unknown format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatIndexed8:
		return 1
	case FormatGray16:
		return 2
	case FormatRGB24:
		return 3
	case FormatRGBA32:
		return 4
	case FormatRGBA64:
		return 8
	default:
		return 0
	}
}

// Supported reports whether the edge engine can process images of this format.
func (f Format) Supported() bool {
	return f == FormatIndexed8 || f == FormatRGB24 || f == FormatRGBA32
}

func (f Format) String() string {
	switch f {
	case FormatIndexed8:
		return "indexed8"
	case FormatRGB24:
		return "rgb24"
	case FormatRGBA32:
		return "rgba32"
	case FormatGray16:
		return "gray16"
	case FormatRGBA64:
		return "rgba64"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Bitmap is a decoded raster image whose pixel storage can be locked for exclusive access.
// It implements image.Image so it can be handed to encoders directly.
type Bitmap struct {
	Width  int
	Height int
	Stride int
	Format Format
	Pix    []byte
	// Palette is consulted by At for FormatIndexed8 images; nil means the bytes are gray levels.
	Palette color.Palette

	mu sync.Mutex
}

// NewBitmap allocates a zeroed bitmap with tightly packed rows.
func NewBitmap(width, height int, format Format) *Bitmap {
	return NewBitmapStride(width, height, width*format.BytesPerPixel(), format)
}

// NewBitmapStride allocates a zeroed bitmap whose rows are stride bytes apart.
// A stride smaller than a row of pixels is widened to fit.
func NewBitmapStride(width, height, stride int, format Format) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if rowBytes := width * format.BytesPerPixel(); stride < rowBytes {
		stride = rowBytes
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
		Pix:    make([]byte, stride*height),
	}
}

// FromImage copies any image.Image into a Bitmap, picking the closest layout:
// gray and paletted images become FormatIndexed8, NRGBA and RGBA images become FormatRGBA32,
// 16-bit images keep their depth, and everything else is flattened to FormatRGB24.
func FromImage(src image.Image) *Bitmap {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	switch img := src.(type) {
	case *image.Gray:
		out := NewBitmap(w, h, FormatIndexed8)
		for y := 0; y < h; y++ {
			i := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:], img.Pix[i:i+w])
		}
		return out
	case *image.Paletted:
		out := NewBitmap(w, h, FormatIndexed8)
		out.Palette = append(color.Palette(nil), img.Palette...)
		for y := 0; y < h; y++ {
			i := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:], img.Pix[i:i+w])
		}
		return out
	case *image.NRGBA:
		out := NewBitmap(w, h, FormatRGBA32)
		for y := 0; y < h; y++ {
			i := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:], img.Pix[i:i+4*w])
		}
		return out
	case *image.Gray16:
		out := NewBitmap(w, h, FormatGray16)
		for y := 0; y < h; y++ {
			i := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:], img.Pix[i:i+2*w])
		}
		return out
	case *image.NRGBA64:
		out := NewBitmap(w, h, FormatRGBA64)
		for y := 0; y < h; y++ {
			i := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:], img.Pix[i:i+8*w])
		}
		return out
	case *image.RGBA64:
		out := NewBitmap(w, h, FormatRGBA64)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				i := y*out.Stride + x*8
				binary.BigEndian.PutUint16(out.Pix[i:], c.R)
				binary.BigEndian.PutUint16(out.Pix[i+2:], c.G)
				binary.BigEndian.PutUint16(out.Pix[i+4:], c.B)
				binary.BigEndian.PutUint16(out.Pix[i+6:], c.A)
			}
		}
		return out
	case *image.RGBA:
		out := NewBitmap(w, h, FormatRGBA32)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := y*out.Stride + x*4
				out.Pix[i+0] = c.R
				out.Pix[i+1] = c.G
				out.Pix[i+2] = c.B
				out.Pix[i+3] = c.A
			}
		}
		return out
	}

	out := NewBitmap(w, h, FormatRGB24)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b_, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// r,g,b are 16-bit [0, 65535]; convert to 8-bit
			i := y*out.Stride + x*3
			out.Pix[i+0] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b_ >> 8)
		}
	}
	return out
}

// Clone returns an unlocked deep copy of the bitmap.
func (bm *Bitmap) Clone() *Bitmap {
	if bm == nil {
		return nil
	}
	bm.mu.Lock()
	defer bm.mu.Unlock()
	out := &Bitmap{
		Width:  bm.Width,
		Height: bm.Height,
		Stride: bm.Stride,
		Format: bm.Format,
		Pix:    append([]byte(nil), bm.Pix...),
	}
	if bm.Palette != nil {
		out.Palette = append(color.Palette(nil), bm.Palette...)
	}
	return out
}

// ToImage converts the bitmap into the matching standard library image type.
func (bm *Bitmap) ToImage() image.Image {
	r := image.Rect(0, 0, bm.Width, bm.Height)
	switch bm.Format {
	case FormatIndexed8:
		if bm.Palette != nil {
			out := image.NewPaletted(r, bm.Palette)
			for y := 0; y < bm.Height; y++ {
				copy(out.Pix[y*out.Stride:], bm.Pix[y*bm.Stride:y*bm.Stride+bm.Width])
			}
			return out
		}
		out := image.NewGray(r)
		for y := 0; y < bm.Height; y++ {
			copy(out.Pix[y*out.Stride:], bm.Pix[y*bm.Stride:y*bm.Stride+bm.Width])
		}
		return out
	case FormatRGBA32:
		out := image.NewNRGBA(r)
		for y := 0; y < bm.Height; y++ {
			copy(out.Pix[y*out.Stride:], bm.Pix[y*bm.Stride:y*bm.Stride+4*bm.Width])
		}
		return out
	case FormatGray16:
		out := image.NewGray16(r)
		for y := 0; y < bm.Height; y++ {
			copy(out.Pix[y*out.Stride:], bm.Pix[y*bm.Stride:y*bm.Stride+2*bm.Width])
		}
		return out
	case FormatRGBA64:
		out := image.NewNRGBA64(r)
		for y := 0; y < bm.Height; y++ {
			copy(out.Pix[y*out.Stride:], bm.Pix[y*bm.Stride:y*bm.Stride+8*bm.Width])
		}
		return out
	}
	out := image.NewNRGBA(r)
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			s := y*bm.Stride + x*3
			d := out.PixOffset(x, y)
			out.Pix[d+0] = bm.Pix[s+0]
			out.Pix[d+1] = bm.Pix[s+1]
			out.Pix[d+2] = bm.Pix[s+2]
			out.Pix[d+3] = 255
		}
	}
	return out
}

// ColorModel implements image.Image.
func (bm *Bitmap) ColorModel() color.Model {
	switch bm.Format {
	case FormatIndexed8:
		if bm.Palette != nil {
			return bm.Palette
		}
		return color.GrayModel
	case FormatGray16:
		return color.Gray16Model
	case FormatRGBA64:
		return color.NRGBA64Model
	case FormatRGBA32:
		return color.NRGBAModel
	default:
		return color.RGBAModel
	}
}

// Bounds implements image.Image.
func (bm *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, bm.Width, bm.Height)
}

// At implements image.Image.
func (bm *Bitmap) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= bm.Width || y >= bm.Height {
		return color.Transparent
	}
	i := y*bm.Stride + x*bm.Format.BytesPerPixel()
	p := bm.Pix
	switch bm.Format {
	case FormatIndexed8:
		if bm.Palette != nil && int(p[i]) < len(bm.Palette) {
			return bm.Palette[p[i]]
		}
		return color.Gray{Y: p[i]}
	case FormatRGB24:
		return color.RGBA{R: p[i], G: p[i+1], B: p[i+2], A: 255}
	case FormatRGBA32:
		return color.NRGBA{R: p[i], G: p[i+1], B: p[i+2], A: p[i+3]}
	case FormatGray16:
		return color.Gray16{Y: binary.BigEndian.Uint16(p[i:])}
	case FormatRGBA64:
		return color.NRGBA64{
			R: binary.BigEndian.Uint16(p[i:]),
			G: binary.BigEndian.Uint16(p[i+2:]),
			B: binary.BigEndian.Uint16(p[i+4:]),
			A: binary.BigEndian.Uint16(p[i+6:]),
		}
	}
	return color.Transparent
}
