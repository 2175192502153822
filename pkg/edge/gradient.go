package edge

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Orientation is a gradient direction quantized to 0, 45, 90 or 135 degrees.
type Orientation uint8

// Quantized orientations.
const (
	Orientation0   Orientation = 0
	Orientation45  Orientation = 45
	Orientation90  Orientation = 90
	Orientation135 Orientation = 135
)

const rad2Deg = 180.0 / math.Pi

// QuantizeOrientation folds the direction of (gx, gy) into [0,180) degrees and snaps it to the
// nearest of 0, 45, 90 and 135. Angles of 157.5 and above wrap back to 0.
func QuantizeOrientation(gx, gy float64) Orientation {
	if gx == 0 {
		if gy == 0 {
			return Orientation0
		}
		return Orientation90
	}
	var deg float64
	if ratio := gy / gx; ratio < 0 {
		// 2nd and 4th quadrants
		deg = 180 - math.Atan(-ratio)*rad2Deg
	} else {
		deg = math.Atan(ratio) * rad2Deg
	}
	switch {
	case deg < 22.5:
		return Orientation0
	case deg < 67.5:
		return Orientation45
	case deg < 112.5:
		return Orientation90
	case deg < 157.5:
		return Orientation135
	default:
		return Orientation0
	}
}

// GradientField stores the gradient magnitude and quantized orientation of every pixel and
// channel of a buffer. Pixels the gradient kernels cannot reach keep magnitude 0.
type GradientField struct {
	width    int
	height   int
	channels int

	magnitude   []float64
	orientation []Orientation
	// Max is the largest magnitude in the field.
	Max float64
}

// NewGradientField allocates an all-zero field.
func NewGradientField(width, height, channels int) *GradientField {
	n := width * height * channels
	return &GradientField{
		width:       width,
		height:      height,
		channels:    channels,
		magnitude:   make([]float64, n),
		orientation: make([]Orientation, n),
	}
}

func (gf *GradientField) kxyc(x, y, c int) int {
	return (y*gf.width+x)*gf.channels + c
}

// Width returns the field width in pixels.
func (gf *GradientField) Width() int {
	return gf.width
}

// Height returns the field height in pixels.
func (gf *GradientField) Height() int {
	return gf.height
}

// Channels returns the number of channels per pixel.
func (gf *GradientField) Channels() int {
	return gf.channels
}

// Magnitude returns |Gx|+|Gy| at (x, y) for channel c.
func (gf *GradientField) Magnitude(x, y, c int) float64 {
	return gf.magnitude[gf.kxyc(x, y, c)]
}

// Orientation returns the quantized direction at (x, y) for channel c.
func (gf *GradientField) Orientation(x, y, c int) Orientation {
	return gf.orientation[gf.kxyc(x, y, c)]
}

// Set stores a gradient and keeps Max up to date.
func (gf *GradientField) Set(x, y, c int, magnitude float64, o Orientation) {
	i := gf.kxyc(x, y, c)
	gf.magnitude[i] = magnitude
	gf.orientation[i] = o
	gf.Max = math.Max(gf.Max, magnitude)
}

// MagnitudeDense returns the magnitudes of channel c as a height x width matrix.
func (gf *GradientField) MagnitudeDense(c int) *mat.Dense {
	data := make([]float64, 0, gf.width*gf.height)
	for y := 0; y < gf.height; y++ {
		for x := 0; x < gf.width; x++ {
			data = append(data, gf.Magnitude(x, y, c))
		}
	}
	return mat.NewDense(gf.height, gf.width, data)
}

// ComputeGradients runs the pair over src and records unclamped |Gx|+|Gy| magnitudes and
// quantized orientations for the Canny stages.
func ComputeGradients(src *PixelBuffer, pair KernelPair) *GradientField {
	gf := NewGradientField(src.Width, src.Height, src.BytesPerPixel)
	ConvolvePair(src, pair, func(x, y, c int, gx, gy float64) {
		gf.Set(x, y, c, math.Abs(gx)+math.Abs(gy), QuantizeOrientation(gx, gy))
	})
	return gf
}

// ThresholdGradients is the plain Sobel/Prewitt filter: a channel whose magnitude
// min(255, |Gx|+|Gy|) exceeds threshold becomes 0 (edge) and all others become 255.
// The border is copied from src.
func ThresholdGradients(src *PixelBuffer, pair KernelPair, threshold float64) *PixelBuffer {
	dst := src.Clone()
	ConvolvePair(src, pair, func(x, y, c int, gx, gy float64) {
		g := math.Min(255, math.Abs(gx)+math.Abs(gy))
		if g > threshold {
			dst.Pix[dst.Offset(x, y)+c] = 0
		} else {
			dst.Pix[dst.Offset(x, y)+c] = 255
		}
	})
	return dst
}
