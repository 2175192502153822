package edge

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Sigma limits applied before a blur kernel is generated.
const (
	MinSigma = 0.1
	MaxSigma = 20.0
)

// Kernel is an immutable odd-sized square matrix of convolution weights.
type Kernel struct {
	size    int
	weights []float64
}

// KernelPair holds the horizontal and vertical gradient kernels of a detector.
type KernelPair struct {
	X Kernel
	Y Kernel
}

// NewKernel builds a kernel from rows of weights. Rows must form an odd-sized square.
func NewKernel(rows [][]float64) (Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return Kernel{}, errors.Wrapf(ErrInvalidKernel, "size %d is not odd", n)
	}
	weights := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Kernel{}, errors.Wrapf(ErrInvalidKernel, "row %d has %d weights, want %d", i, len(row), n)
		}
		weights = append(weights, row...)
	}
	return Kernel{size: n, weights: weights}, nil
}

// NewKernelFromWeights builds a square kernel from a flat row-major slice of 9, 25, ... weights.
func NewKernelFromWeights(weights []float64) (Kernel, error) {
	n := int(math.Round(math.Sqrt(float64(len(weights)))))
	if n*n != len(weights) {
		return Kernel{}, errors.Wrapf(ErrInvalidKernel, "%d weights do not form a square", len(weights))
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = weights[i*n : (i+1)*n]
	}
	return NewKernel(rows)
}

// NewKernelPair validates a custom gradient pair; both kernels must share a size.
func NewKernelPair(gx, gy Kernel) (KernelPair, error) {
	if gx.size == 0 || gx.size != gy.size {
		return KernelPair{}, errors.Wrapf(ErrInvalidKernel, "gradient kernels sized %d and %d", gx.size, gy.size)
	}
	return KernelPair{X: gx, Y: gy}, nil
}

func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the side length of the kernel.
func (k Kernel) Size() int {
	return k.size
}

// Radius returns the number of border pixels a convolution with k leaves untouched.
func (k Kernel) Radius() int {
	return k.size / 2
}

// At returns the weight at row i, column j.
func (k Kernel) At(i, j int) float64 {
	return k.weights[i*k.size+j]
}

// Sum returns the total of all weights.
func (k Kernel) Sum() float64 {
	return floats.Sum(k.weights)
}

// SobelPair returns the 3x3 Sobel gradient kernels.
func SobelPair() KernelPair {
	return KernelPair{
		X: mustKernel([][]float64{
			{-1, 0, 1},
			{-2, 0, 2},
			{-1, 0, 1},
		}),
		Y: mustKernel([][]float64{
			{-1, -2, -1},
			{0, 0, 0},
			{1, 2, 1},
		}),
	}
}

// PrewittPair returns the 3x3 Prewitt gradient kernels.
func PrewittPair() KernelPair {
	return KernelPair{
		X: mustKernel([][]float64{
			{-1, 0, 1},
			{-1, 0, 1},
			{-1, 0, 1},
		}),
		Y: mustKernel([][]float64{
			{-1, -1, -1},
			{0, 0, 0},
			{1, 1, 1},
		}),
	}
}

// ClampSigma limits sigma to [MinSigma, MaxSigma]. NaN becomes DefaultSigma.
func ClampSigma(sigma float64) float64 {
	if math.IsNaN(sigma) {
		return DefaultSigma
	}
	return math.Max(MinSigma, math.Min(MaxSigma, sigma))
}

// GaussianBlurKernel generates the normalized 5x5 Gaussian for sigma (clamped first).
func GaussianBlurKernel(sigma float64) Kernel {
	sigma = ClampSigma(sigma)
	const size = 5
	weights := make([]float64, 0, size*size)
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			x, y := float64(i), float64(j)
			weights = append(weights, math.Exp(-(x*x+y*y)/(2*sigma*sigma))/math.Sqrt(2*math.Pi*sigma*sigma))
		}
	}
	// normalize
	floats.Scale(1/floats.Sum(weights), weights)
	return Kernel{size: size, weights: weights}
}

// GaussianSharpenKernel returns the fixed 3x3 sharpening kernel. It is not normalized.
func GaussianSharpenKernel() Kernel {
	return mustKernel([][]float64{
		{0, -1.0 / 5.0, 0},
		{-1.0 / 5.0, 1 + 4.0/5.0, -1.0 / 5.0},
		{0, -1.0 / 5.0, 0},
	})
}
