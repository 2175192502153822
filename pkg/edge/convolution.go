package edge

// Convolve applies k to every channel of every interior pixel of src and returns a new buffer.
// Sums are clamped to [0,255] and truncated. A border of k.Radius() pixels on each side is
// copied unchanged from src.
func Convolve(src *PixelBuffer, k Kernel) *PixelBuffer {
	dst := src.Clone()
	r := k.Radius()
	forEachInterior(src, r, func(i int) {
		sum := 0.0
		for ky := 0; ky < k.size; ky++ {
			for kx := 0; kx < k.size; kx++ {
				n := i + src.Stride*(ky-r) + src.BytesPerPixel*(kx-r)
				sum += k.At(ky, kx) * float64(src.Pix[n])
			}
		}
		dst.Pix[i] = uint8(clampFloatToUint8(sum))
	})
	return dst
}

// ConvolvePair evaluates both kernels of pair at every interior channel byte of src and
// passes the raw, unclamped sums to fn along with the pixel coordinates and channel.
func ConvolvePair(src *PixelBuffer, pair KernelPair, fn func(x, y, c int, gx, gy float64)) {
	size := pair.X.size
	r := size / 2
	for y := r; y < src.Height-r; y++ {
		for x := r; x < src.Width-r; x++ {
			start := src.Offset(x, y)
			for c := 0; c < src.BytesPerPixel; c++ {
				i := start + c
				gx, gy := 0.0, 0.0
				for ky := 0; ky < size; ky++ {
					for kx := 0; kx < size; kx++ {
						v := float64(src.Pix[i+src.Stride*(ky-r)+src.BytesPerPixel*(kx-r)])
						gx += pair.X.At(ky, kx) * v
						gy += pair.Y.At(ky, kx) * v
					}
				}
				fn(x, y, c, gx, gy)
			}
		}
	}
}

// forEachInterior calls fn with the byte index of every channel of every pixel that lies at
// least border pixels away from each edge of buf.
func forEachInterior(buf *PixelBuffer, border int, fn func(i int)) {
	for y := border; y < buf.Height-border; y++ {
		for x := border; x < buf.Width-border; x++ {
			start := buf.Offset(x, y)
			for c := 0; c < buf.BytesPerPixel; c++ {
				fn(start + c)
			}
		}
	}
}

// clampFloatToUint8 clamps v to [0,255]; NaN becomes 0
func clampFloatToUint8(v float64) float64 {
	if !(v >= 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
