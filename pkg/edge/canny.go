package edge

// Stage names passed to a CannyObserver.
const (
	StageBlur       = "blur"
	StageSharpen    = "sharpen"
	StageGradients  = "gradients"
	StageSuppress   = "suppress"
	StageHysteresis = "hysteresis"
	StageInvert     = "invert"
)

// CannyObserver is told about each stage as it finishes. gf is only set for StageGradients and
// buf is nil for it.
type CannyObserver func(stage string, buf *PixelBuffer, gf *GradientField)

// Canny runs blur, sharpen, gradients, non-maximum suppression, hysteresis and inversion over
// src and returns the edge map: 0 where an edge was found, 255 elsewhere. src is not modified.
func Canny(src *PixelBuffer, cfg Config) *PixelBuffer {
	return CannyObserved(src, cfg, nil)
}

// CannyObserved is Canny with a per-stage callback.
func CannyObserved(src *PixelBuffer, cfg Config, observe CannyObserver) *PixelBuffer {
	if observe == nil {
		observe = func(string, *PixelBuffer, *GradientField) {}
	}
	blurred := Convolve(src, GaussianBlurKernel(cfg.Sigma))
	observe(StageBlur, blurred, nil)

	sharpened := Convolve(blurred, GaussianSharpenKernel())
	observe(StageSharpen, sharpened, nil)

	gf := ComputeGradients(sharpened, cfg.Pair())
	observe(StageGradients, nil, gf)

	suppressed := SuppressNonMaxima(gf)
	// keep the source stride and padding so the result can be committed
	if suppressed.Stride != src.Stride {
		suppressed = restride(suppressed, src)
	}
	observe(StageSuppress, suppressed, nil)

	linked := Hysteresis(suppressed, cfg.HighThreshold, cfg.LowThreshold)
	observe(StageHysteresis, linked, nil)

	out := Invert(linked.Clone())
	observe(StageInvert, out, nil)
	return out
}

// restride copies the pixel rows of buf over a clone of like, whose padding bytes survive.
func restride(buf, like *PixelBuffer) *PixelBuffer {
	out := like.Clone()
	rowBytes := buf.Width * buf.BytesPerPixel
	for y := 0; y < buf.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+rowBytes], buf.Pix[y*buf.Stride:y*buf.Stride+rowBytes])
	}
	return out
}
