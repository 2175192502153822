package edge

import (
	"github.com/pkg/errors"

	"github.com/Fepozopo/edgedetect/pkg/logging"
)

// Detector applies edge-detection stages to a single Bitmap with a fixed Config.
// Each operation acquires the bitmap, works on a copy of its pixels and commits the result.
type Detector struct {
	img    *Bitmap
	cfg    Config
	logger logging.Logger
}

// NewDetector validates cfg and returns a Detector for img. img may be nil, in which case
// every operation does nothing. A nil logger falls back to the global logger.
func NewDetector(img *Bitmap, cfg Config, logger logging.Logger) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid detector config")
	}
	if logger == nil {
		logger = logging.Global()
	}
	return &Detector{img: img, cfg: cfg, logger: logger}, nil
}

// Image returns the bitmap the detector works on.
func (d *Detector) Image() *Bitmap {
	return d.img
}

// Config returns the validated configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// apply acquires the image, passes its pixels to fn and commits what fn returns.
// ErrNullBuffer is swallowed.
func (d *Detector) apply(op string, fn func(*PixelBuffer) *PixelBuffer) error {
	lock, err := Acquire(d.img)
	if err != nil {
		if errors.Is(err, ErrNullBuffer) {
			d.logger.Debugw("nothing to do", "op", op)
			return nil
		}
		return errors.Wrap(err, op)
	}
	defer lock.Release()

	out := fn(lock.Buffer())
	if err := lock.Commit(out); err != nil {
		return errors.Wrap(err, op)
	}
	d.logger.Debugw("applied", "op", op, "width", out.Width, "height", out.Height)
	return nil
}

// ConvertToGrayscale converts the image's color channels to luma.
func (d *Detector) ConvertToGrayscale() error {
	return d.apply("grayscale", Grayscale)
}

// ApplyGaussianBlur blurs the image with the configured sigma.
func (d *Detector) ApplyGaussianBlur() error {
	k := GaussianBlurKernel(d.cfg.Sigma)
	return d.apply("blur", func(buf *PixelBuffer) *PixelBuffer {
		return Convolve(buf, k)
	})
}

// ApplyGaussianSharpen sharpens the image.
func (d *Detector) ApplyGaussianSharpen() error {
	k := GaussianSharpenKernel()
	return d.apply("sharpen", func(buf *PixelBuffer) *PixelBuffer {
		return Convolve(buf, k)
	})
}

// ApplyFilter runs the configured filter kind: a thresholded gradient filter for Sobel,
// Prewitt and custom kernels, the full pipeline for Canny, and nothing for KindNone.
func (d *Detector) ApplyFilter() error {
	switch d.cfg.Kind {
	case KindNone:
		return nil
	case KindCanny:
		return d.ApplyCanny()
	}
	pair := d.cfg.Pair()
	return d.apply(d.cfg.Kind.String(), func(buf *PixelBuffer) *PixelBuffer {
		return ThresholdGradients(buf, pair, d.cfg.HighThreshold)
	})
}

// ApplyCanny runs the Canny pipeline on one snapshot of the image and commits the edge map.
// The image stays locked for the whole pipeline; intermediate stages are never committed.
func (d *Detector) ApplyCanny() error {
	return d.apply("canny", func(buf *PixelBuffer) *PixelBuffer {
		return CannyObserved(buf, d.cfg, func(stage string, out *PixelBuffer, gf *GradientField) {
			if gf != nil {
				d.logger.Debugw("canny stage", "stage", stage, "max_gradient", gf.Max)
				return
			}
			d.logger.Debugw("canny stage", "stage", stage)
		})
	})
}

// Invert replaces every byte of every pixel with 255 minus its value. Unlike the
// neighborhood stages it covers the border and the alpha channel too; row padding is left alone.
func (d *Detector) Invert() error {
	return d.apply("invert", Invert)
}
