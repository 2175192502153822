package edge

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Kind selects what ApplyFilter does.
type Kind int

// Filter kinds.
const (
	KindNone Kind = iota
	KindSobel
	KindPrewitt
	KindCanny
	KindCustomMatrix
)

var kindNames = map[Kind]string{
	KindNone:         "none",
	KindSobel:        "sobel",
	KindPrewitt:      "prewitt",
	KindCanny:        "canny",
	KindCustomMatrix: "custom",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a filter name such as "sobel" to its Kind. Case is ignored.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindNone, errors.Errorf("unknown filter kind %q", s)
}

// Threshold and sigma defaults.
const (
	DefaultHighThreshold = 100
	DefaultLowThreshold  = 20
	DefaultSigma         = 1.4

	MinThreshold = 1
	MaxThreshold = 100
)

// Config is fixed for the lifetime of a Detector.
type Config struct {
	Kind Kind
	// HighThreshold is the strong-edge threshold for Canny and the single threshold of the
	// Sobel, Prewitt and custom filters.
	HighThreshold float64
	LowThreshold  float64
	Sigma         float64
	// Custom is required for KindCustomMatrix and ignored otherwise.
	Custom *KernelPair
}

// DefaultConfig returns the default thresholds and sigma for kind.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:          kind,
		HighThreshold: DefaultHighThreshold,
		LowThreshold:  DefaultLowThreshold,
		Sigma:         DefaultSigma,
	}
}

func thresholdInRange(v float64) bool {
	// false for NaN
	return v >= MinThreshold && v <= MaxThreshold
}

// Validate checks thresholds and kernels and clamps Sigma into [MinSigma, MaxSigma].
// NaN and infinite values are rejected.
func (cfg *Config) Validate() error {
	if !thresholdInRange(cfg.HighThreshold) {
		return errors.Errorf("high threshold %v out of range [%d,%d]", cfg.HighThreshold, MinThreshold, MaxThreshold)
	}
	if !thresholdInRange(cfg.LowThreshold) {
		return errors.Errorf("low threshold %v out of range [%d,%d]", cfg.LowThreshold, MinThreshold, MaxThreshold)
	}
	if math.IsNaN(cfg.Sigma) || math.IsInf(cfg.Sigma, 0) {
		return errors.Errorf("sigma %v is not a finite number", cfg.Sigma)
	}
	cfg.Sigma = ClampSigma(cfg.Sigma)
	switch cfg.Kind {
	case KindNone, KindSobel, KindPrewitt, KindCanny:
	case KindCustomMatrix:
		if cfg.Custom == nil {
			return errors.Wrap(ErrInvalidKernel, "custom filter requires a kernel pair")
		}
		if _, err := NewKernelPair(cfg.Custom.X, cfg.Custom.Y); err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown filter kind %d", cfg.Kind)
	}
	return nil
}

// Pair returns the gradient kernels used by the configured kind. Canny and None use Sobel.
func (cfg Config) Pair() KernelPair {
	switch cfg.Kind {
	case KindPrewitt:
		return PrewittPair()
	case KindCustomMatrix:
		if cfg.Custom != nil {
			return *cfg.Custom
		}
	}
	return SobelPair()
}
