package edge

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Fepozopo/edgedetect/pkg/logging"
)

// ApplyCommand runs the named command from Commands on img. Positional args override the
// matching fields of base; empty strings keep base's value.
func ApplyCommand(img *Bitmap, name string, args []string, base Config, logger logging.Logger) error {
	spec, ok := LookupCommand(name)
	if !ok {
		return errors.Wrapf(ErrUnknownCommand, "%q", name)
	}
	if len(args) > len(spec.Args) {
		return errors.Errorf("%s takes at most %d args, got %d (usage: %s)", name, len(spec.Args), len(args), spec.Usage)
	}
	cfg := base
	for i, a := range spec.Args {
		var v string
		if i < len(args) {
			v = strings.TrimSpace(args[i])
		}
		if v == "" {
			if a.Required {
				return errors.Errorf("%s requires %s (usage: %s)", name, a.Name, spec.Usage)
			}
			continue
		}
		if err := setArg(&cfg, name, a, v); err != nil {
			return err
		}
	}

	switch name {
	case "sobel":
		cfg.Kind = KindSobel
	case "prewitt":
		cfg.Kind = KindPrewitt
	case "custom":
		cfg.Kind = KindCustomMatrix
	case "canny":
		cfg.Kind = KindCanny
	}

	d, err := NewDetector(img, cfg, logger)
	if err != nil {
		return err
	}
	switch name {
	case "grayscale":
		return d.ConvertToGrayscale()
	case "blur":
		return d.ApplyGaussianBlur()
	case "sharpen":
		return d.ApplyGaussianSharpen()
	case "sobel", "prewitt", "custom":
		return d.ApplyFilter()
	case "canny":
		return d.ApplyCanny()
	case "invert":
		return d.Invert()
	}
	return errors.Wrapf(ErrUnknownCommand, "%q", name)
}

func setArg(cfg *Config, command string, a ArgSpec, v string) error {
	if a.Type == "kernel" {
		k, err := ParseKernel(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", a.Name)
		}
		if cfg.Custom == nil {
			cfg.Custom = &KernelPair{}
		} else {
			pair := *cfg.Custom
			cfg.Custom = &pair
		}
		if a.Name == "gx" {
			cfg.Custom.X = k
		} else {
			cfg.Custom.Y = k
		}
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", a.Name)
	}
	switch a.Name {
	case "sigma":
		cfg.Sigma = f
	case "low":
		cfg.LowThreshold = f
	case "high", "threshold":
		cfg.HighThreshold = f
	default:
		return errors.Errorf("%s: unhandled argument %s", command, a.Name)
	}
	return nil
}

// ParseKernel parses a comma or whitespace separated list of 9 or 25 weights into a square kernel.
func ParseKernel(s string) (Kernel, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	weights := make([]float64, 0, len(fields))
	for _, f := range fields {
		w, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
			return Kernel{}, errors.Wrapf(ErrInvalidKernel, "weight %q", f)
		}
		weights = append(weights, w)
	}
	return NewKernelFromWeights(weights)
}
