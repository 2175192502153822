// Registry of the operations exposed by ApplyCommand.
//
// The CLI builds its subcommands and flags from Commands, so adding an operation here and a
// case in ApplyCommand is all that is needed to surface it.

package edge

// ArgSpec describes a single command argument. Fields are textual and used for help and flag
// generation rather than enforced typing.
type ArgSpec struct {
	Name        string // human name, also the CLI flag name
	Type        string // "float" or "kernel"
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its arguments, in positional order.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string
	Description string
}

// Commands is the list of commands understood by ApplyCommand.
var Commands = []CommandSpec{
	{
		Name:        "grayscale",
		Args:        []ArgSpec{},
		Usage:       "grayscale",
		Description: "Convert color channels to luma (0.299R + 0.587G + 0.114B).",
	},
	{
		Name:        "blur",
		Args:        []ArgSpec{{"sigma", "float", false, "1.4", "gaussian sigma, clamped to [0.1,20]"}},
		Usage:       "blur [sigma]",
		Description: "5x5 Gaussian blur.",
	},
	{
		Name:        "sharpen",
		Args:        []ArgSpec{},
		Usage:       "sharpen",
		Description: "3x3 Gaussian sharpen.",
	},
	{
		Name:        "sobel",
		Args:        []ArgSpec{{"threshold", "float", false, "100", "edge threshold [1,100]"}},
		Usage:       "sobel [threshold]",
		Description: "Sobel edge filter; edges are drawn black on white.",
	},
	{
		Name:        "prewitt",
		Args:        []ArgSpec{{"threshold", "float", false, "100", "edge threshold [1,100]"}},
		Usage:       "prewitt [threshold]",
		Description: "Prewitt edge filter; edges are drawn black on white.",
	},
	{
		Name: "custom",
		Args: []ArgSpec{
			{"gx", "kernel", true, "", "horizontal kernel, 9 or 25 comma-separated weights"},
			{"gy", "kernel", true, "", "vertical kernel, same size as gx"},
			{"threshold", "float", false, "100", "edge threshold [1,100]"},
		},
		Usage:       "custom <gx> <gy> [threshold]",
		Description: "Gradient edge filter with user supplied kernels.",
	},
	{
		Name: "canny",
		Args: []ArgSpec{
			{"high", "float", false, "100", "strong edge threshold [1,100]"},
			{"low", "float", false, "20", "weak edge threshold [1,100]"},
			{"sigma", "float", false, "1.4", "gaussian sigma, clamped to [0.1,20]"},
		},
		Usage:       "canny [high] [low] [sigma]",
		Description: "Canny edge detection: blur, sharpen, Sobel, non-maximum suppression, hysteresis, invert.",
	},
	{
		Name:        "invert",
		Args:        []ArgSpec{},
		Usage:       "invert",
		Description: "Invert every channel.",
	},
}

// LookupCommand returns the spec registered under name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
