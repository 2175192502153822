// Package cli is the edgedetect command line: one subcommand per engine command, each reading
// an image, running the command on it and writing the result.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Fepozopo/edgedetect/pkg/edge"
	"github.com/Fepozopo/edgedetect/pkg/logging"
)

const (
	// Global flags.
	flagGrayscale = "grayscale"
	flagDebug     = "debug"
	flagLogLevel  = "log-level"

	envPrefix = "EDGEDETECT_"
)

// EnvVar returns the environment variable that backs the flag called name.
func EnvVar(name string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Run loads .env and runs the app with args, os.Args style.
func Run(args []string) error {
	if err := LoadDotEnv(); err != nil {
		return errors.Wrap(err, "loading .env")
	}
	return NewApp().Run(args)
}

// NewApp builds the command line app from edge.Commands.
func NewApp() *cli.App {
	logger := logging.NewLogger("edgedetect")
	store := NewMetaStore(edge.Commands)

	app := &cli.App{
		Name:      "edgedetect",
		Usage:     "edge detection for raster images",
		Version:   Version,
		ArgsUsage: "<command> [flags] <input> <output>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagGrayscale,
				Aliases: []string{"g"},
				Usage:   "convert to grayscale before running the command",
				EnvVars: []string{EnvVar(flagGrayscale)},
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Usage:   "enable debug logging",
				EnvVars: []string{EnvVar(flagDebug)},
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "log level: debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{EnvVar(flagLogLevel)},
			},
		},
		Before: func(c *cli.Context) error {
			level := logging.ParseLevel(c.String(flagLogLevel))
			if c.Bool(flagDebug) {
				level = logging.ParseLevel("debug")
			}
			logger.SetLevel(level)
			logging.ReplaceGlobal(logger)
			return nil
		},
		After: func(c *cli.Context) error {
			// stderr cannot always be synced; there is nothing useful to report
			_ = logger.Sync()
			return nil
		},
	}

	for _, spec := range edge.Commands {
		app.Commands = append(app.Commands, imageCommand(spec, store, logger))
	}
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:  "commands",
			Usage: "list the image commands and their parameters",
			Action: func(c *cli.Context) error {
				for _, spec := range store.Commands {
					tip, err := store.GetTooltip(spec.Name)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s\n  %s\n\n", spec.Usage, strings.ReplaceAll(tip, "\n", "\n  "))
				}
				return nil
			},
		},
		&cli.Command{
			Name:  "version",
			Usage: "print the version",
			Action: func(c *cli.Context) error {
				fmt.Fprintln(c.App.Writer, Version)
				return nil
			},
		},
		&cli.Command{
			Name:  "update",
			Usage: "check GitHub for a newer release and install it",
			Action: func(c *cli.Context) error {
				return CheckForUpdates(os.Stdin, c.App.Writer, logger)
			},
		},
	)
	return app
}

// imageCommand turns a registry entry into a subcommand whose arguments are flags.
func imageCommand(spec edge.CommandSpec, store *MetaStore, logger logging.Logger) *cli.Command {
	flags := make([]cli.Flag, 0, len(spec.Args))
	for _, a := range spec.Args {
		usage := a.Description
		if a.Default != "" {
			usage += " (default: " + a.Default + ")"
		}
		flags = append(flags, &cli.StringFlag{
			Name:    a.Name,
			Usage:   usage,
			EnvVars: []string{EnvVar(a.Name)},
		})
	}
	return &cli.Command{
		Name:        spec.Name,
		Usage:       spec.Description,
		UsageText:   "edgedetect [global flags] " + spec.Name + " [flags] <input> <output>",
		Description: GenerateTooltip(spec),
		Flags:       flags,
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.Errorf("%s needs an input and an output path, got %d args", spec.Name, c.NArg())
			}
			raw := make([]string, len(spec.Args))
			for i, a := range spec.Args {
				raw[i] = c.String(a.Name)
			}
			args, err := NormalizeArgs(store, spec.Name, raw)
			if err != nil {
				return err
			}
			return processFile(c.Args().Get(0), c.Args().Get(1), spec.Name, args, c.Bool(flagGrayscale), logger)
		},
	}
}

// processFile reads in, runs the command on it and writes the result to out.
func processFile(in, out, command string, args []string, grayscale bool, logger logging.Logger) error {
	img, err := LoadImage(in)
	if err != nil {
		return err
	}
	if info, err := GetImageInfo(img); err == nil {
		logger.Debugw("loaded", "path", in, "info", info)
	}

	bm := edge.FromImage(img)
	if !bm.Format.Supported() {
		logger.Infow("converting to 8-bit RGBA", "path", in, "format", bm.Format.String())
		bm = edge.FromImage(imaging.Clone(img))
	}

	base := edge.DefaultConfig(edge.KindNone)
	if grayscale && command != "grayscale" {
		if err := edge.ApplyCommand(bm, "grayscale", nil, base, logger); err != nil {
			return err
		}
	}
	if err := edge.ApplyCommand(bm, command, args, base, logger); err != nil {
		return errors.Wrapf(err, "%s %s", command, in)
	}

	if err := SaveImage(out, bm.ToImage()); err != nil {
		return err
	}
	logger.Infow("wrote", "command", command, "path", out)
	return nil
}
