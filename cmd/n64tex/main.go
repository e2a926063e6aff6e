package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bodgit/n64tex"
	"github.com/bodgit/n64tex/texture"
	"github.com/bodgit/n64tex/tlut"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const defaultJobs = 10

var errMissingFormat = errors.New("required flag \"format\" not set")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	if c.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func options(c *cli.Context) (n64tex.Options, error) {
	f, err := texture.ParseFormat(c.String("format"))
	if err != nil {
		return n64tex.Options{}, err
	}

	o := n64tex.Options{
		Format:       f,
		Width:        c.Int("width"),
		Height:       c.Int("height"),
		Palette:      c.String("palette"),
		Expand:       c.Bool("expand"),
		Quantize:     c.Bool("quantize"),
		GrayAlpha:    c.Bool("gray"),
		PaletteOut:   c.String("palette-out"),
		WritePalette: c.Bool("write-palette"),
	}

	if c.IsSet("palette-size") {
		size, err := tlut.ParseSize(c.String("palette-size"))
		if err != nil {
			return n64tex.Options{}, err
		}
		o.PaletteSize = &size
	}

	return o, nil
}

func conversionFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Usage:    "texture format (i4, i8, ia4, ia8, ia16, ci4, ci8, rgba16, rgba32)",
			Required: required,
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "texture width, taken from the filename if not set",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "texture height, taken from the filename if not set",
		},
		&cli.StringFlag{
			Name:    "palette",
			Aliases: []string{"p"},
			Usage:   "path to palette (TLUT) for color indexed textures",
		},
		&cli.StringFlag{
			Name:  "palette-size",
			Usage: "palette size (s4b, s8b, s16b, s32b)",
		},
		&cli.BoolFlag{
			Name:  "expand",
			Usage: "decode color indexed textures to full color",
		},
		&cli.BoolFlag{
			Name:  "quantize",
			Usage: "reduce full color images to a palette",
		},
		&cli.BoolFlag{
			Name:  "write-palette",
			Usage: "write the palette (TLUT) next to each output as <output>.tlut",
		},
		&cli.BoolFlag{
			Name:  "gray",
			Usage: "convert images to grayscale with alpha first",
		},
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "n64tex"
	app.Usage = "Nintendo 64 texture conversion utility"
	app.Version = "1.0.0"
	app.ArgsUsage = "INPUT"

	app.Flags = append([]cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "path to output, derived from the input if not set",
		},
		&cli.StringFlag{
			Name:  "palette-out",
			Usage: "path to write the palette (TLUT) to",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"N64TEX_VERBOSE"},
			Usage:   "increase verbosity",
		},
	}, conversionFlags(false)...)

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		// Not marked required as the batch command has its own
		if !c.IsSet("format") {
			return errMissingFormat
		}

		o, err := options(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		conv := n64tex.New(newLogger(c))

		err = conv.ConvertFile(c.Args().First(), c.String("output"), o)
		switch {
		case errors.Is(err, n64tex.ErrMissingDimensions):
			fmt.Fprintln(os.Stderr, "width and height are required, use --width and --height or name the file <name>.<width>x<height>.<format>")
			return nil
		case err != nil:
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:        "batch",
			Usage:       "Convert every texture and image under a directory",
			Description: "PNG images are converted to --format, textures named <name>.<width>x<height>.<format> are converted to PNG",
			ArgsUsage:   "DIRECTORY",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:    "jobs",
					Aliases: []string{"j"},
					EnvVars: []string{"N64TEX_JOBS"},
					Value:   defaultJobs,
					Usage:   "number of concurrent conversions",
				},
			}, conversionFlags(true)...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				conv := n64tex.New(newLogger(c))

				if err := conv.Scan(c.Args().First(), o, c.Int("jobs")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
