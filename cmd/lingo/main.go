package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/config"
	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/internal/version"
	"github.com/standardbeagle/lingo/pkg/pathutil"
)

// loadConfigWithOverrides loads the layered configuration and applies the
// global flags on top.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	root := c.String("root")
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else {
		cfg, err = config.LoadWithRoot(root)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		root = ""
	}

	err = cfg.Apply(config.Overrides{
		Root:          root,
		Include:       c.StringSlice("include"),
		Exclude:       c.StringSlice("exclude"),
		Adapter:       c.String("adapter"),
		ImportSource:  c.String("import-source"),
		MinConfidence: c.String("min-confidence"),
		LogLevel:      c.String("log-level"),
		Workers:       c.Int("workers"),
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg *config.Config) *slog.Logger {
	return debug.NewLogger(c.App.ErrWriter, debug.LoggerOptions{
		Level:   cfg.LogLevel,
		NoColor: c.Bool("no-color"),
	})
}

// relToRoot turns command-line paths into include patterns below the root:
// files match themselves, directories everything beneath them.
func relToRoot(root string, args []string) ([]string, error) {
	patterns := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		rel, ok := pathutil.Within(root, abs)
		if !ok {
			return nil, fmt.Errorf("%s is outside the project root %s", arg, root)
		}
		switch {
		case info.IsDir() && rel == ".":
			patterns = append(patterns, "**")
		case info.IsDir():
			patterns = append(patterns, rel+"/**")
		default:
			patterns = append(patterns, rel)
		}
	}
	return patterns, nil
}

var confidenceFlag = &cli.StringFlag{
	Name:    "min-confidence",
	Aliases: []string{"m"},
	Usage:   "Lowest confidence to report: high, medium or low (default from config)",
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "lingo",
		Usage:                  "Find user-facing strings in JS/JSX/TS/TSX and wrap them for translation",
		Version:                version.Info(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (.kdl or .toml); defaults to .lingo.kdl or .lingo.toml in the root",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Only analyze files matching glob patterns (e.g., --include 'src/**')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip files matching glob patterns (e.g., --exclude '**/legacy/**')",
			},
			&cli.StringFlag{
				Name:  "adapter",
				Usage: "Translation framework adapter (" + fmt.Sprint(adapter.Names()) + ")",
			},
			&cli.StringFlag{
				Name:  "import-source",
				Usage: "Module the translation API is imported from",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Files analyzed in parallel (0 = one per CPU)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable coloured output",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "scan",
				Aliases:   []string{"s"},
				Usage:     "List translatable strings that are not wrapped yet",
				ArgsUsage: "[paths...]",
				Flags: []cli.Flag{
					confidenceFlag,
					&cli.BoolFlag{Name: "json", Aliases: []string{"j"}, Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "yaml", Usage: "Output as YAML"},
				},
				Action: scanCommand,
			},
			{
				Name:      "wrap",
				Aliases:   []string{"w"},
				Usage:     "Wrap translatable strings in place",
				ArgsUsage: "[paths...]",
				Flags: []cli.Flag{
					confidenceFlag,
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Confirm each candidate"},
					&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "Print a diff instead of writing files"},
				},
				Action: wrapCommand,
			},
			{
				Name:  "extract",
				Usage: "Collect already wrapped strings into a YAML message catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Catalog file, relative to the root, or - for stdout (default from config)"},
					&cli.StringFlag{Name: "locale", Usage: "Source locale of the catalog (default from config)"},
					&cli.BoolFlag{Name: "merge", Usage: "Keep messages of an existing catalog that are no longer found"},
				},
				Action: extractCommand,
			},
			{
				Name:      "classify",
				Usage:     "Explain how a single string is classified",
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "context", Usage: "markup-text, markup-attribute, string-literal or template-literal", Value: "string-literal"},
					&cli.StringFlag{Name: "attribute", Usage: "Enclosing markup attribute (implies markup-attribute)"},
					&cli.StringFlag{Name: "call", Usage: "Enclosing call, e.g. console.log"},
					&cli.StringFlag{Name: "variable", Usage: "Name of the variable the string initializes"},
				},
				Action: classifyCommand,
			},
			{
				Name:   "watch",
				Usage:  "Re-analyze files as they change and report new candidates",
				Action: watchCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the analysis tools over the Model Context Protocol on stdio",
				Action: mcpCommand,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
