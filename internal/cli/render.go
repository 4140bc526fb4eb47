package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dungenlab/dungen/pkg/dungeon"
	"github.com/dungenlab/dungen/pkg/pipeline"
	"github.com/dungenlab/dungen/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config  configFlags
	seed    int64    // generate from seed when no input file is given
	input   string   // plan JSON file produced by generate
	output  string   // output file (single format) or base path (multiple)
	formats []string // output formats: ascii, dot, svg, png, json
	noCache bool
}

// renderCommand creates the render command for producing plan artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a floor plan to ASCII, DOT, SVG, PNG, or JSON",
		Long: `Render a floor plan as a tile map or connectivity diagram.

The plan comes from a JSON file produced by 'dungen generate -o', or is
generated on the fly from --seed and the configuration flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runRender(cmd, &opts)
		},
	}

	opts.config.register(cmd)
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "generate from this seed instead of reading a file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): ascii (default), dot, svg, png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the plan cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["ascii"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatASCII}
	}
	return strings.Split(s, ",")
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	plan, err := c.loadOrGenerate(cmd, opts)
	if err != nil {
		return err
	}
	logger.Infof("Rendering %dx%d plan, seed %d", plan.Width, plan.Length, plan.Seed)

	// Bare ASCII with no output path goes straight to the terminal.
	if len(opts.formats) == 1 && opts.formats[0] == pipeline.FormatASCII && opts.output == "" {
		data, err := render.Artifact(plan, pipeline.FormatASCII)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	base := basePath(opts.output, opts.input, plan.Seed)
	for _, format := range opts.formats {
		data, err := render.Artifact(plan, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := base + "." + extension(format)
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		logger.Debugf("Generated %s: %d bytes", format, len(data))
		printFile(path)
	}
	return nil
}

// loadOrGenerate reads the plan file when one is given, otherwise runs
// the generation pipeline with the seed and configuration flags.
func (c *CLI) loadOrGenerate(cmd *cobra.Command, opts *renderOpts) (*dungeon.FloorPlan, error) {
	if opts.input != "" {
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return nil, err
		}
		var plan dungeon.FloorPlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("parse plan %s: %w", opts.input, err)
		}
		return &plan, nil
	}

	cfg, err := opts.config.resolve()
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return nil, err
	}
	result, err := runner.Generate(cmd.Context(), pipeline.Options{
		Config: cfg,
		Seed:   opts.config.effectiveSeed(opts.seed),
		Logger: loggerFromContext(cmd.Context()),
	})
	if err != nil {
		return nil, err
	}
	return result.Plan, nil
}

// basePath derives the base output path from the output and input file
// paths, falling back to a seed-derived name for generated plans.
func basePath(output, input string, seed int64) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] || ext == ".txt" {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input != "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return fmt.Sprintf("dungeon_%d", seed)
}

// extension maps a format to its file extension.
func extension(format string) string {
	if format == pipeline.FormatASCII {
		return "txt"
	}
	return format
}
