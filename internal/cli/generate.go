package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dungenlab/dungen/pkg/pipeline"
	"github.com/dungenlab/dungen/pkg/store"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	config  configFlags
	seed    int64  // generation seed (0 selects the default)
	output  string // output file for the plan JSON ("-" for stdout)
	name    string // archive label, implies --save
	save    bool   // archive the plan in the local store
	show    bool   // print the tile map after generating
	noCache bool   // bypass the plan cache entirely
	refresh bool   // regenerate even on a cache hit
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dungeon floor plan",
		Long: `Generate a dungeon floor plan from a seed and configuration.

Identical seed and configuration inputs always reproduce the same plan.
The plan is written as JSON to --output, and can be archived locally
with --save for later rendering or inspection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	opts.config.register(cmd)
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "generation seed (default 42)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the plan JSON to a file ('-' for stdout)")
	cmd.Flags().StringVar(&opts.name, "name", "", "label for the archived plan (implies --save)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "archive the plan locally")
	cmd.Flags().BoolVar(&opts.show, "show", false, "print the tile map to the terminal")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the plan cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if a cached plan exists")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.config.resolve()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result, err := runner.Generate(ctx, pipeline.Options{
		Config:  cfg,
		Seed:    opts.config.effectiveSeed(opts.seed),
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d rooms", result.Stats.Rooms))

	printSuccess("Floor plan %dx%d from seed %d", result.Plan.Width, result.Plan.Length, result.Plan.Seed)
	printStats(result.Stats.Rooms, result.Stats.Connections, result.CacheInfo.PlanHit)
	if result.Stats.Unconnected > 0 {
		printWarning("%d adjacent room pairs could not be connected", result.Stats.Unconnected)
	}
	if opts.show {
		if err := printPlanASCII(result.Plan); err != nil {
			return err
		}
	}

	if opts.output != "" {
		if err := writePlanJSON(result, opts.output); err != nil {
			return err
		}
		if opts.output != "-" {
			printFile(opts.output)
		}
	}

	if opts.save || opts.name != "" {
		st, err := newStore(ctx, "")
		if err != nil {
			return err
		}
		defer st.Close(ctx)

		rec, err := store.NewRecord(opts.name, result.Plan, result.PlanHash)
		if err != nil {
			return err
		}
		if err := st.Save(ctx, rec); err != nil {
			return fmt.Errorf("archive plan: %w", err)
		}
		printInfo("Archived as %s", rec.ID)
	}

	return nil
}

// writePlanJSON writes the plan to path, or stdout when path is "-".
func writePlanJSON(result *pipeline.Result, path string) error {
	data, err := json.MarshalIndent(result.Plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
