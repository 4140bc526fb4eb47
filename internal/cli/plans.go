package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dungenlab/dungen/pkg/dungeon"
	"github.com/dungenlab/dungen/pkg/render/ascii"
)

// plansCommand creates the plans command group for the local archive.
func (c *CLI) plansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse and manage archived floor plans",
	}

	cmd.AddCommand(c.plansListCommand())
	cmd.AddCommand(c.plansShowCommand())
	cmd.AddCommand(c.plansDeleteCommand())

	return cmd
}

// plansListCommand creates the "plans list" subcommand.
func (c *CLI) plansListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived floor plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := newStore(ctx, "")
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			summaries, err := st.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				printInfo("No archived plans")
				return nil
			}

			for _, s := range summaries {
				name := s.Name
				if name == "" {
					name = StyleDim.Render("(unnamed)")
				}
				fmt.Printf("%s  %s\n", StyleValue.Render(s.ID), name)
				printDetail("seed %d · %dx%d cells · %s",
					s.Seed, s.Config.CellsX, s.Config.CellsZ,
					s.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of plans to list")
	return cmd
}

// plansShowCommand creates the "plans show" subcommand: renders an
// archived plan's tile map to the terminal.
func (c *CLI) plansShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render an archived plan to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := newStore(ctx, "")
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			rec, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			plan, err := rec.DecodePlan()
			if err != nil {
				return err
			}

			printInfo("Seed %d, %dx%d", plan.Seed, plan.Width, plan.Length)
			return printPlanASCII(plan)
		},
	}
}

// printPlanASCII writes the plan's tile map to stdout with styling.
func printPlanASCII(plan *dungeon.FloorPlan) error {
	_, err := fmt.Print(ascii.Render(plan, ascii.Options{Color: true}))
	return err
}

// plansDeleteCommand creates the "plans delete" subcommand.
func (c *CLI) plansDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an archived plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := newStore(ctx, "")
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
