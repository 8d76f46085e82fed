package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckroute/pkg/graph"
	"github.com/matzehuels/deckroute/pkg/pipeline"
)

// layoutCommand creates the layout command for placing components.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [diagram.toml]",
		Short: "Place the components of a diagram on the grid",
		Long: `Place the components of a diagram on the grid.

Components with explicit positions keep them. When no component has a
position, the layout is derived from the shape of the diagram: a chain is laid
out left to right and anything else as a hierarchy, one row per level.
Mixing positioned and unpositioned components is an error unless
--auto-layout is given, which discards every explicit position.

The output is a layout.json file with the cell of every component.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cfg, args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&opts.AutoLayout, "auto-layout", false, "ignore explicit positions and lay out automatically")
	addCacheFlags(cmd)

	return cmd
}

// runLayout loads the diagram, places it, and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, cfg *Config, input string, opts pipeline.Options, output string) error {
	if err := readSource(input, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prepared, err := runner.Prepare(ctx, opts)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	p, cacheHit, err := runner.LayoutWithCacheInfo(ctx, prepared.Diagram, prepared.DiagramHash, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(graph.FromPlacement(prepared.ID, p), outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete (%s, %d×%d grid)", p.Shape, p.Bounds.MaxCol, p.Bounds.MaxRow)
	printFile(outputPath)
	printStats(prepared.Stats.Components, prepared.Stats.Relationships, 0, cacheHit)
	printNewline()
	printNextStep("Route", appName+" route "+input)

	return nil
}
