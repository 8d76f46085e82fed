package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckroute/pkg/pipeline"
)

// routesSuffix marks routed documents written by the route command.
const routesSuffix = ".routes.json"

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		output string
		quiet  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "route [diagram.toml]",
		Short: "Route every relationship of a diagram",
		Long: `Route every relationship of a diagram through the streets of the grid.

Relationships are routed one at a time in declaration order. Each takes the
least complex path (length plus turns plus lane changes) over the lanes left
free by the relationships before it, so earlier relationships get the
straighter routes. A relationship for which no path exists is reported and
left unrouted; the others are still routed.

The number of lanes per street is derived from the canvas size unless given
with --lanes-h and --lanes-v. The output is a routes.json document that can
be rendered with 'render'.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			cfg.apply(&opts)
			return c.runRoute(cmd.Context(), cfg, args[0], opts, output, quiet)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>"+routesSuffix+")")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the route table")
	cmd.Flags().BoolVar(&opts.AutoLayout, "auto-layout", false, "ignore explicit positions and lay out automatically")
	addRouteFlags(cmd)

	return cmd
}

// runRoute runs the pipeline up to routing and writes the routed document.
func (c *CLI) runRoute(ctx context.Context, cfg *Config, input string, opts pipeline.Options, output string, quiet bool) error {
	if err := readSource(input, &opts); err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatJSON}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := newSpinner(ctx, "Routing relationships...")
	restore := trackRouting(spinner)
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	restore()
	if err != nil {
		spinner.StopWithError("Routing failed")
		return err
	}
	spinner.Stop()

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + routesSuffix
	}
	if err := writeFile(outputPath, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	if failed := result.Stats.Failed; failed > 0 {
		printWarning("Routed %d of %d relationships", result.Stats.Relationships-failed, result.Stats.Relationships)
	} else {
		printSuccess("Routed %d relationships", result.Stats.Relationships)
	}
	printFile(outputPath)
	printStats(result.Stats.Components, result.Stats.Relationships, result.Stats.Failed,
		result.CacheInfo.LayoutHit && result.CacheInfo.RouteHit)
	if !quiet {
		printRouteTable(result.Document)
	}
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
