package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckroute/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [diagram.toml | routes.json]",
		Short: "Render a diagram to SVG, PNG, PDF, DOT or JSON",
		Long: `Render a diagram to SVG, PNG, PDF, DOT or JSON.

The input is either a diagram file, which is laid out and routed first, or a
routes.json document written by 'route', which is rendered as is.

Two visualizations are available: "routes" draws every relationship along its
lanes, and "nodelink" hands the laid out grid to Graphviz with orthogonal
splines. --step renders the diagram as it looks after the given reveal step.

PNG and PDF output requires rsvg-convert on the PATH.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateVizType(opts.VizType); err != nil {
				return err
			}
			cfg, err := LoadConfig(c.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			cfg.apply(&opts)
			return c.runRender(cmd.Context(), cfg, args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.VizType, "viz", "t", pipeline.DefaultVizType, "visualization: routes, nodelink")
	cmd.Flags().IntVar(&opts.Step, "step", 0, "render as of this reveal step (0 = everything)")
	cmd.Flags().BoolVar(&opts.AutoLayout, "auto-layout", false, "ignore explicit positions and lay out automatically")
	addRouteFlags(cmd)

	return cmd
}

// runRender renders input, routing it first unless it already is a routed
// document.
func (c *CLI) runRender(ctx context.Context, cfg *Config, input string, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	var (
		artifacts map[string][]byte
		cacheHit  bool
		stats     pipeline.Stats
	)
	if strings.HasSuffix(input, routesSuffix) {
		data, rerr := os.ReadFile(input)
		if rerr != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("read %s: %w", input, rerr)
		}
		artifacts, err = pipeline.RenderFromDocumentData(ctx, data, opts)
	} else {
		if err = readSource(input, &opts); err == nil {
			var result *pipeline.Result
			if result, err = runner.Execute(ctx, opts); err == nil {
				artifacts = result.Artifacts
				cacheHit = result.CacheInfo.RenderHit
				stats = result.Stats
			}
		}
	}
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	if stats.Failed > 0 {
		printWarning("%d relationships could not be routed and are not drawn", stats.Failed)
	}
	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
}

// artifactWriteParams holds the inputs of writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to
// output as given; several formats share output as base path.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		if err := writeFile(p.output, p.artifacts[p.formats[0]]); err != nil {
			return err
		}
		printSuccess("Rendered %s", p.formats[0])
		printFile(p.output)
		return nil
	}

	base := basePath(p.output, p.input)
	var written []string
	for _, format := range p.formats {
		path := base + "." + format
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	status := "Rendered"
	if p.cacheHit {
		status += " (" + iconCached + ")"
	}
	printSuccess("%s %s", status, strings.Join(p.formats, ", "))
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension (and a .routes suffix) from
// input. If output has a format extension (.svg, .pdf, etc.), it strips that
// extension.
func basePath(output, input string) string {
	if output == "" {
		if strings.HasSuffix(input, routesSuffix) {
			return strings.TrimSuffix(input, routesSuffix)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// A path of "-" writes to stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeFile writes data to path through openOutput.
func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
