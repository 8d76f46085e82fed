package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/deckroute/pkg/buildinfo"
	"github.com/matzehuels/deckroute/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The command tree is:
//
//	deckroute layout <diagram>      place components on the grid
//	deckroute route <diagram>       route relationships, write routes.json
//	deckroute render <file>         render a diagram or routes.json
//	deckroute serve                 run the HTTP API
//	deckroute cache clear|path      manage the result cache
//	deckroute completion <shell>    shell completion scripts
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Deckroute lays out architecture diagrams and routes their edges",
		Long: `Deckroute places the components of an architecture diagram on a grid and
routes every relationship through the streets between them, assigning
parallel lanes so that edges sharing a street never overlap.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(newLogHooks(c.Logger))
			observability.SetCacheHooks(logCacheHooks{logger: c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./deckroute.yaml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
