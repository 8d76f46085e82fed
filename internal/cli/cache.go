package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckroute/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout, route and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.Cache.Disabled {
				printInfo("Cache is disabled")
				return nil
			}

			cc, err := c.newCache(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printInfo("Cache is empty")
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			if fc, ok := cc.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
	addCacheFlags(cmd)
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.Cache.RedisURL != "" {
				printKeyValue("redis", cfg.Cache.RedisURL)
				return nil
			}
			dir, err := cfg.cacheDirectory()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)

			if verbose, _ := cmd.Flags().GetBool("entries"); verbose {
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				counts, err := fc.Entries(cmd.Context())
				if err != nil {
					return fmt.Errorf("count entries: %w", err)
				}
				for _, stage := range []string{"layout", "routes", "artifact"} {
					printKeyValue(stage, fmt.Sprintf("%d entries", counts[stage]))
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("entries", false, "also count the cached entries per stage")
	cmd.Flags().String("cache-dir", "", "cache directory (default: ~/.cache/deckroute)")
	cmd.Flags().String("redis-url", "", "redis cache URL")
	return cmd
}
