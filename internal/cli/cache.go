package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimtonn/foldout/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered diagram cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached diagrams",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			var (
				n     int
				where string
			)
			switch s := store.(type) {
			case *cache.RedisCache:
				n, err = s.Clear(cmd.Context())
				where = "Redis: " + c.Config.Cache.RedisAddr
			case *cache.FileCache:
				n, err = s.Clear()
				where = "Directory: " + s.Dir()
			default:
				printInfo(c.Out, "Cache is disabled")
				return nil
			}
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess(c.Out, "Cleared %d cached entries", n)
			printDetail(c.Out, "%s", where)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show which cache backend is in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			switch s := store.(type) {
			case *cache.RedisCache:
				printKeyValue(c.Out, "backend", "redis")
				printKeyValue(c.Out, "address", c.Config.Cache.RedisAddr)
			case *cache.FileCache:
				printKeyValue(c.Out, "backend", "file")
				printKeyValue(c.Out, "directory", s.Dir())
			default:
				printKeyValue(c.Out, "backend", "none")
			}
			printKeyValue(c.Out, "ttl", c.Config.Cache.TTL.String())
			return nil
		},
	}
}
