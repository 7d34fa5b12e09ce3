package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pypin/pkg/cache"
)

// cacheCommand creates the release store management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the release history store used by --cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all stored release histories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("store %T cannot be cleared", store)
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear store: %w", err)
			}
			if n == 0 {
				printInfo(c.Stdout, "Cache is empty")
				return nil
			}
			printSuccess(c.Stdout, "Cleared %d cached entries", n)
			printDetail(c.Stdout, "Location: %s", c.storeLocation())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where release histories are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.Stdout, c.storeLocation())
			return nil
		},
	}
}

func (c *CLI) storeLocation() string {
	if c.cfg.RedisURL != "" {
		return c.cfg.RedisURL
	}
	return c.cfg.CacheDir
}
