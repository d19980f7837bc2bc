package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/greenroi/internal/engine/cache"
)

// newCacheCmd creates the cache command group for the fabrication cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Fabrication cache management commands"}
	cmd.AddCommand(newCacheStatsCmd(), newCachePurgeCmd(), newCacheClearCmd())
	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache location, TTL and size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return err
			}
			cmd.Printf("Directory: %s\n", store.Dir())
			cmd.Printf("TTL:       %s\n", cache.FormatTTL(store.TTL()))
			cmd.Printf("Entries:   %d\n", stats.Entries)
			cmd.Printf("Size:      %d bytes\n", stats.Bytes)
			return nil
		},
	}
}

func newCachePurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			n, err := store.Purge()
			if err != nil {
				return err
			}
			cmd.Printf("Removed %d expired entries\n", n)
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cache entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			cmd.Printf("Cache cleared: %s\n", store.Dir())
			return nil
		},
	}
}
