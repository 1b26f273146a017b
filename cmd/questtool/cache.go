package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcwiki/questtool/internal/cache"
	"github.com/kcwiki/questtool/internal/index"
	"github.com/kcwiki/questtool/internal/quest"
	"github.com/kcwiki/questtool/internal/ui"
)

var cacheCmd = &cobra.Command{
	Use:     "cache",
	GroupID: "advanced",
	Short:   "SQLite query cache of the aggregate file",
	Long: `Manage the query cache, a local SQLite database (.questtool/cache.db by
default) rebuilt from the aggregate file. It is never read by split, merge
or delete.`,
}

var cacheSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the cache from the aggregate file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		records, err := quest.ReadCollection(cfg.Aggregate)
		if err != nil {
			return err
		}

		return withCache(ctx, func(db *cache.DB) error {
			if err := db.Rebuild(ctx, records); err != nil {
				return err
			}
			run, err := db.LastSync(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%s Cached %d quests\n", ui.RenderPass("✓"), run.Quests)
			fmt.Printf("   Cache: %s\n", db.Path())
			fmt.Printf("   Run: %s\n", ui.RenderMuted(run.ID))
			return nil
		})
	},
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show when the cache was last synced",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withCache(ctx, func(db *cache.DB) error {
			run, err := db.LastSync(ctx)
			if errors.Is(err, cache.ErrNeverSynced) {
				fmt.Printf("%s Cache not synced yet\n", ui.RenderWarn("⚠"))
				fmt.Printf("   Run 'questtool cache sync' to create it\n")
				return nil
			}
			if err != nil {
				return err
			}
			n, err := db.Count(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Location: %s\n", db.Path())
			fmt.Printf("Quests: %d\n", n)
			fmt.Printf("Synced: %s %s\n", run.SyncedAt.Local().Format("2006-01-02 15:04:05"), ui.RenderMuted(run.ID))
			return nil
		})
	},
}

var cacheShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one cached quest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withCache(ctx, func(db *cache.DB) error {
			r, err := db.Get(ctx, args[0])
			if errors.Is(err, cache.ErrNotFound) {
				return fmt.Errorf("%w (run 'questtool cache sync' to refresh)", err)
			}
			if err != nil {
				return err
			}

			out, err := r.Encode(2)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		})
	},
}

var cacheSearchCmd = &cobra.Command{
	Use:   "search TEXT",
	Short: "Find cached quests by code or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		ctx := cmd.Context()
		return withCache(ctx, func(db *cache.DB) error {
			records, err := db.Search(ctx, args[0], limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No matching quests")
				return nil
			}

			for _, r := range records {
				code := fmt.Sprintf("%-6s", index.NormalizeCode(r.WikiID()))
				fmt.Printf("%s  %s %s\n", ui.RenderAccent(r.ID), ui.RenderMuted(code), r.Name())
			}
			return nil
		})
	},
}

func init() {
	cacheSearchCmd.Flags().Int("limit", 50, "Maximum number of results")

	cacheCmd.AddCommand(cacheSyncCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheSearchCmd)
	rootCmd.AddCommand(cacheCmd)
}

// withCache opens the cache, ensures the schema and runs fn. The cache is
// closed on every path, including errors from fn.
func withCache(ctx context.Context, fn func(db *cache.DB) error) (err error) {
	db, err := cache.Open(cfg.Cache.Path, logs.New("cache"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := db.InitSchema(ctx); err != nil {
		return err
	}
	return fn(db)
}
