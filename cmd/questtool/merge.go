package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcwiki/questtool/internal/config"
	"github.com/kcwiki/questtool/internal/index"
	"github.com/kcwiki/questtool/internal/sync"
	"github.com/kcwiki/questtool/internal/ui"
)

var mergeCmd = &cobra.Command{
	Use:     "merge",
	GroupID: "sync",
	Short:   "Rebuild the aggregate file from the per-quest files",
	Long: `Read every <dir>/<game_id>.json file in name order and write them to the
aggregate file as one JSON array, then re-render the Markdown index.

By default the aggregate is rebuilt from the directory alone, so quests
whose files were deleted disappear. With --patch the existing aggregate is
loaded first and the directory overrides it quest by quest: changed quests
keep their position and new quests are appended.

Files that are not valid JSON are skipped with a warning, or abort the
merge with --strict. A file without a game_id always aborts the merge and
leaves the aggregate untouched.

Examples:
  questtool merge
  questtool merge --patch
  questtool merge --strict --no-update-readme`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		noPatch, _ := cmd.Flags().GetBool("no-patch")
		noReadme, _ := cmd.Flags().GetBool("no-update-readme")

		opts := sync.MergeOptions{
			Patch:  cfg.Merge.Patch && !noPatch,
			Strict: cfg.Strict,
		}
		updateReadme := cfg.Merge.UpdateReadme && !noReadme

		targets := []string{cfg.Aggregate}
		if updateReadme {
			targets = append(targets, cfg.Readme)
		}
		if err := checkWorkspace(cmd.Context(), targets...); err != nil {
			return err
		}

		result, err := newSyncer().Merge(opts)
		if err != nil {
			return err
		}

		mode := "rebuilt"
		if opts.Patch {
			mode = "patched"
		}
		fmt.Printf("%s Merged %d quests into %s (%s)\n", ui.RenderPass("✓"), len(result.Records), cfg.Aggregate, mode)
		for _, skipped := range result.Skipped {
			fmt.Printf("   %s skipped %s\n", ui.RenderWarn("⚠"), skipped.Path)
		}

		if updateReadme {
			if err := index.WriteFile(cfg.Readme, result.Records, indexOptions()); err != nil {
				return err
			}
			fmt.Printf("%s Updated %s\n", ui.RenderPass("✓"), cfg.Readme)
		}
		return nil
	},
}

func init() {
	mergeCmd.Flags().Bool("patch", false, "Apply the directory on top of the existing aggregate")
	mergeCmd.Flags().Bool("no-patch", false, "Rebuild the aggregate from the directory only (default)")
	mergeCmd.Flags().Bool("no-update-readme", false, "Do not re-render the Markdown index")
	mergeCmd.Flags().Bool("strict", false, "Abort on files that are not valid JSON")
	mergeCmd.MarkFlagsMutuallyExclusive("patch", "no-patch")

	bindFlags(mergeCmd.Flags().Lookup, map[string]string{
		config.KeyMergePatch: "patch",
		config.KeyStrict:     "strict",
	})

	rootCmd.AddCommand(mergeCmd)
}
