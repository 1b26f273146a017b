package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcwiki/questtool/internal/ui"
)

var splitCmd = &cobra.Command{
	Use:     "split",
	GroupID: "sync",
	Short:   "Write one {game_id}.json file per quest from the aggregate file",
	Long: `Read the aggregate quest file and write every quest to
<dir>/<game_id>.json, overwriting existing files.

Every quest is validated before anything is written: a quest without a
game_id aborts the split with no files written. Files for quests no longer
in the aggregate are left alone; run 'questtool delete' first for a clean
split.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkWorkspace(cmd.Context(), cfg.RecordDir); err != nil {
			return err
		}

		result, err := newSyncer().Split()
		if err != nil {
			return err
		}

		fmt.Printf("%s Split %d quests into %s\n", ui.RenderPass("✓"), result.Written, cfg.RecordDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
