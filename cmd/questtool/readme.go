package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcwiki/questtool/internal/index"
	"github.com/kcwiki/questtool/internal/quest"
	"github.com/kcwiki/questtool/internal/ui"
)

var readmeCmd = &cobra.Command{
	Use:     "readme",
	GroupID: "report",
	Short:   "Render the Markdown quest index from the aggregate file",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := quest.ReadCollection(cfg.Aggregate)
		if err != nil {
			return err
		}

		if err := checkWorkspace(cmd.Context(), cfg.Readme); err != nil {
			return err
		}

		if err := index.WriteFile(cfg.Readme, records, indexOptions()); err != nil {
			return err
		}
		fmt.Printf("%s Wrote %d quests to %s\n", ui.RenderPass("✓"), len(records), cfg.Readme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readmeCmd)
}
