package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kcwiki/questtool/internal/quest"
	"github.com/kcwiki/questtool/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"rm", "remove"},
	GroupID: "sync",
	Short:   "Remove the per-quest {game_id}.json files",
	Long: `Remove every <dir>/<game_id>.json file. Other files in the directory
(the aggregate, README.md, notes) are never touched.

A file that cannot be removed is reported and the rest are still removed;
the command then exits with status 1.

On a terminal the removal is confirmed first unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		names, err := quest.ListRecordFiles(cfg.RecordDir)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Printf("No quest files in %s\n", cfg.RecordDir)
			return nil
		}

		if !yes && ui.IsTerminal(os.Stdin) {
			confirmed := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Remove %d quest files from %s?", len(names), cfg.RecordDir)).
				Affirmative("Remove").
				Negative("Cancel").
				Value(&confirmed).
				Run()
			if err != nil {
				return fmt.Errorf("confirmation failed: %w", err)
			}
			if !confirmed {
				fmt.Println("Cancelled")
				return nil
			}
		}

		if err := checkWorkspace(cmd.Context(), cfg.RecordDir); err != nil {
			return err
		}

		result, err := newSyncer().Delete()
		if result != nil {
			fmt.Printf("%s Removed %d quest files from %s\n", ui.RenderPass("✓"), len(result.Removed), cfg.RecordDir)
			for _, failed := range result.Failed {
				fmt.Printf("   %s %v\n", ui.RenderFail("✗"), failed)
			}
		}
		return err
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}
