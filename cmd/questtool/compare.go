package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kcwiki/questtool/internal/compare"
	"github.com/kcwiki/questtool/internal/quest"
)

var compareCmd = &cobra.Command{
	Use:     "compare",
	GroupID: "report",
	Short:   "Compare the aggregate file against KC3 translation quest data",
	Long: `Download the KC3 translation quests.json and the wiki's list of
time-limited quests, drop time-limited and multiplexed entries, and report
quests that are missing from the aggregate or carry a different code.

Codes are compared after folding full-width characters and stripping the
padding zero, so "A01" and "A1" are equal.

Examples:
  questtool compare
  questtool compare --format yaml
  questtool compare --local quests.json --limited limited.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		localPath, _ := cmd.Flags().GetString("local")
		limitedPath, _ := cmd.Flags().GetString("limited")
		logger := logs.New("compare")

		ctx := cmd.Context()
		if cfg.Compare.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Compare.Timeout)
			defer cancel()
		}

		fetcher := &compare.Fetcher{}

		var kc3 *compare.Dataset
		var err error
		if localPath != "" {
			kc3, err = compare.LoadKC3File(localPath)
		} else {
			logger.Debugf("fetching %s", cfg.Compare.KC3URL)
			kc3, err = fetcher.FetchKC3(ctx, cfg.Compare.KC3URL)
		}
		if err != nil {
			return fmt.Errorf("failed to load KC3 quests: %w", err)
		}

		var limited []string
		if limitedPath != "" {
			var data []byte
			data, err = os.ReadFile(limitedPath)
			if err == nil {
				limited, err = compare.ParseLimitedCodes(data)
			}
		} else {
			logger.Debugf("fetching %s", cfg.Compare.LimitedURL)
			limited, err = fetcher.FetchLimitedCodes(ctx, cfg.Compare.LimitedURL)
		}
		if err != nil {
			return fmt.Errorf("failed to load time-limited quests: %w", err)
		}
		logger.Debugf("time-limited codes %v", limited)

		records, err := quest.ReadCollection(cfg.Aggregate)
		if err != nil {
			return err
		}

		kept, removed := compare.Filter(kc3, limited)
		for _, r := range removed {
			logger.Debugf("filtered %s %s (%s)", r.Quest.ID, r.Quest.Code, r.Reason)
		}

		report := compare.Diff(kept, compare.FromAggregate(records))
		report.Removed = removed

		return compare.WriteReport(os.Stdout, report, format)
	},
}

func init() {
	compareCmd.Flags().String("format", compare.FormatText, "Report format: text, json or yaml")
	compareCmd.Flags().String("local", "", "Read KC3 quests.json from this file instead of downloading it")
	compareCmd.Flags().String("limited", "", "Read the wiki time-limited quest API response from this file")
	rootCmd.AddCommand(compareCmd)
}
