// Command questtool keeps the kcwiki quest data in two interchangeable
// forms: one aggregate JSON array (quest/poi.json) and one file per quest
// (quest/{game_id}.json).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kcwiki/questtool/internal/config"
	"github.com/kcwiki/questtool/internal/index"
	"github.com/kcwiki/questtool/internal/logging"
	"github.com/kcwiki/questtool/internal/sync"
	"github.com/kcwiki/questtool/internal/ui"
	"github.com/kcwiki/questtool/internal/vcs"
)

var (
	settings   = config.New()
	configFile string

	// Set by PersistentPreRunE for every subcommand.
	cfg  *config.Config
	logs *logging.Factory
)

var rootCmd = &cobra.Command{
	Use:   "questtool",
	Short: "Split, merge and index the kcwiki quest data",
	Long: `questtool converts between the aggregate quest file and the per-quest
record directory, and renders the Markdown quest index.

  split   aggregate file -> one {game_id}.json per quest
  merge   record directory -> aggregate file (and README index)
  delete  remove the per-quest files
  readme  render the index from the aggregate file

Configuration is read from questtool.yaml or questtool.toml in the working
directory (or --config), then QUESTTOOL_* environment variables, then flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == cmd.Root() || cmd.Name() == "help" {
			return nil
		}

		if err := config.ReadFile(settings, configFile); err != nil {
			return err
		}
		c, err := config.Load(settings)
		if err != nil {
			return err
		}
		cfg = c
		logs = logging.NewFactory(logging.Options{Debug: cfg.Debug, File: cfg.LogFile})

		if f := settings.ConfigFileUsed(); f != "" {
			logs.New("config").Debugf("using config file %s", f)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogs()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "sync", Title: "Synchronization:"},
		&cobra.Group{ID: "report", Title: "Reports:"},
		&cobra.Group{ID: "advanced", Title: "Advanced:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: ./questtool.yaml or ./questtool.toml)")
	flags.String("aggregate", config.DefaultAggregate, "Aggregate quest file")
	flags.String("dir", config.DefaultRecordDir, "Directory of per-quest {game_id}.json files")
	flags.String("readme", config.DefaultReadme, "Markdown index file")
	flags.BoolP("compact", "c", false, "Write compact JSON (no indentation)")
	flags.Int("indent", config.DefaultIndent, "JSON indent width")
	flags.BoolP("debug", "d", false, "Enable debug logging")
	flags.String("log-file", "", "Also write logs to this file (rotated)")
	flags.Bool("require-clean", false, "Refuse to overwrite files with uncommitted VCS changes")

	bindFlags(flags.Lookup, map[string]string{
		config.KeyAggregate:    "aggregate",
		config.KeyRecordDir:    "dir",
		config.KeyReadme:       "readme",
		config.KeyCompact:      "compact",
		config.KeyIndent:       "indent",
		config.KeyDebug:        "debug",
		config.KeyLogFile:      "log-file",
		config.KeyRequireClean: "require-clean",
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLogs()
		stop()
		os.Exit(1)
	}
}

func closeLogs() {
	if logs != nil {
		_ = logs.Close()
		logs = nil
	}
}

func newSyncer() sync.Synchronizer {
	return sync.New(sync.Config{
		Aggregate: cfg.Aggregate,
		RecordDir: cfg.RecordDir,
		Indent:    cfg.Indent,
	}, logs.New("sync"))
}

func indexOptions() index.Options {
	return index.Options{
		Header:   cfg.Wiki.ReadmeHeader,
		Host:     cfg.Wiki.Host,
		Category: cfg.Wiki.Category,
	}
}

// checkWorkspace guards files an operation is about to overwrite. With
// require_clean set, uncommitted changes abort the operation; otherwise they
// are reported and the operation proceeds.
func checkWorkspace(ctx context.Context, targets ...string) error {
	if cfg.RequireClean {
		return vcs.RequireClean(ctx, targets...)
	}

	dirty, err := vcs.Check(ctx, targets...)
	if err != nil {
		logs.New("vcs").Debugf("workspace check skipped: %v", err)
		return nil
	}
	if len(dirty) > 0 {
		fmt.Fprintf(os.Stderr, "%s Uncommitted changes will be overwritten: %s\n",
			ui.RenderWarn("⚠"), strings.Join(dirty, ", "))
	}
	return nil
}
