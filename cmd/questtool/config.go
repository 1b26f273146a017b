package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: "advanced",
	Short:   "Inspect the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the config file, QUESTTOOL_*
environment variables and flags have been applied. The output is a valid
questtool.toml or questtool.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		switch format {
		case "toml":
			if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if err := enc.Close(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want toml or yaml)", format)
		}

		if f := settings.ConfigFileUsed(); f != "" {
			fmt.Fprintf(os.Stderr, "# from %s\n", f)
		}
		return nil
	},
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml or yaml")
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
