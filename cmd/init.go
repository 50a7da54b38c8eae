package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/regradar/compliance-cli/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml to the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "config.yaml"

		if !initForce {
			if _, err := os.Stat(path); err == nil {
				return eris.Errorf("%s already exists, use --force to overwrite", path)
			}
		}

		defaults := config.Config{
			Store: config.StoreConfig{
				Driver:      "sqlite",
				DatabaseURL: "compliance.db",
			},
			Anthropic: config.AnthropicConfig{
				Model:       "claude-haiku-4-5-20251001",
				TimeoutSecs: 30,
			},
			Scrape: config.ScrapeConfig{
				Strategy:          "static",
				TimeoutSecs:       30,
				RenderTimeoutSecs: 60,
				RatePerSec:        2.0,
			},
			Batch: config.BatchConfig{
				MaxConcurrentCompanies: 5,
			},
			Server: config.ServerConfig{
				Port: 8080,
			},
			VoiceCalls: config.VoiceCallConfig{
				DefaultExpiryMinutes: 60,
				SweepIntervalSecs:    300,
			},
			Refresh: config.RefreshConfig{
				Enabled:    false,
				Cron:       "20 4 * * 1",
				MaxAgeDays: 30,
				Limit:      50,
			},
			Log: config.LogConfig{
				Level:  "info",
				Format: "json",
			},
		}

		data, err := yaml.Marshal(defaults)
		if err != nil {
			return eris.Wrap(err, "marshal default config")
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", path)
		}

		fmt.Printf("Wrote %s. Set REGRADAR_ANTHROPIC_KEY to enable the Claude classifier.\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config.yaml")
	rootCmd.AddCommand(initCmd)
}
