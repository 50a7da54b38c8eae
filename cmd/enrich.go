package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/model"
)

var (
	enrichName      string
	enrichWebsite   string
	enrichWikipedia string
	enrichNoSave    bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a single company profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnrichment(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := env.Assembler.Enrich(ctx, model.EnrichRequest{
			CompanyName:  enrichName,
			WebsiteURL:   enrichWebsite,
			WikipediaURL: enrichWikipedia,
		})
		if err != nil {
			return err
		}

		if !enrichNoSave {
			stored, err := env.Store.UpsertProfile(ctx, profile)
			if err != nil {
				return err
			}
			profile = stored
		}

		zap.L().Info("enrichment complete",
			zap.String("company", profile.CompanyName),
			zap.String("status", string(profile.ScrapeStatus)),
			zap.String("source", string(profile.SourceType)),
			zap.Int("topics", len(profile.RegulatoryTopics)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichName, "name", "", "company name (required)")
	enrichCmd.Flags().StringVar(&enrichWebsite, "website", "", "company website URL")
	enrichCmd.Flags().StringVar(&enrichWikipedia, "wikipedia", "", "Wikipedia article URL")
	enrichCmd.Flags().BoolVar(&enrichNoSave, "no-save", false, "print the profile without storing it")
	_ = enrichCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(enrichCmd)
}
