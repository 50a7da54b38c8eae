package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/regradar/compliance-cli/internal/model"
	"github.com/regradar/compliance-cli/internal/store"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect stored company profiles",
	Long:  "Commands for listing, viewing, and deleting stored company profiles.",
}

// -- profiles list --

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		industry, _ := cmd.Flags().GetString("industry")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		profiles, err := st.ListProfiles(ctx, store.ProfileFilter{
			Industry: industry,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return eris.Wrap(err, "profiles list")
		}

		if len(profiles) == 0 {
			fmt.Fprintln(os.Stderr, "No profiles found.")
			return nil
		}

		formatProfilesList(os.Stdout, profiles)
		return nil
	},
}

// -- profiles show --

var profilesShowCmd = &cobra.Command{
	Use:   "show <company-name>",
	Short: "Show a stored profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		profile, err := st.GetProfile(ctx, args[0])
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				return eris.Errorf("company %q not found", args[0])
			}
			return eris.Wrap(err, "profiles show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	},
}

// -- profiles delete --

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <company-name>",
	Short: "Delete a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if err := st.DeleteProfile(ctx, args[0]); err != nil {
			if eris.Is(err, store.ErrNotFound) {
				return eris.Errorf("company %q not found", args[0])
			}
			return eris.Wrap(err, "profiles delete")
		}

		fmt.Printf("Deleted %q\n", args[0])
		return nil
	},
}

func formatProfilesList(w io.Writer, profiles []model.CompanyProfile) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPANY\tINDUSTRY\tSTATUS\tSOURCE\tTOPICS\tLAST SCRAPED")
	for _, p := range profiles {
		topics := make([]string, len(p.RegulatoryTopics))
		for i, t := range p.RegulatoryTopics {
			topics[i] = string(t)
		}
		lastScraped := "-"
		if p.LastScrapedAt != nil {
			lastScraped = p.LastScrapedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.CompanyName,
			p.Industry,
			p.ScrapeStatus,
			p.SourceType,
			strings.Join(topics, ","),
			lastScraped,
		)
	}
	tw.Flush()
}

func init() {
	profilesListCmd.Flags().String("industry", "", "filter by industry")
	profilesListCmd.Flags().Int("limit", 50, "max number of results")
	profilesListCmd.Flags().Int("offset", 0, "pagination offset")

	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	rootCmd.AddCommand(profilesCmd)
}
