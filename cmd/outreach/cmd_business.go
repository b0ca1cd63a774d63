package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"outreach-campaigns/internal/models"
	businessdirectory "outreach-campaigns/internal/workers/directory/business-directory"
	filterbusinesses "outreach-campaigns/internal/workers/directory/filter-businesses"
)

var (
	bizName           string
	bizType           string
	bizAddress        string
	bizWebsite        string
	bizPhone          string
	bizEmail          string
	bizDescription    string
	bizTags           string
	bizWebsiteQuality string
	bizHasSocial      bool
	bizRating         float64

	listSearch  string
	listSummary bool
)

var addBusinessCmd = &cobra.Command{
	Use:   "add-business",
	Short: "Add a business to the directory",
	Example: `  outreach add-business --name "Joe's Diner" --type Restaurant \
    --address "1 Main St" --email joe@diner.com --tags italian,family`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var cl closers
		defer cl.Close()

		directory, err := openDirectory(ctx, &cl)
		if err != nil {
			return err
		}

		b := models.Business{
			Name:        bizName,
			Type:        bizType,
			Address:     bizAddress,
			Website:     bizWebsite,
			Phone:       bizPhone,
			Email:       bizEmail,
			Description: bizDescription,
			Tags:        businessdirectory.ParseTags(bizTags),
			CurrentWebPresence: &models.WebPresence{
				HasWebsite:     bizWebsite != "",
				HasSocialMedia: bizHasSocial,
				WebsiteQuality: bizWebsiteQuality,
			},
		}
		if cmd.Flags().Changed("rating") {
			b.CurrentWebPresence.OnlineReviews = &bizRating
		}

		if err := directory.Add(ctx, b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Business %q added successfully\n", b.Name)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List businesses in the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var cl closers
		defer cl.Close()

		directory, err := openDirectory(ctx, &cl)
		if err != nil {
			return err
		}
		businesses, err := directory.List(ctx)
		if err != nil {
			return err
		}
		if listSearch != "" {
			businesses = filterbusinesses.Search(businesses, listSearch)
		}

		if listSummary {
			out, err := businessdirectory.SummaryJSON(businesses)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		renderBusinesses(cmd.OutOrStdout(), businesses)
		return nil
	},
}

func init() {
	f := addBusinessCmd.Flags()
	f.StringVar(&bizName, "name", "", "business name")
	f.StringVar(&bizType, "type", "", "business type, e.g. Restaurant")
	f.StringVar(&bizAddress, "address", "", "street address")
	f.StringVar(&bizWebsite, "website", "", "website URL")
	f.StringVar(&bizPhone, "phone", "", "phone number")
	f.StringVar(&bizEmail, "email", "", "contact email")
	f.StringVar(&bizDescription, "description", "", "short description")
	f.StringVar(&bizTags, "tags", "", "comma-separated tags")
	f.StringVar(&bizWebsiteQuality, "website-quality", models.WebsiteQualityNone, "none, basic, outdated or modern")
	f.BoolVar(&bizHasSocial, "has-social", false, "business is active on social media")
	f.Float64Var(&bizRating, "rating", 0, "average online review rating")
	_ = addBusinessCmd.MarkFlagRequired("name")
	_ = addBusinessCmd.MarkFlagRequired("type")
	_ = addBusinessCmd.MarkFlagRequired("address")

	listCmd.Flags().StringVar(&listSearch, "search", "", "only show businesses matching a keyword")
	listCmd.Flags().BoolVar(&listSummary, "summary", false, "print a JSON summary instead of a table")
}
