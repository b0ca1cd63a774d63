package main

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "outreach-campaigns/internal/common/errors"
	saveresults "outreach-campaigns/internal/workers/campaign/save-results"
)

var resultsXLSX string

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the outcome of the last campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var cl closers
		defer cl.Close()

		recorder, err := openRecorder(ctx, &cl)
		if err != nil {
			return err
		}

		report, err := recorder.LatestReport(ctx)
		if apperrors.CodeOf(err) == apperrors.ErrCodeReportNotFound {
			fmt.Fprintln(cmd.OutOrStdout(), apperrors.Normalize(err).Message)
			return nil
		}
		if err != nil {
			return err
		}

		renderReport(cmd.OutOrStdout(), report)

		if resultsXLSX != "" {
			if err := saveresults.ExportXLSX(report, resultsXLSX); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", resultsXLSX)
		}
		return nil
	},
}

func init() {
	resultsCmd.Flags().StringVar(&resultsXLSX, "xlsx", "", "also export the report to this .xlsx file")
}
