package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"outreach-campaigns/internal/models"
)

func renderBusinesses(w io.Writer, businesses []models.Business) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Name", "Type", "Email", "Website", "Tags"})

	for _, b := range businesses {
		website := b.Website
		if website == "" {
			website = "No website"
		}
		tags := strings.Join(b.Tags, ", ")
		if tags == "" {
			tags = "No tags"
		}
		t.AppendRow(table.Row{b.Name, b.Type, b.Email, website, tags})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(businesses)})
	t.Render()
}

func renderReport(w io.Writer, report models.CampaignReport) {
	sent, failed := report.Counts()
	fmt.Fprintf(w, "Campaign run at %s: %d sent, %d failed\n", report.Timestamp, sent, failed)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Business", "Email", "Status", "Message ID / Error"})

	for _, e := range report.Results {
		status, detail := "sent", e.MessageID
		if !e.Success {
			status, detail = "failed", e.Error
		}
		t.AppendRow(table.Row{e.BusinessName, e.BusinessEmail, status, detail})
	}
	t.Render()
}
