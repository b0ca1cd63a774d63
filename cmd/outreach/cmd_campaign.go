package main

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"outreach-campaigns/internal/common/observability"
	"outreach-campaigns/internal/models"
	sendproposals "outreach-campaigns/internal/workers/campaign/send-proposals"
	emailsend "outreach-campaigns/internal/workers/communication/email-send"
	businessdirectory "outreach-campaigns/internal/workers/directory/business-directory"
)

var (
	campaignType        string
	campaignTags        string
	campaignHasWebsite  string
	campaignTemplate    string
	campaignSubject     string
	campaignFrom        string
	campaignPhone       string
	campaignReplyEmail  string
	campaignConsultLink string
	campaignAttachments []string
	campaignNoTracking  bool
	campaignMetricsAddr string
)

var sendCampaignCmd = &cobra.Command{
	Use:   "send-campaign",
	Short: "Send proposals to every business, or to a filtered subset",
	Example: `  outreach send-campaign
  outreach send-campaign --type Restaurant --has-website=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		filter, err := campaignFilter()
		if err != nil {
			return err
		}

		metricsAddr := campaignMetricsAddr
		if metricsAddr == "" && cfg.Metrics.Enabled {
			metricsAddr = cfg.Metrics.Address
		}
		if metricsAddr != "" {
			srv := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Warn("Metrics server stopped", map[string]interface{}{"error": err})
				}
			}()
			defer srv.Close()
			log.Info("Serving metrics", map[string]interface{}{"address": metricsAddr})
		}

		obs := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
		defer obs.Shutdown()

		var cl closers
		defer cl.Close()
		runner, err := openRunner(ctx, &cl, obs)
		if err != nil {
			return err
		}

		opts := campaignOptions()
		var report models.CampaignReport
		if filter.IsEmpty() {
			report = runner.RunAll(ctx, opts)
		} else {
			report = runner.RunFiltered(ctx, filter, opts)
		}

		sent, failed := report.Counts()
		fmt.Fprintf(cmd.OutOrStdout(), "Campaign finished: %d sent, %d failed\n", sent, failed)
		return nil
	},
}

func campaignFilter() (models.CampaignFilter, error) {
	filter := models.CampaignFilter{
		Type: campaignType,
		Tags: businessdirectory.ParseTags(campaignTags),
	}
	switch campaignHasWebsite {
	case "":
	case "true", "yes":
		v := true
		filter.HasWebsite = &v
	case "false", "no":
		v := false
		filter.HasWebsite = &v
	default:
		return filter, fmt.Errorf("--has-website must be true or false, got %q", campaignHasWebsite)
	}
	return filter, nil
}

func campaignOptions() sendproposals.Options {
	from := campaignFrom
	if from == "" {
		from = cfg.Mail.DefaultFrom
	}
	subject := campaignSubject
	if subject == "" {
		subject = cfg.Campaign.Subject
	}
	template := campaignTemplate
	if template == "" {
		template = cfg.Campaign.TemplateName
	}
	replyEmail := campaignReplyEmail
	if replyEmail == "" {
		replyEmail = from
	}

	opts := sendproposals.Options{
		From:         from,
		Subject:      subject,
		TemplateName: template,
		TemplateData: map[string]string{
			"phoneNumber":      campaignPhone,
			"replyEmail":       replyEmail,
			"consultationLink": campaignConsultLink,
		},
		TrackingEnabled: cfg.Campaign.TrackingEnabled && !campaignNoTracking,
	}
	for _, path := range campaignAttachments {
		opts.Attachments = append(opts.Attachments, attachmentFor(path))
	}
	return opts
}

func attachmentFor(path string) emailsend.Attachment {
	return emailsend.Attachment{Filename: filepath.Base(path), Path: path}
}

func init() {
	f := sendCampaignCmd.Flags()
	f.StringVar(&campaignType, "type", "", "only businesses of this type")
	f.StringVar(&campaignTags, "tags", "", "only businesses with any of these comma-separated tags")
	f.StringVar(&campaignHasWebsite, "has-website", "", "only businesses with (true) or without (false) a website")
	f.StringVar(&campaignTemplate, "template", "", "template name (default from config: business-proposal)")
	f.StringVar(&campaignSubject, "subject", "", "email subject")
	f.StringVar(&campaignFrom, "from", "", "sender address (default: mail.default_from)")
	f.StringVar(&campaignPhone, "phone", "", "phone number shown in the email")
	f.StringVar(&campaignReplyEmail, "reply-email", "", "reply address shown in the email")
	f.StringVar(&campaignConsultLink, "consultation-link", "", "booking link shown in the email")
	f.StringSliceVar(&campaignAttachments, "attach", nil, "file to attach (repeatable)")
	f.BoolVar(&campaignNoTracking, "no-tracking", false, "do not add the open-tracking pixel")
	f.StringVar(&campaignMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
}
