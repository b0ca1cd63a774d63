package sendproposals

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "outreach-campaigns/internal/common/errors"
	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/common/metrics"
	"outreach-campaigns/internal/common/observability"
	"outreach-campaigns/internal/models"
	emailsend "outreach-campaigns/internal/workers/communication/email-send"
	rendertemplate "outreach-campaigns/internal/workers/communication/render-template"
)

const inlineTemplateLabel = "inline"

type Dispatcher struct {
	generator ProposalGenerator
	renderer  TemplateRenderer
	tracker   TrackingInjector
	sender    emailsend.Sender
	pacer     Pacer
	obs       *observability.Observability
	config    *Config
	logger    logger.Logger
	sanitizer *bluemonday.Policy
	now       func() time.Time
	newID     func(time.Time) string
}

func NewDispatcher(deps ServiceDependencies, config *Config) *Dispatcher {
	if config == nil {
		config = DefaultConfig()
	}
	pacer := deps.Pacer
	if pacer == nil {
		pacer = FixedDelay{Delay: config.SendDelay}
	}
	obs := deps.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Dispatcher{
		generator: deps.Generator,
		renderer:  deps.Renderer,
		tracker:   deps.Tracker,
		sender:    deps.Sender,
		pacer:     pacer,
		obs:       obs,
		config:    config,
		logger:    logger.ForComponent(deps.Logger, "send-proposals"),
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
		newID:     NewMessageID,
	}
}

// NewMessageID returns "<unix millis>-<9 random hex characters>".
func NewMessageID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// SendProposals dispatches one proposal per business, in order. Businesses
// without an email produce no result. A failure is recorded on that
// business's result and the loop moves on. A cancelled ctx ends the loop
// early and returns the results gathered so far.
func (d *Dispatcher) SendProposals(ctx context.Context, businesses []models.Business, opts Options) []models.BusinessResult {
	results := make([]models.BusinessResult, 0, len(businesses))

	for _, b := range businesses {
		if !b.HasEmail() {
			metrics.BusinessesSkipped.Inc()
			d.logger.Debug("Skipping business without email", map[string]interface{}{
				"business": b.Name,
			})
			continue
		}

		if len(results) > 0 {
			if err := d.pacer.Wait(ctx); err != nil {
				d.logger.Warn("Campaign interrupted", map[string]interface{}{
					"processed": len(results),
					"error":     err,
				})
				break
			}
		}
		if err := ctx.Err(); err != nil {
			break
		}

		results = append(results, models.BusinessResult{
			Business: b,
			Result:   d.sendOne(ctx, b, opts),
		})
	}

	return results
}

func (d *Dispatcher) sendOne(ctx context.Context, b models.Business, opts Options) models.DispatchResult {
	start := time.Now()
	templateLabel := opts.TemplateName
	if templateLabel == "" {
		templateLabel = inlineTemplateLabel
	}

	ctx, span := d.obs.StartSpan(ctx, "send-proposal",
		attribute.String("business.name", b.Name),
		attribute.String("business.type", b.Type),
		attribute.String("template", templateLabel),
	)
	defer span.End()

	fail := func(stdErr *apperrors.StandardError, text string) models.DispatchResult {
		span.RecordError(stdErr)
		span.SetStatus(codes.Error, text)
		metrics.ProposalsFailed.WithLabelValues(templateLabel, string(stdErr.Code)).Inc()
		metrics.DispatchDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
		d.logger.Error("Failed to send proposal", map[string]interface{}{
			"business":  b.Name,
			"email":     b.Email,
			"errorCode": stdErr.Code,
			"category":  apperrors.GetErrorCategory(stdErr.Code),
			"retryable": apperrors.IsRetryableErrorCode(stdErr.Code),
			"error":     text,
		})
		return models.DispatchResult{Success: false, Error: text}
	}

	if err := emailsend.ValidateAddresses(opts.From, []string{b.Email}); err != nil {
		stdErr := apperrors.NewInvalidEmailError(b.Email)
		return fail(stdErr, stdErr.Message)
	}

	data := d.templateData(ctx, b, opts.TemplateData)

	body := opts.HTML
	if opts.TemplateName != "" {
		rendered, err := d.renderer.Render(ctx, opts.TemplateName, data)
		if err != nil {
			return fail(templateError(opts.TemplateName, err), err.Error())
		}
		body = rendered
	}

	messageID := d.newID(d.now())
	if opts.TrackingEnabled && body != "" && d.tracker != nil {
		body = d.tracker.AddTracking(body, messageID)
	}
	span.SetAttributes(attribute.String("message.id", messageID))

	msg := &emailsend.Message{
		From:        opts.From,
		To:          []string{b.Email},
		Subject:     opts.Subject,
		Text:        opts.Text,
		HTML:        body,
		Attachments: opts.Attachments,
		MessageID:   messageID,
		Headers: map[string]string{
			"X-Marketing-Campaign": "true",
			"List-Unsubscribe":     fmt.Sprintf("<mailto:%s?subject=unsubscribe_%s>", d.config.UnsubscribeAddress, messageID),
		},
	}

	transportID, err := d.sender.Send(ctx, msg)
	if err != nil {
		return fail(apperrors.NewEmailSendFailedError(err), err.Error())
	}

	metrics.ProposalsSent.WithLabelValues(templateLabel).Inc()
	metrics.DispatchDuration.WithLabelValues("sent").Observe(time.Since(start).Seconds())
	span.SetStatus(codes.Ok, "")
	d.logger.Info("Proposal sent", map[string]interface{}{
		"business":  b.Name,
		"email":     b.Email,
		"messageId": transportID,
	})

	return models.DispatchResult{Success: true, MessageID: transportID}
}

// templateData merges the caller's data with the generated content. Generated
// keys win over caller keys of the same name. Directory fields are escaped as
// text; generated fields go through the sanitizer.
func (d *Dispatcher) templateData(ctx context.Context, b models.Business, base map[string]string) map[string]string {
	proposal := d.generator.GenerateProposal(ctx, b)
	intro := d.generator.GenerateIntro(ctx, b)

	data := make(map[string]string, len(base)+9)
	for k, v := range base {
		data[k] = v
	}
	data[KeyBusinessName] = html.EscapeString(b.Name)
	data[KeyBusinessType] = html.EscapeString(b.Type)
	data[KeyCustomizedIntro] = d.sanitizer.Sanitize(intro)
	data[KeyWebsiteRecommendations] = d.recommendations(proposal.WebsiteServices)
	data[KeyMarketingRecommendations] = d.recommendations(proposal.MarketingServices)
	data[KeyBrandingRecommendations] = d.recommendations(proposal.BrandingServices)
	data[KeyWebsitePrice] = d.price(proposal.WebsiteServices)
	data[KeyMarketingPrice] = d.price(proposal.MarketingServices)
	data[KeyBrandingPrice] = d.price(proposal.BrandingServices)
	return data
}

func (d *Dispatcher) recommendations(section *models.ServiceSection) string {
	if section == nil {
		return ""
	}
	lines := make([]string, len(section.Recommendations))
	for i, r := range section.Recommendations {
		lines[i] = d.sanitizer.Sanitize(r)
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) price(section *models.ServiceSection) string {
	if section == nil {
		return ""
	}
	return d.sanitizer.Sanitize(section.EstimatedPrice)
}

func templateError(name string, err error) *apperrors.StandardError {
	if errors.Is(err, rendertemplate.ErrTemplateNotFound) {
		return apperrors.NewTemplateNotFoundError(name, err)
	}
	return apperrors.NewTemplateLoadFailedError(name, err)
}
