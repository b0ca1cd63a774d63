package sendproposals

import (
	"context"

	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/common/observability"
	"outreach-campaigns/internal/models"
	emailsend "outreach-campaigns/internal/workers/communication/email-send"
)

// Options describes one campaign's outgoing message. HTML is sent as given
// only when TemplateName is empty.
type Options struct {
	From            string
	Subject         string
	TemplateName    string
	HTML            string
	Text            string
	TemplateData    map[string]string
	Attachments     []emailsend.Attachment
	TrackingEnabled bool
}

type ProposalGenerator interface {
	GenerateProposal(ctx context.Context, b models.Business) models.ServiceProposal
	GenerateIntro(ctx context.Context, b models.Business) string
}

type TemplateRenderer interface {
	Render(ctx context.Context, name string, data map[string]string) (string, error)
}

type TrackingInjector interface {
	AddTracking(body, messageID string) string
}

type ServiceDependencies struct {
	Generator     ProposalGenerator
	Renderer      TemplateRenderer
	Tracker       TrackingInjector
	Sender        emailsend.Sender
	Pacer         Pacer
	Observability *observability.Observability
	Logger        logger.Logger
}

// Template data keys filled in for every business.
const (
	KeyBusinessName             = "businessName"
	KeyBusinessType             = "businessType"
	KeyCustomizedIntro          = "customizedIntro"
	KeyWebsiteRecommendations   = "websiteRecommendations"
	KeyMarketingRecommendations = "marketingRecommendations"
	KeyBrandingRecommendations  = "brandingRecommendations"
	KeyWebsitePrice             = "websitePrice"
	KeyMarketingPrice           = "marketingPrice"
	KeyBrandingPrice            = "brandingPrice"
)
