package generateproposal

import (
	"context"

	"outreach-campaigns/internal/models"
)

// TextGenerator turns a prompt into free text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ProposalKind string

const (
	KindParsed   ProposalKind = "parsed"
	KindFallback ProposalKind = "fallback"
)

// ProposalResult records whether the proposal came from the model or the
// default payload. Reason is set only for fallbacks.
type ProposalResult struct {
	Kind     ProposalKind
	Proposal models.ServiceProposal
	Reason   error
}

const (
	FallbackRecommendation = "An error occurred while generating recommendations. Please try again."
	FallbackPrice          = "Contact for quote"
	FallbackIntro          = "Thank you for considering our web services."
)

// FallbackProposal returns the proposal used whenever generation fails.
// Each section is a separate copy.
func FallbackProposal() models.ServiceProposal {
	section := func() *models.ServiceSection {
		return &models.ServiceSection{
			Needed:          true,
			Recommendations: []string{FallbackRecommendation},
			EstimatedPrice:  FallbackPrice,
		}
	}
	return models.ServiceProposal{
		WebsiteServices:   section(),
		MarketingServices: section(),
		BrandingServices:  section(),
	}
}
