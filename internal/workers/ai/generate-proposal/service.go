package generateproposal

import (
	"context"
	"errors"
	"strings"

	apperrors "outreach-campaigns/internal/common/errors"
	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/common/metrics"
	"outreach-campaigns/internal/models"
)

var ErrNoGenerator = errors.New("NO_TEXT_GENERATOR")

type ServiceDependencies struct {
	Client TextGenerator
	Logger logger.Logger
}

// Generator produces proposals and introductions. It never returns an error:
// every failure is absorbed into the fallback content.
type Generator struct {
	client TextGenerator
	config *Config
	logger logger.Logger
}

func NewGenerator(deps ServiceDependencies, config *Config) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Generator{
		client: deps.Client,
		config: config,
		logger: logger.ForComponent(deps.Logger, "generate-proposal"),
	}
}

// GenerateProposal returns the parsed proposal or the fallback proposal.
func (g *Generator) GenerateProposal(ctx context.Context, b models.Business) models.ServiceProposal {
	return g.GenerateProposalResult(ctx, b).Proposal
}

// GenerateProposalResult is GenerateProposal with the outcome tagged.
func (g *Generator) GenerateProposalResult(ctx context.Context, b models.Business) ProposalResult {
	text, err := g.generate(ctx, BuildProposalPrompt(b))
	if err != nil {
		return g.fallback(b, apperrors.NewGenerationFailedError(err), text)
	}

	proposal, err := ParseProposal(text)
	if err != nil {
		return g.fallback(b, apperrors.NewResponseParseFailedError(err), text)
	}

	return ProposalResult{Kind: KindParsed, Proposal: proposal}
}

// GenerateIntro returns a short introduction, or FallbackIntro when the
// model fails or answers with blank text.
func (g *Generator) GenerateIntro(ctx context.Context, b models.Business) string {
	text, err := g.generate(ctx, BuildIntroPrompt(b))
	if err != nil {
		g.logger.Warn("Intro generation failed", map[string]interface{}{
			"business": b.Name,
			"error":    err,
		})
		return FallbackIntro
	}
	if intro := strings.TrimSpace(text); intro != "" {
		return intro
	}
	return FallbackIntro
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrNoGenerator
	}
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()
	return g.client.Generate(ctx, prompt)
}

func (g *Generator) fallback(b models.Business, reason *apperrors.StandardError, raw string) ProposalResult {
	fields := map[string]interface{}{
		"business":  b.Name,
		"errorCode": reason.Code,
		"error":     reason.Details,
	}
	if reason.Code == apperrors.ErrCodeResponseParseFailed {
		fields["response"] = raw
	}
	g.logger.Warn("Using fallback proposal", fields)
	metrics.ProposalFallbacks.WithLabelValues(string(reason.Code)).Inc()

	return ProposalResult{Kind: KindFallback, Proposal: FallbackProposal(), Reason: reason}
}
