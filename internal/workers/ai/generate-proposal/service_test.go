package generateproposal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "outreach-campaigns/internal/common/errors"
	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/models"
)

// ==========================
// Mocks & Helpers
// ==========================

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

const validResponse = `{
  "websiteServices": {"needed": true, "recommendations": ["Build a mobile-first site", "Add online ordering"], "estimatedPrice": "$1,500 - $3,000"},
  "marketingServices": {"needed": true, "recommendations": ["Run local search ads"], "estimatedPrice": "$300/month"},
  "brandingServices": {"needed": false, "recommendations": ["Keep the current logo"], "estimatedPrice": "$0"}
}`

func createTestBusiness() models.Business {
	return models.Business{
		Name:    "Joe's Diner",
		Type:    "Restaurant",
		Address: "1 Main St",
		Email:   "joe@diner.com",
		CurrentWebPresence: &models.WebPresence{
			HasWebsite:     false,
			WebsiteQuality: models.WebsiteQualityNone,
		},
	}
}

func newTestGenerator(t *testing.T, client TextGenerator) *Generator {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Timeout = time.Second
	return NewGenerator(ServiceDependencies{Client: client, Logger: logger.NewTestLogger(t)}, cfg)
}

func assertFallback(t *testing.T, p models.ServiceProposal) {
	t.Helper()
	for key, section := range p.Sections() {
		require.NotNil(t, section, key)
		assert.True(t, section.Needed, key)
		assert.NotEmpty(t, section.Recommendations, key)
		assert.Equal(t, FallbackPrice, section.EstimatedPrice, key)
	}
}

// ==========================
// Parsing
// ==========================

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding space", input: "  \n```json {\"a\":1} ```  ", want: `{"a":1}`},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.input))
		})
	}
}

func TestParseProposal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: validResponse},
		{name: "fenced", input: "```json\n" + validResponse + "\n```"},
		{name: "extra top-level key", input: strings.Replace(validResponse, "{\n", "{\n  \"notes\": \"x\",\n", 1)},
		{name: "empty", input: "", wantErr: ErrEmptyResponse},
		{name: "missing section", input: `{"websiteServices": {"needed": true, "recommendations": ["a"]}}`, wantErr: ErrInvalidShape},
		{name: "needed wrong type", input: strings.Replace(validResponse, `"needed": true`, `"needed": "yes"`, 1), wantErr: ErrInvalidShape},
		{name: "recommendations not strings", input: strings.Replace(validResponse, `["Run local search ads"]`, `[1, 2]`, 1), wantErr: ErrInvalidShape},
		{name: "array instead of object", input: `[1, 2, 3]`, wantErr: ErrInvalidShape},
		{name: "garbage", input: "I think you need a website."},
		{name: "trailing data", input: validResponse + " {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseProposal(tt.input)
			switch {
			case tt.name == "valid" || tt.name == "fenced" || tt.name == "extra top-level key":
				require.NoError(t, err)
				require.NotNil(t, p.WebsiteServices)
				assert.Equal(t, []string{"Build a mobile-first site", "Add online ordering"}, p.WebsiteServices.Recommendations)
				assert.Equal(t, "$300/month", p.MarketingServices.EstimatedPrice)
				assert.False(t, p.BrandingServices.Needed)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestParseProposal_EmptyRecommendationsAreKept(t *testing.T) {
	input := strings.Replace(validResponse, `["Run local search ads"]`, `[]`, 1)

	p, err := ParseProposal(input)
	require.NoError(t, err)
	require.NotNil(t, p.MarketingServices)
	assert.Empty(t, p.MarketingServices.Recommendations)
	assert.Equal(t, "$300/month", p.MarketingServices.EstimatedPrice)
}

// ==========================
// Generator
// ==========================

func TestGenerateProposalResult_SectionNotNeededSurvives(t *testing.T) {
	response := `{
  "websiteServices": {"needed": false, "recommendations": [], "estimatedPrice": "$0"},
  "marketingServices": {"needed": true, "recommendations": ["Run local search ads"], "estimatedPrice": "$300/month"},
  "brandingServices": {"needed": true, "recommendations": ["Refresh the logo"], "estimatedPrice": "$500"}
}`
	client := new(MockTextGenerator)
	client.On("Generate", mock.Anything, mock.Anything).Return(response, nil)

	result := newTestGenerator(t, client).GenerateProposalResult(context.Background(), createTestBusiness())

	assert.Equal(t, KindParsed, result.Kind)
	assert.NoError(t, result.Reason)
	require.NotNil(t, result.Proposal.WebsiteServices)
	assert.False(t, result.Proposal.WebsiteServices.Needed)
	assert.Empty(t, result.Proposal.WebsiteServices.Recommendations)
	assert.Equal(t, "$0", result.Proposal.WebsiteServices.EstimatedPrice)
	assert.Equal(t, []string{"Run local search ads"}, result.Proposal.MarketingServices.Recommendations)
	assert.Equal(t, []string{"Refresh the logo"}, result.Proposal.BrandingServices.Recommendations)
}

func TestGenerateProposalResult_Parsed(t *testing.T) {
	client := new(MockTextGenerator)
	client.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Joe's Diner") && strings.Contains(p, "websiteServices")
	})).Return("```json\n"+validResponse+"\n```", nil)

	result := newTestGenerator(t, client).GenerateProposalResult(context.Background(), createTestBusiness())

	assert.Equal(t, KindParsed, result.Kind)
	assert.NoError(t, result.Reason)
	assert.Equal(t, "$1,500 - $3,000", result.Proposal.WebsiteServices.EstimatedPrice)
	client.AssertExpectations(t)
}

func TestGenerateProposalResult_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		wantCode apperrors.ErrorCode
	}{
		{name: "quota error", err: errors.New("RESOURCE_EXHAUSTED: quota exceeded"), wantCode: apperrors.ErrCodeGenerationFailed},
		{name: "auth error", err: errors.New("API key not valid"), wantCode: apperrors.ErrCodeGenerationFailed},
		{name: "prose answer", response: "Sure! Here are my thoughts...", wantCode: apperrors.ErrCodeResponseParseFailed},
		{name: "partial shape", response: `{"websiteServices": {"needed": true, "recommendations": ["a"]}}`, wantCode: apperrors.ErrCodeResponseParseFailed},
		{name: "blank answer", response: "  ", wantCode: apperrors.ErrCodeResponseParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockTextGenerator)
			client.On("Generate", mock.Anything, mock.Anything).Return(tt.response, tt.err)

			result := newTestGenerator(t, client).GenerateProposalResult(context.Background(), createTestBusiness())

			assert.Equal(t, KindFallback, result.Kind)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(result.Reason))
			assertFallback(t, result.Proposal)
		})
	}
}

func TestGenerateProposal_NilClientFallsBack(t *testing.T) {
	g := newTestGenerator(t, nil)
	assertFallback(t, g.GenerateProposal(context.Background(), createTestBusiness()))
}

func TestGenerateProposal_AppliesTimeout(t *testing.T) {
	client := new(MockTextGenerator)
	client.On("Generate", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything).Return(validResponse, nil)

	newTestGenerator(t, client).GenerateProposal(context.Background(), createTestBusiness())
	client.AssertExpectations(t)
}

func TestFallbackProposal_SectionsAreIndependent(t *testing.T) {
	p := FallbackProposal()
	p.WebsiteServices.Recommendations[0] = "changed"
	assert.Equal(t, FallbackRecommendation, p.MarketingServices.Recommendations[0])
	assert.Equal(t, FallbackRecommendation, FallbackProposal().WebsiteServices.Recommendations[0])
}

func TestGenerateIntro(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     string
	}{
		{name: "trimmed text", response: "\n  Joe's Diner deserves to be found online.  \n", want: "Joe's Diner deserves to be found online."},
		{name: "capability error", err: errors.New("deadline exceeded"), want: FallbackIntro},
		{name: "blank text", response: "   ", want: FallbackIntro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockTextGenerator)
			client.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
				return strings.Contains(p, "introduction")
			})).Return(tt.response, tt.err)

			assert.Equal(t, tt.want, newTestGenerator(t, client).GenerateIntro(context.Background(), createTestBusiness()))
		})
	}
}

// ==========================
// Prompts & Config
// ==========================

func TestBuildProposalPrompt(t *testing.T) {
	b := createTestBusiness()
	b.Description = "Family diner since 1982"

	prompt := BuildProposalPrompt(b)
	assert.Contains(t, prompt, "- Name: Joe's Diner")
	assert.Contains(t, prompt, "- Type: Restaurant")
	assert.Contains(t, prompt, `"hasWebsite":false`)
	assert.Contains(t, prompt, "- Description: Family diner since 1982")
	for _, key := range []string{models.SectionWebsite, models.SectionMarketing, models.SectionBranding} {
		assert.Contains(t, prompt, key)
	}

	b.CurrentWebPresence = nil
	b.Description = ""
	prompt = BuildProposalPrompt(b)
	assert.Contains(t, prompt, "- Current Web Presence: Unknown")
	assert.Contains(t, prompt, "- Description: Not provided")
}

func TestBuildIntroPrompt(t *testing.T) {
	prompt := BuildIntroPrompt(models.Business{Name: "Ann's", Type: "Bakery"})
	assert.Contains(t, prompt, "Business Name: Ann's")
	assert.Contains(t, prompt, "Current Web Presence: Unknown")
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.EqualError(t, cfg.Validate(), "genai api key is required")

	cfg.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Timeout = 0
	assert.EqualError(t, cfg.Validate(), "timeout must be positive")
}
