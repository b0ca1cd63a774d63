package generateproposal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"outreach-campaigns/internal/models"
)

var (
	ErrEmptyResponse = errors.New("EMPTY_RESPONSE")
	ErrInvalidShape  = errors.New("INVALID_PROPOSAL_SHAPE")
)

func sectionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"needed", "recommendations"},
		"properties": map[string]interface{}{
			"needed": map[string]interface{}{"type": "boolean"},
			"recommendations": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"estimatedPrice": map[string]interface{}{"type": "string"},
		},
	}
}

// proposalSchema accepts extra top-level keys but requires all three sections.
var proposalSchema = gojsonschema.NewGoLoader(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{models.SectionWebsite, models.SectionMarketing, models.SectionBranding},
	"properties": map[string]interface{}{
		models.SectionWebsite:   sectionSchema(),
		models.SectionMarketing: sectionSchema(),
		models.SectionBranding:  sectionSchema(),
	},
})

// StripCodeFences removes a surrounding markdown code block, if any.
func StripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(cleaned, "```json"):
		cleaned = strings.TrimPrefix(cleaned, "```json")
	case strings.HasPrefix(cleaned, "```JSON"):
		cleaned = strings.TrimPrefix(cleaned, "```JSON")
	case strings.HasPrefix(cleaned, "```"):
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// ParseProposal decodes model output into a proposal. The payload is decoded
// untyped first and must satisfy proposalSchema before it is accepted.
func ParseProposal(text string) (models.ServiceProposal, error) {
	cleaned := StripCodeFences(text)
	if cleaned == "" {
		return models.ServiceProposal{}, ErrEmptyResponse
	}

	var payload interface{}
	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return models.ServiceProposal{}, fmt.Errorf("decode response: %w", err)
	}
	if dec.More() {
		return models.ServiceProposal{}, fmt.Errorf("decode response: trailing data after JSON object")
	}

	result, err := gojsonschema.Validate(proposalSchema, gojsonschema.NewGoLoader(payload))
	if err != nil {
		return models.ServiceProposal{}, fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return models.ServiceProposal{}, fmt.Errorf("%w: %s", ErrInvalidShape, strings.Join(errs, "; "))
	}

	var proposal models.ServiceProposal
	if err := json.Unmarshal([]byte(cleaned), &proposal); err != nil {
		return models.ServiceProposal{}, fmt.Errorf("decode proposal: %w", err)
	}
	return proposal, nil
}
