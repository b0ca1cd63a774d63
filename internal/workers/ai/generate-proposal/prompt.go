package generateproposal

import (
	"encoding/json"
	"fmt"
	"strings"

	"outreach-campaigns/internal/models"
)

func webPresenceText(b models.Business) string {
	if b.CurrentWebPresence == nil {
		return "Unknown"
	}
	raw, err := json.Marshal(b.CurrentWebPresence)
	if err != nil {
		return "Unknown"
	}
	return string(raw)
}

// BuildProposalPrompt asks for a JSON object with the three service sections.
func BuildProposalPrompt(b models.Business) string {
	description := b.Description
	if description == "" {
		description = "Not provided"
	}

	var parts []string
	parts = append(parts, "You are a digital services consultant. Analyze this business and provide specific recommendations.")
	parts = append(parts, "\nBusiness Details:")
	parts = append(parts, fmt.Sprintf("- Name: %s", b.Name))
	parts = append(parts, fmt.Sprintf("- Type: %s", b.Type))
	parts = append(parts, fmt.Sprintf("- Current Web Presence: %s", webPresenceText(b)))
	parts = append(parts, fmt.Sprintf("- Description: %s", description))

	parts = append(parts, "\nFormat your response as a JSON object with exactly this structure:")
	parts = append(parts, `{
    "websiteServices": {
        "needed": true or false,
        "recommendations": ["2-3 specific, actionable recommendations"],
        "estimatedPrice": "realistic price range"
    },
    "marketingServices": {
        "needed": true or false,
        "recommendations": ["2-3 specific, actionable recommendations"],
        "estimatedPrice": "realistic price range"
    },
    "brandingServices": {
        "needed": true or false,
        "recommendations": ["2-3 specific, actionable recommendations"],
        "estimatedPrice": "realistic price range"
    }
}`)
	parts = append(parts, "\nInclude only JSON in your response, no other text.")

	return strings.Join(parts, "\n")
}

// BuildIntroPrompt asks for a short personalised opening paragraph.
func BuildIntroPrompt(b models.Business) string {
	var parts []string
	parts = append(parts, "Write a personalized, engaging 2-3 sentence introduction for this business:")
	parts = append(parts, fmt.Sprintf("Business Name: %s", b.Name))
	parts = append(parts, fmt.Sprintf("Type: %s", b.Type))
	parts = append(parts, fmt.Sprintf("Current Web Presence: %s", webPresenceText(b)))
	parts = append(parts, "\nThe introduction should be warm, professional, and highlight the importance of digital presence in their specific industry.")
	parts = append(parts, "Keep it concise and impactful.")
	return strings.Join(parts, "\n")
}
