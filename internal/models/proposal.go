// internal/models/proposal.go
package models

type ServiceProposal struct {
	WebsiteServices   *ServiceSection `json:"websiteServices,omitempty"`
	MarketingServices *ServiceSection `json:"marketingServices,omitempty"`
	BrandingServices  *ServiceSection `json:"brandingServices,omitempty"`
}

type ServiceSection struct {
	Needed          bool     `json:"needed"`
	Recommendations []string `json:"recommendations"`
	EstimatedPrice  string   `json:"estimatedPrice,omitempty"`
}

// Section keys as they appear in the generated JSON.
const (
	SectionWebsite   = "websiteServices"
	SectionMarketing = "marketingServices"
	SectionBranding  = "brandingServices"
)

// Sections returns the proposal sections keyed by their JSON name.
func (p ServiceProposal) Sections() map[string]*ServiceSection {
	return map[string]*ServiceSection{
		SectionWebsite:   p.WebsiteServices,
		SectionMarketing: p.MarketingServices,
		SectionBranding:  p.BrandingServices,
	}
}
