// internal/models/business.go
package models

type Business struct {
	Name               string       `json:"name"`
	Type               string       `json:"type"`
	Website            string       `json:"website,omitempty"`
	Address            string       `json:"address"`
	Phone              string       `json:"phone,omitempty"`
	Email              string       `json:"email,omitempty"`
	Description        string       `json:"description,omitempty"`
	Tags               []string     `json:"tags,omitempty"`
	SocialMedia        *SocialMedia `json:"socialMedia,omitempty"`
	CurrentWebPresence *WebPresence `json:"currentWebPresence,omitempty"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

type WebPresence struct {
	HasWebsite     bool     `json:"hasWebsite"`
	HasSocialMedia bool     `json:"hasSocialMedia"`
	WebsiteQuality string   `json:"websiteQuality,omitempty"` // none, basic, outdated, modern
	OnlineReviews  *float64 `json:"onlineReviews,omitempty"`
}

// Website quality values
const (
	WebsiteQualityNone     = "none"
	WebsiteQualityBasic    = "basic"
	WebsiteQualityOutdated = "outdated"
	WebsiteQualityModern   = "modern"
)

// HasEmail reports whether the business can receive a campaign email.
func (b Business) HasEmail() bool {
	return b.Email != ""
}

// HasAnyTag reports whether any of the given tags is attached to the business.
func (b Business) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range b.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// BusinessSummary is the condensed view returned by the directory summary.
type BusinessSummary struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	HasWebsite *bool    `json:"hasWebsite,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}
