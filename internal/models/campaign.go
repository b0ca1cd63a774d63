// internal/models/campaign.go
package models

// CampaignFilter narrows the directory before a campaign run.
// Zero values mean "no constraint"; an empty Tags slice is treated like a nil one.
type CampaignFilter struct {
	Type       string   `json:"type,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	HasWebsite *bool    `json:"hasWebsite,omitempty"`
}

// IsEmpty reports whether the filter constrains nothing.
func (f CampaignFilter) IsEmpty() bool {
	return f.Type == "" && len(f.Tags) == 0 && f.HasWebsite == nil
}

type DispatchResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type BusinessResult struct {
	Business Business       `json:"business"`
	Result   DispatchResult `json:"result"`
}

type CampaignReport struct {
	Timestamp string        `json:"timestamp"` // ISO 8601
	Results   []ReportEntry `json:"results"`
}

type ReportEntry struct {
	BusinessName  string `json:"businessName"`
	BusinessEmail string `json:"businessEmail"`
	Success       bool   `json:"success"`
	MessageID     string `json:"messageId,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Counts returns the number of successful and failed entries.
func (r CampaignReport) Counts() (sent, failed int) {
	for _, e := range r.Results {
		if e.Success {
			sent++
		} else {
			failed++
		}
	}
	return sent, failed
}
