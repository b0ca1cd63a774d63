package filterbusinesses

import (
	"strings"

	"outreach-campaigns/internal/models"
)

// Apply returns the businesses matching every clause of filter, in input order.
// Neither argument is modified.
func Apply(businesses []models.Business, filter models.CampaignFilter) []models.Business {
	out := make([]models.Business, 0, len(businesses))
	for _, b := range businesses {
		if Matches(b, filter) {
			out = append(out, b)
		}
	}
	return out
}

// Matches reports whether b satisfies filter. An empty tag list does not constrain.
// A business without web presence data never matches a hasWebsite clause.
func Matches(b models.Business, filter models.CampaignFilter) bool {
	if filter.Type != "" && b.Type != filter.Type {
		return false
	}
	if len(filter.Tags) > 0 && !b.HasAnyTag(filter.Tags) {
		return false
	}
	if filter.HasWebsite != nil {
		if b.CurrentWebPresence == nil || b.CurrentWebPresence.HasWebsite != *filter.HasWebsite {
			return false
		}
	}
	return true
}

// Search keeps businesses whose name, description or any tag contains keyword,
// ignoring case. An empty keyword keeps everything.
func Search(businesses []models.Business, keyword string) []models.Business {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	out := make([]models.Business, 0, len(businesses))
	for _, b := range businesses {
		if keyword == "" || matchesKeyword(b, keyword) {
			out = append(out, b)
		}
	}
	return out
}

func matchesKeyword(b models.Business, keyword string) bool {
	if strings.Contains(strings.ToLower(b.Name), keyword) ||
		strings.Contains(strings.ToLower(b.Description), keyword) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return false
}
