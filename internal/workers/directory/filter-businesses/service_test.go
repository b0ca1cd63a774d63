package filterbusinesses

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"outreach-campaigns/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func fixtures() []models.Business {
	return []models.Business{
		{
			Name: "Joe's", Type: "Restaurant", Email: "joe@joes.com",
			Tags:               []string{"food", "downtown"},
			CurrentWebPresence: &models.WebPresence{HasWebsite: true},
		},
		{
			Name: "Ann's", Type: "Bakery",
			Tags:               []string{"food"},
			CurrentWebPresence: &models.WebPresence{HasWebsite: false},
		},
		{
			Name: "Fix-It", Type: "Plumber", Email: "fix@it.com",
		},
	}
}

func names(bs []models.Business) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Name)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter models.CampaignFilter
		want   []string
	}{
		{name: "empty filter keeps all", filter: models.CampaignFilter{}, want: []string{"Joe's", "Ann's", "Fix-It"}},
		{name: "by type", filter: models.CampaignFilter{Type: "Restaurant"}, want: []string{"Joe's"}},
		{name: "type is exact", filter: models.CampaignFilter{Type: "restaurant"}, want: []string{}},
		{name: "any tag matches", filter: models.CampaignFilter{Tags: []string{"downtown", "suburb"}}, want: []string{"Joe's"}},
		{name: "shared tag", filter: models.CampaignFilter{Tags: []string{"food"}}, want: []string{"Joe's", "Ann's"}},
		{name: "empty tag list is no constraint", filter: models.CampaignFilter{Tags: []string{}}, want: []string{"Joe's", "Ann's", "Fix-It"}},
		{name: "has website", filter: models.CampaignFilter{HasWebsite: boolPtr(true)}, want: []string{"Joe's"}},
		{name: "no website excludes missing presence", filter: models.CampaignFilter{HasWebsite: boolPtr(false)}, want: []string{"Ann's"}},
		{name: "clauses are ANDed", filter: models.CampaignFilter{Tags: []string{"food"}, HasWebsite: boolPtr(false)}, want: []string{"Ann's"}},
		{name: "no match", filter: models.CampaignFilter{Type: "Florist"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Apply(fixtures(), tt.filter)))
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	filters := []models.CampaignFilter{
		{Type: "Restaurant"},
		{Tags: []string{"food"}},
		{HasWebsite: boolPtr(true)},
		{HasWebsite: boolPtr(false)},
		{Type: "Bakery", Tags: []string{"food"}, HasWebsite: boolPtr(false)},
	}
	for _, f := range filters {
		once := Apply(fixtures(), f)
		assert.Equal(t, once, Apply(once, f))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixtures()
	before := fixtures()
	_ = Apply(in, models.CampaignFilter{Type: "Bakery"})
	assert.Equal(t, before, in)
}

func TestApply_ScenarioRestaurantOnly(t *testing.T) {
	out := Apply(fixtures()[:2], models.CampaignFilter{Type: "Restaurant"})
	assert.Equal(t, []string{"Joe's"}, names(out))
}

func TestSearch(t *testing.T) {
	bs := fixtures()
	bs[2].Description = "Emergency PLUMBING repairs"

	assert.Equal(t, []string{"Joe's"}, names(Search(bs, "JOE")))
	assert.Equal(t, []string{"Joe's", "Ann's"}, names(Search(bs, "foo")))
	assert.Equal(t, []string{"Fix-It"}, names(Search(bs, "plumbing")))
	assert.Equal(t, []string{"Joe's", "Ann's", "Fix-It"}, names(Search(bs, "  ")))
}
