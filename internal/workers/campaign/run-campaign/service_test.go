package runcampaign

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/models"
	sendproposals "outreach-campaigns/internal/workers/campaign/send-proposals"
	saveresults "outreach-campaigns/internal/workers/campaign/save-results"
)

var fixedTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type staticDirectory []models.Business

func (d staticDirectory) LoadOrEmpty(ctx context.Context) []models.Business {
	return d
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) SendProposals(ctx context.Context, businesses []models.Business, opts sendproposals.Options) []models.BusinessResult {
	args := m.Called(ctx, businesses, opts)
	if fn, ok := args.Get(0).(func(context.Context, []models.Business, sendproposals.Options) []models.BusinessResult); ok {
		return fn(ctx, businesses, opts)
	}
	return args.Get(0).([]models.BusinessResult)
}

type recordingRecorder struct {
	results []models.BusinessResult
	ctxErr  error
	calls   int
}

func (r *recordingRecorder) SaveResults(ctx context.Context, results []models.BusinessResult) models.CampaignReport {
	r.calls++
	r.results = results
	r.ctxErr = ctx.Err()
	return saveresults.BuildReport(results, fixedTime)
}

func names(businesses []models.Business) []string {
	out := make([]string, len(businesses))
	for i, b := range businesses {
		out[i] = b.Name
	}
	return out
}

func directory() staticDirectory {
	return staticDirectory{
		{Name: "Joe's", Type: "Restaurant", Email: "joe@x.com", Tags: []string{"italian"}},
		{Name: "Ann's", Type: "Bakery", Tags: []string{}},
		{Name: "Bo's", Type: "Restaurant", Email: "bo@x.com", CurrentWebPresence: &models.WebPresence{HasWebsite: false}},
	}
}

func sentFor(businesses []models.Business) []models.BusinessResult {
	results := make([]models.BusinessResult, 0, len(businesses))
	for _, b := range businesses {
		if b.HasEmail() {
			results = append(results, models.BusinessResult{Business: b, Result: models.DispatchResult{Success: true, MessageID: "<" + b.Email + ">"}})
		}
	}
	return results
}

func newRunner(t *testing.T, dir BusinessSource, dispatcher *MockDispatcher, rec *recordingRecorder) *Runner {
	return NewRunner(ServiceDependencies{
		Directory:  dir,
		Dispatcher: dispatcher,
		Recorder:   rec,
		Logger:     logger.NewTestLogger(t),
	})
}

func TestRunner_RunAndFilter(t *testing.T) {
	hasWebsite := false
	tests := []struct {
		name      string
		filter    *models.CampaignFilter
		wantNames []string
		wantSent  int
	}{
		{name: "all", wantNames: []string{"Joe's", "Ann's", "Bo's"}, wantSent: 2},
		{name: "by type", filter: &models.CampaignFilter{Type: "Restaurant"}, wantNames: []string{"Joe's", "Bo's"}, wantSent: 2},
		{name: "by tag", filter: &models.CampaignFilter{Tags: []string{"italian"}}, wantNames: []string{"Joe's"}, wantSent: 1},
		{name: "without website", filter: &models.CampaignFilter{HasWebsite: &hasWebsite}, wantNames: []string{"Bo's"}, wantSent: 1},
		{name: "no match", filter: &models.CampaignFilter{Type: "Florist"}, wantNames: []string{}, wantSent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := new(MockDispatcher)
			dispatcher.On("SendProposals", mock.Anything, mock.Anything, mock.Anything).
				Return(func(ctx context.Context, b []models.Business, _ sendproposals.Options) []models.BusinessResult {
					return sentFor(b)
				})
			rec := &recordingRecorder{}
			runner := newRunner(t, directory(), dispatcher, rec)

			var report models.CampaignReport
			if tt.filter == nil {
				report = runner.RunAll(context.Background(), sendproposals.Options{})
			} else {
				report = runner.RunFiltered(context.Background(), *tt.filter, sendproposals.Options{})
			}

			targets := dispatcher.Calls[0].Arguments.Get(1).([]models.Business)
			assert.Equal(t, tt.wantNames, names(targets))
			sent, failed := report.Counts()
			assert.Equal(t, tt.wantSent, sent)
			assert.Zero(t, failed)
			assert.Equal(t, 1, rec.calls)
		})
	}
}

func TestRunner_EmptyDirectoryStillRecords(t *testing.T) {
	dispatcher := new(MockDispatcher)
	dispatcher.On("SendProposals", mock.Anything, []models.Business{}, mock.Anything).Return([]models.BusinessResult{})
	rec := &recordingRecorder{}

	report := newRunner(t, staticDirectory{}, dispatcher, rec).RunAll(context.Background(), sendproposals.Options{})

	assert.Empty(t, report.Results)
	assert.Equal(t, 1, rec.calls)
	dispatcher.AssertExpectations(t)
}

func TestRunner_CancelledRunStillRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	partial := sentFor(directory()[:1])

	dispatcher := new(MockDispatcher)
	dispatcher.On("SendProposals", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(partial)
	rec := &recordingRecorder{}

	newRunner(t, directory(), dispatcher, rec).RunAll(ctx, sendproposals.Options{})

	require.Equal(t, 1, rec.calls)
	assert.NoError(t, rec.ctxErr)
	assert.Equal(t, partial, rec.results)
}
