package sendproposals

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/models"
	emailsend "outreach-campaigns/internal/workers/communication/email-send"
	injecttracking "outreach-campaigns/internal/workers/communication/inject-tracking"
	rendertemplate "outreach-campaigns/internal/workers/communication/render-template"
)

// ==========================
// Mocks & Helpers
// ==========================

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateProposal(ctx context.Context, b models.Business) models.ServiceProposal {
	args := m.Called(ctx, b)
	return args.Get(0).(models.ServiceProposal)
}

func (m *MockGenerator) GenerateIntro(ctx context.Context, b models.Business) string {
	args := m.Called(ctx, b)
	return args.String(0)
}

type MockSender struct {
	mock.Mock
	sent []*emailsend.Message
}

func (m *MockSender) Send(ctx context.Context, msg *emailsend.Message) (string, error) {
	m.sent = append(m.sent, msg)
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type recordingPacer struct {
	waits  int
	cancel context.CancelFunc
	after  int
}

func (p *recordingPacer) Wait(ctx context.Context) error {
	p.waits++
	if p.cancel != nil && p.waits >= p.after {
		p.cancel()
	}
	return ctx.Err()
}

const testTemplate = `<h1>Hi {{businessName}}</h1><p>{{customizedIntro}}</p>` +
	`<pre>{{websiteRecommendations}}</pre><p>{{websitePrice}}</p><p>Call {{phoneNumber}}</p>`

func testProposal() models.ServiceProposal {
	section := func(rec, price string) *models.ServiceSection {
		return &models.ServiceSection{Needed: true, Recommendations: []string{rec, "Second step"}, EstimatedPrice: price}
	}
	return models.ServiceProposal{
		WebsiteServices:   section("Build a mobile site", "$1,500"),
		MarketingServices: section("Run search ads", "$300/month"),
		BrandingServices:  section("Refresh the logo", "$800"),
	}
}

func business(name, email string) models.Business {
	return models.Business{Name: name, Type: "Restaurant", Address: "1 Main St", Email: email}
}

type fixture struct {
	dispatcher *Dispatcher
	generator  *MockGenerator
	sender     *MockSender
	pacer      *recordingPacer
}

func newFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "business-proposal.html"), []byte(testTemplate), 0o644))

	gen := new(MockGenerator)
	gen.On("GenerateProposal", mock.Anything, mock.Anything).Return(testProposal()).Maybe()
	gen.On("GenerateIntro", mock.Anything, mock.Anything).Return("We build sites <script>alert(1)</script>that sell.").Maybe()

	sender := new(MockSender)
	pacer := &recordingPacer{}
	log := logger.NewTestLogger(t)

	d := NewDispatcher(ServiceDependencies{
		Generator: gen,
		Renderer:  rendertemplate.NewRenderer(&rendertemplate.Config{TemplateDir: dir, Extension: ".html"}, log),
		Tracker:   injecttracking.NewInjector(&injecttracking.Config{TrackingURL: "https://track.example.com/"}),
		Sender:    sender,
		Pacer:     pacer,
		Logger:    log,
	}, DefaultConfig())

	ids := 0
	d.newID = func(time.Time) string {
		ids++
		return "1700000000000-msg" + string(rune('0'+ids))
	}

	return &fixture{dispatcher: d, generator: gen, sender: sender, pacer: pacer}
}

func defaultOptions() Options {
	return Options{
		From:            "me@agency.com",
		Subject:         "Grow your business online",
		TemplateName:    "business-proposal",
		TemplateData:    map[string]string{"phoneNumber": "555-0100"},
		TrackingEnabled: true,
	}
}

// ==========================
// Dispatch
// ==========================

func TestSendProposals_SkipsBusinessesWithoutEmail(t *testing.T) {
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("<id-1@smtp>", nil).Once()

	results := f.dispatcher.SendProposals(context.Background(), []models.Business{
		business("Joe's", "joe@x.com"),
		{Name: "Ann's", Type: "Bakery", Address: "2 Side St"},
	}, defaultOptions())

	require.Len(t, results, 1)
	assert.Equal(t, "Joe's", results[0].Business.Name)
	assert.True(t, results[0].Result.Success)
	assert.Equal(t, "<id-1@smtp>", results[0].Result.MessageID)
	assert.Empty(t, results[0].Result.Error)
	assert.Equal(t, 0, f.pacer.waits)
	f.sender.AssertExpectations(t)
}

func TestSendProposals_IsolatesTransportFailures(t *testing.T) {
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m *emailsend.Message) bool { return m.To[0] == "a@x.com" })).Return("<a@smtp>", nil)
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m *emailsend.Message) bool { return m.To[0] == "b@x.com" })).Return("", errors.New("quota exceeded"))
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m *emailsend.Message) bool { return m.To[0] == "c@x.com" })).Return("<c@smtp>", nil)

	results := f.dispatcher.SendProposals(context.Background(), []models.Business{
		business("A", "a@x.com"),
		business("B", "b@x.com"),
		business("C", "c@x.com"),
	}, defaultOptions())

	require.Len(t, results, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{results[0].Business.Name, results[1].Business.Name, results[2].Business.Name})
	assert.True(t, results[0].Result.Success)
	assert.Equal(t, models.DispatchResult{Success: false, Error: "quota exceeded"}, results[1].Result)
	assert.True(t, results[2].Result.Success)
	assert.Equal(t, 2, f.pacer.waits)
}

func TestSendProposals_InvalidAddresses(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		email string
	}{
		{name: "bad recipient", from: "me@agency.com", email: "joe@"},
		{name: "bad sender", from: "agency", email: "joe@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			opts := defaultOptions()
			opts.From = tt.from

			results := f.dispatcher.SendProposals(context.Background(), []models.Business{business("Joe's", tt.email)}, opts)

			require.Len(t, results, 1)
			assert.False(t, results[0].Result.Success)
			assert.Equal(t, "Invalid email address detected", results[0].Result.Error)
			assert.Empty(t, results[0].Result.MessageID)
			f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			f.generator.AssertNotCalled(t, "GenerateProposal", mock.Anything, mock.Anything)
		})
	}
}

func TestSendProposals_MissingTemplateFailsPerBusiness(t *testing.T) {
	f := newFixture(t)
	opts := defaultOptions()
	opts.TemplateName = "does-not-exist"

	results := f.dispatcher.SendProposals(context.Background(), []models.Business{
		business("A", "a@x.com"),
		business("B", "b@x.com"),
	}, opts)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Result.Success)
		assert.Contains(t, r.Result.Error, "TEMPLATE_NOT_FOUND")
	}
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendProposals_ComposesMessage(t *testing.T) {
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("<ok@smtp>", nil)

	f.dispatcher.SendProposals(context.Background(), []models.Business{business("Joe's", "joe@x.com")}, defaultOptions())

	require.Len(t, f.sender.sent, 1)
	msg := f.sender.sent[0]
	assert.Equal(t, "me@agency.com", msg.From)
	assert.Equal(t, []string{"joe@x.com"}, msg.To)
	assert.Equal(t, "Grow your business online", msg.Subject)
	assert.Equal(t, "1700000000000-msg1", msg.MessageID)
	assert.Equal(t, "true", msg.Headers["X-Marketing-Campaign"])
	assert.Equal(t, "<mailto:unsubscribe@yourdomain.com?subject=unsubscribe_1700000000000-msg1>", msg.Headers["List-Unsubscribe"])

	assert.Contains(t, msg.HTML, "<h1>Hi Joe&#39;s</h1>")
	assert.Contains(t, msg.HTML, "<p>We build sites that sell.</p>")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "<pre>Build a mobile site\nSecond step</pre>")
	assert.Contains(t, msg.HTML, "<p>$1,500</p>")
	assert.Contains(t, msg.HTML, "Call 555-0100")
	assert.Contains(t, msg.HTML, `<img src="https://track.example.com/pixel/1700000000000-msg1" width="1" height="1" style="display:none">`)
}

func TestSendProposals_EscapesDirectoryFields(t *testing.T) {
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("<ok@smtp>", nil)

	b := business("Ben & Jerry's <Cafe>", "ben@x.com")
	b.Type = "Ice <b>Cream</b>"
	opts := defaultOptions()
	opts.TemplateName = "inline-check"

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inline-check.html"), []byte(`<h1>{{businessName}}</h1><p>{{businessType}}</p>`), 0o644))
	f.dispatcher.renderer = rendertemplate.NewRenderer(&rendertemplate.Config{TemplateDir: dir, Extension: ".html"}, logger.NewNoOpLogger())

	f.dispatcher.SendProposals(context.Background(), []models.Business{b}, opts)

	require.Len(t, f.sender.sent, 1)
	body := f.sender.sent[0].HTML
	assert.Contains(t, body, "<h1>Ben &amp; Jerry&#39;s &lt;Cafe&gt;</h1>")
	assert.Contains(t, body, "<p>Ice &lt;b&gt;Cream&lt;/b&gt;</p>")
	assert.NotContains(t, body, "<Cafe>")
}

func TestSendProposals_InlineHTMLWithoutTracking(t *testing.T) {
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("<ok@smtp>", nil)

	opts := defaultOptions()
	opts.TemplateName = ""
	opts.HTML = "<p>Hello {{businessName}}</p>"
	opts.Text = "Hello"
	opts.TrackingEnabled = false

	f.dispatcher.SendProposals(context.Background(), []models.Business{business("Joe's", "joe@x.com")}, opts)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "<p>Hello {{businessName}}</p>", f.sender.sent[0].HTML)
	assert.Equal(t, "Hello", f.sender.sent[0].Text)
}

func TestSendProposals_CancelledContextStopsEarly(t *testing.T) {
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("<ok@smtp>", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.pacer.cancel = cancel
	f.pacer.after = 1

	results := f.dispatcher.SendProposals(ctx, []models.Business{
		business("A", "a@x.com"),
		business("B", "b@x.com"),
		business("C", "c@x.com"),
	}, defaultOptions())

	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].Business.Name)
	f.sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestSendProposals_EmptyInput(t *testing.T) {
	f := newFixture(t)
	results := f.dispatcher.SendProposals(context.Background(), nil, defaultOptions())
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

// ==========================
// Helpers
// ==========================

func TestNewMessageID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := NewMessageID(now)
	assert.Regexp(t, regexp.MustCompile(`^1700000000123-[0-9a-f]{9}$`), id)
	assert.NotEqual(t, id, NewMessageID(now))
}

func TestFixedDelay_Wait(t *testing.T) {
	assert.NoError(t, FixedDelay{}.Wait(context.Background()))
	assert.NoError(t, FixedDelay{Delay: time.Millisecond}.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, FixedDelay{}.Wait(ctx), context.Canceled)

	start := time.Now()
	assert.ErrorIs(t, FixedDelay{Delay: time.Hour}.Wait(ctx), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.SendDelay)

	cfg.SendDelay = -time.Millisecond
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.UnsubscribeAddress = ""
	assert.Error(t, cfg.Validate())
}
