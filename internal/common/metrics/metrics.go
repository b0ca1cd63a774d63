// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProposalsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_proposals_sent_total",
			Help: "Total number of proposal emails accepted by the mail transport",
		},
		[]string{"template"},
	)

	ProposalsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_proposals_failed_total",
			Help: "Total number of proposal emails that could not be dispatched",
		},
		[]string{"template", "error_code"},
	)

	BusinessesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_businesses_skipped_total",
			Help: "Businesses left out of a campaign because they have no email address",
		},
	)

	ProposalFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_proposal_fallbacks_total",
			Help: "Generated proposals replaced by the default proposal",
		},
		[]string{"reason"},
	)

	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_dispatch_duration_seconds",
			Help:    "Time spent generating, rendering and sending one proposal",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"outcome"},
	)

	CampaignsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outreach_campaigns_active",
			Help: "Number of campaign runs in progress",
		},
	)
)
