package analytics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/davemont/deskpilot/internal/model/conversation"
)

// escalationPenaltyMinutes is added to the resolution estimate whenever a
// turn is handed to a human agent.
const escalationPenaltyMinutes = 15

// baseResolutionMinutes is the fixed handling estimate per intent.
var baseResolutionMinutes = map[conversation.Intent]float64{
	conversation.IntentRefund:           20,
	conversation.IntentBilling:          15,
	conversation.IntentTechnicalSupport: 30,
	conversation.IntentAccountAccess:    10,
	conversation.IntentProductInquiry:   5,
	conversation.IntentCancellation:     12,
	conversation.IntentShipping:         8,
	conversation.IntentUpgrade:          6,
	conversation.IntentComplaint:        25,
	conversation.IntentGeneral:          5,
}

// Snapshot is a point-in-time copy of the aggregate counters. Counters only
// grow within a session and reset at process restart.
type Snapshot struct {
	TotalTurns        int64                            `json:"totalTurns"`
	ByIntent          map[conversation.Intent]int64    `json:"byIntent"`
	BySentiment       map[conversation.Sentiment]int64 `json:"bySentiment"`
	Escalations       int64                            `json:"escalations"`
	EscalationRate    float64                          `json:"escalationRate"`
	ResolutionMinutes float64                          `json:"estimatedResolutionMinutes"`
}

// Service owns the aggregate usage counters. All updates go through Record
// behind a single mutex, so concurrent conversations stay consistent.
type Service struct {
	mu                sync.Mutex
	totalTurns        int64
	byIntent          map[conversation.Intent]int64
	bySentiment       map[conversation.Sentiment]int64
	escalations       int64
	resolutionMinutes float64

	metrics *promMetrics
}

type promMetrics struct {
	TurnsProcessed    *prometheus.CounterVec
	SentimentObserved *prometheus.CounterVec
	Escalations       prometheus.Counter
	ResolutionMinutes prometheus.Histogram
}

func newPromMetrics(reg prometheus.Registerer) *promMetrics {
	return &promMetrics{
		TurnsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "triage_turns_processed_total",
			Help: "Total number of processed turns by intent",
		}, []string{"intent"}),
		SentimentObserved: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "triage_sentiment_observed_total",
			Help: "Total number of processed turns by detected sentiment",
		}, []string{"sentiment"}),
		Escalations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "triage_escalations_total",
			Help: "Total number of turns escalated to a human agent",
		}),
		ResolutionMinutes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "triage_estimated_resolution_minutes",
			Help:    "Estimated resolution time per turn in minutes",
			Buckets: []float64{5, 10, 15, 20, 30, 45, 60},
		}),
	}
}

// New returns an aggregator that also mirrors its counters to the supplied
// Prometheus registerer. Tests pass a fresh registry for isolation.
func New(reg prometheus.Registerer) *Service {
	return &Service{
		byIntent:    make(map[conversation.Intent]int64),
		bySentiment: make(map[conversation.Sentiment]int64),
		metrics:     newPromMetrics(reg),
	}
}

// Record folds one processed turn into the aggregates. Call exactly once
// per turn, after the reply is generated.
func (s *Service) Record(turn conversation.Turn) {
	estimate := baseResolutionMinutes[turn.Intent]
	if turn.Verdict.Escalate {
		estimate += escalationPenaltyMinutes
	}

	s.mu.Lock()
	s.totalTurns++
	s.byIntent[turn.Intent]++
	s.bySentiment[turn.Sentiment]++
	if turn.Verdict.Escalate {
		s.escalations++
	}
	s.resolutionMinutes += estimate
	s.mu.Unlock()

	s.metrics.TurnsProcessed.WithLabelValues(string(turn.Intent)).Inc()
	s.metrics.SentimentObserved.WithLabelValues(string(turn.Sentiment)).Inc()
	if turn.Verdict.Escalate {
		s.metrics.Escalations.Inc()
	}
	s.metrics.ResolutionMinutes.Observe(estimate)
}

// Snapshot returns a copy of the current aggregates for the presentation
// layer. Mutating the returned maps does not affect the service.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	byIntent := make(map[conversation.Intent]int64, len(s.byIntent))
	for intent, count := range s.byIntent {
		byIntent[intent] = count
	}
	bySentiment := make(map[conversation.Sentiment]int64, len(s.bySentiment))
	for tone, count := range s.bySentiment {
		bySentiment[tone] = count
	}

	rate := 0.0
	if s.totalTurns > 0 {
		rate = float64(s.escalations) / float64(s.totalTurns) * 100
	}

	return Snapshot{
		TotalTurns:        s.totalTurns,
		ByIntent:          byIntent,
		BySentiment:       bySentiment,
		Escalations:       s.escalations,
		EscalationRate:    rate,
		ResolutionMinutes: s.resolutionMinutes,
	}
}
