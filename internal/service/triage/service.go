package triage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/davemont/deskpilot/internal/analysis/intent"
	"github.com/davemont/deskpilot/internal/analysis/sentiment"
	"github.com/davemont/deskpilot/internal/model/conversation"
	"github.com/davemont/deskpilot/internal/model/customer"
	"github.com/davemont/deskpilot/internal/service/analytics"
	"github.com/davemont/deskpilot/internal/service/escalation"
	"github.com/davemont/deskpilot/internal/service/reply"
)

var (
	ErrSessionIDRequired = errors.New("session id is required")
	ErrSessionNotFound   = errors.New("session not found")
)

// DefaultHistoryLimit caps how many turns a session transcript retains.
const DefaultHistoryLimit = 50

// Service is the coordinator: it runs the classification, decision and
// generation stages in fixed order for each incoming message and owns the
// per-session conversation state.
type Service struct {
	customers    customer.Store
	sentiments   *sentiment.Analyzer
	escalator    *escalation.Evaluator
	replies      *reply.Generator
	analytics    *analytics.Service
	historyLimit int
	logger       *logrus.Logger

	mu          sync.RWMutex
	sessions    map[string]conversation.Session
	transcripts map[string][]conversation.Turn
	escalations map[string][]conversation.Escalation
}

// Option tweaks optional service behavior.
type Option func(*Service)

// WithHistoryLimit overrides the transcript cap.
func WithHistoryLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithSentimentAnalyzer substitutes a tuned analyzer.
func WithSentimentAnalyzer(a *sentiment.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.sentiments = a
		}
	}
}

// WithEscalationEvaluator substitutes a tuned evaluator.
func WithEscalationEvaluator(e *escalation.Evaluator) Option {
	return func(s *Service) {
		if e != nil {
			s.escalator = e
		}
	}
}

// NewService bootstraps the in-memory coordinator.
func NewService(customers customer.Store, agg *analytics.Service, logger *logrus.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	s := &Service{
		customers:    customers,
		sentiments:   sentiment.New(),
		escalator:    escalation.New(),
		replies:      reply.New(),
		analytics:    agg,
		historyLimit: DefaultHistoryLimit,
		logger:       logger,
		sessions:     make(map[string]conversation.Session),
		transcripts:  make(map[string][]conversation.Turn),
		escalations:  make(map[string][]conversation.Escalation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession provisions a conversation for a customer. Unknown customer
// IDs are allowed; the pipeline substitutes an anonymous profile per turn.
func (s *Service) CreateSession(_ context.Context, customerID string) (conversation.Session, error) {
	session := conversation.Session{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.transcripts[session.ID] = make([]conversation.Turn, 0, 16)
	s.mu.Unlock()

	return session, nil
}

// Process runs one message through the full pipeline and returns the
// completed turn. The only failure mode is an invalid session identifier;
// every stage is total over its inputs, including empty text.
func (s *Service) Process(_ context.Context, sessionID, text string) (conversation.Turn, error) {
	if sessionID == "" {
		return conversation.Turn{}, ErrSessionIDRequired
	}

	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return conversation.Turn{}, ErrSessionNotFound
	}

	profile := s.lookupProfile(session.CustomerID)

	// Intent and sentiment are order-independent; escalation needs both.
	detectedIntent, priority := intent.Classify(text)
	tone := s.sentiments.Analyze(text)
	verdict := s.escalator.Evaluate(detectedIntent, tone, priority, profile)
	answer := s.replies.Generate(detectedIntent, tone, profile, verdict)

	turn := conversation.Turn{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		CustomerID: session.CustomerID,
		Text:       text,
		Intent:     detectedIntent,
		Sentiment:  tone,
		Priority:   priority,
		Verdict:    verdict,
		Reply:      answer,
		CreatedAt:  time.Now().UTC(),
	}

	// Shared state changes only after the reply exists.
	s.mu.Lock()
	transcript := append(s.transcripts[sessionID], turn)
	if len(transcript) > s.historyLimit {
		transcript = transcript[len(transcript)-s.historyLimit:]
	}
	s.transcripts[sessionID] = transcript
	if verdict.Escalate {
		s.escalations[sessionID] = append(s.escalations[sessionID], conversation.Escalation{
			TurnID: turn.ID,
			Reason: verdict.Reason,
			At:     turn.CreatedAt,
		})
	}
	s.mu.Unlock()

	s.analytics.Record(turn)

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"intent":     turn.Intent,
		"sentiment":  turn.Sentiment,
		"priority":   turn.Priority,
		"escalated":  verdict.Escalate,
	}).Info("Processed turn")

	return turn, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (conversation.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return conversation.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Transcript returns stored turns for the provided session.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]conversation.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transcript, ok := s.transcripts[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]conversation.Turn, len(transcript))
	copy(copied, transcript)
	return copied, nil
}

// Escalations returns the escalation log for the provided session.
func (s *Service) Escalations(_ context.Context, sessionID string) ([]conversation.Escalation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, ErrSessionNotFound
	}

	log := s.escalations[sessionID]
	copied := make([]conversation.Escalation, len(log))
	copy(copied, log)
	return copied, nil
}

func (s *Service) lookupProfile(customerID string) customer.Profile {
	if customerID == "" {
		return customer.Anonymous("")
	}
	profile, ok := s.customers.FindByID(customerID)
	if !ok {
		s.logger.WithField("customer_id", customerID).Debug("Unknown customer, using anonymous profile")
		return customer.Anonymous(customerID)
	}
	return profile
}
