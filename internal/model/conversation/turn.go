package conversation

import "time"

// Intent is the customer's underlying request category.
type Intent string

const (
	IntentRefund           Intent = "refund"
	IntentBilling          Intent = "billing"
	IntentTechnicalSupport Intent = "technical_support"
	IntentAccountAccess    Intent = "account_access"
	IntentProductInquiry   Intent = "product_inquiry"
	IntentCancellation     Intent = "cancellation"
	IntentShipping         Intent = "shipping"
	IntentUpgrade          Intent = "upgrade"
	IntentComplaint        Intent = "complaint"
	IntentGeneral          Intent = "general"
)

// Intents lists every category in classification order.
func Intents() []Intent {
	return []Intent{
		IntentRefund, IntentBilling, IntentTechnicalSupport,
		IntentAccountAccess, IntentProductInquiry, IntentCancellation,
		IntentShipping, IntentUpgrade, IntentComplaint, IntentGeneral,
	}
}

// Sentiment is the detected emotional tone of a message.
type Sentiment string

const (
	SentimentAngry      Sentiment = "angry"
	SentimentFrustrated Sentiment = "frustrated"
	SentimentNeutral    Sentiment = "neutral"
	SentimentSatisfied  Sentiment = "satisfied"
)

// Sentiments lists every tone the analyzer may return.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentAngry, SentimentFrustrated, SentimentNeutral, SentimentSatisfied}
}

// Priority is an ordered urgency level derived from intent and message content.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Bump raises the priority one level. High stays high.
func (p Priority) Bump() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return p
	}
}

// Verdict is the escalation decision for a single turn. Reason is non-empty
// exactly when Escalate is true and names the triggering condition.
type Verdict struct {
	Escalate bool   `json:"escalate"`
	Reason   string `json:"reason,omitempty"`
}

// Turn is one processed customer message together with all derived outputs.
// Turns are immutable after construction.
type Turn struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	CustomerID string    `json:"customerId,omitempty"`
	Text       string    `json:"text"`
	Intent     Intent    `json:"intent"`
	Sentiment  Sentiment `json:"sentiment"`
	Priority   Priority  `json:"priority"`
	Verdict    Verdict   `json:"verdict"`
	Reply      string    `json:"reply"`
	CreatedAt  time.Time `json:"createdAt"`
}
