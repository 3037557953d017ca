package conversation

import "time"

// Session captures one customer conversation. Transcripts of different
// sessions are independent; analytics are shared across all of them.
type Session struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Escalation records a hand-off to a human agent within a session.
type Escalation struct {
	TurnID string    `json:"turnId"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}
