package escalation

import (
	"fmt"

	"github.com/davemont/deskpilot/internal/model/conversation"
	"github.com/davemont/deskpilot/internal/model/customer"
)

// DefaultRepeatTicketThreshold is the prior-ticket count at which a
// high-priority turn counts as a repeated failure.
const DefaultRepeatTicketThreshold = 3

// Input bundles everything a rule may inspect.
type Input struct {
	Intent    conversation.Intent
	Sentiment conversation.Sentiment
	Priority  conversation.Priority
	Profile   customer.Profile
}

// rule pairs a predicate with a factory for the justification text. Rules
// run in declaration order and the first match decides the verdict, so the
// reported reason is always the highest-precedence trigger.
type rule struct {
	name    string
	matches func(in Input) bool
	reason  func(in Input) string
}

// Evaluator decides whether a turn is routed to a human agent.
type Evaluator struct {
	RepeatTicketThreshold int

	rules []rule
}

// New returns an Evaluator with the default repeated-issue threshold.
func New() *Evaluator {
	return NewWithThreshold(DefaultRepeatTicketThreshold)
}

// NewWithThreshold builds the ordered rule chain around the supplied
// prior-ticket threshold.
func NewWithThreshold(repeatTickets int) *Evaluator {
	e := &Evaluator{RepeatTicketThreshold: repeatTickets}
	e.rules = []rule{
		{
			name: "angry-money-issue",
			matches: func(in Input) bool {
				if in.Sentiment != conversation.SentimentAngry {
					return false
				}
				switch in.Intent {
				case conversation.IntentBilling, conversation.IntentComplaint, conversation.IntentRefund:
					return true
				}
				return false
			},
			reason: func(in Input) string {
				msg := fmt.Sprintf("customer shows extreme dissatisfaction with a %s issue", in.Intent)
				if in.Profile.Tier == customer.TierPremium {
					msg += "; premium account"
				}
				return msg
			},
		},
		{
			name: "premium-cancellation",
			matches: func(in Input) bool {
				return in.Profile.Tier == customer.TierPremium && in.Intent == conversation.IntentCancellation
			},
			reason: func(in Input) string {
				return "premium customer requesting cancellation, retention takes priority"
			},
		},
		{
			name: "repeated-issue",
			matches: func(in Input) bool {
				return in.Priority == conversation.PriorityHigh && in.Profile.PriorTickets >= e.RepeatTicketThreshold
			},
			reason: func(in Input) string {
				return fmt.Sprintf("high priority request after %d prior tickets, repeated failure", in.Profile.PriorTickets)
			},
		},
	}
	return e
}

// Evaluate runs the rule chain. The verdict is always defined: no matching
// rule means no escalation and an empty reason.
func (e *Evaluator) Evaluate(intent conversation.Intent, sentiment conversation.Sentiment, priority conversation.Priority, profile customer.Profile) conversation.Verdict {
	in := Input{Intent: intent, Sentiment: sentiment, Priority: priority, Profile: profile}
	for _, r := range e.rules {
		if r.matches(in) {
			return conversation.Verdict{Escalate: true, Reason: r.reason(in)}
		}
	}
	return conversation.Verdict{}
}
