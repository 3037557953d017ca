package reply

import (
	"strings"

	"github.com/davemont/deskpilot/internal/model/conversation"
	"github.com/davemont/deskpilot/internal/model/customer"
)

// key addresses the opening table by the (intent, sentiment) pair.
type key struct {
	intent    conversation.Intent
	sentiment conversation.Sentiment
}

// openings hold the acknowledgment sentence for each covered pair. Pairs
// missing here fall back to the same intent with a neutral tone, then to a
// generic acknowledgment keyed by tone alone.
var openings = map[key]string{
	{conversation.IntentRefund, conversation.SentimentAngry}:      "I completely understand your frustration, and I sincerely apologize. I'm prioritizing your refund request right now.",
	{conversation.IntentRefund, conversation.SentimentFrustrated}: "I'm sorry to hear about this issue. I'll help you get your refund processed quickly.",
	{conversation.IntentRefund, conversation.SentimentNeutral}:    "I can help you with a refund.",

	{conversation.IntentCancellation, conversation.SentimentAngry}:      "I understand you want to cancel, and I'll make this as smooth as possible.",
	{conversation.IntentCancellation, conversation.SentimentFrustrated}: "I can assist with canceling your subscription.",
	{conversation.IntentCancellation, conversation.SentimentNeutral}:    "I can help you cancel your subscription.",

	{conversation.IntentBilling, conversation.SentimentAngry}:      "I sincerely apologize for any billing errors. I'm going to review your account immediately.",
	{conversation.IntentBilling, conversation.SentimentFrustrated}: "I'm sorry about the billing issue. Let me investigate this right away.",
	{conversation.IntentBilling, conversation.SentimentNeutral}:    "I'll help you resolve this billing matter.",

	{conversation.IntentTechnicalSupport, conversation.SentimentAngry}:      "I'm very sorry you're experiencing technical difficulties. Let me get our technical team on this immediately.",
	{conversation.IntentTechnicalSupport, conversation.SentimentFrustrated}: "I apologize for the technical trouble. Let me help you resolve this.",
	{conversation.IntentTechnicalSupport, conversation.SentimentNeutral}:    "I'm here to help with your technical issue.",

	{conversation.IntentAccountAccess, conversation.SentimentAngry}:   "I understand how frustrating being locked out is. I'm going to help you regain access right now.",
	{conversation.IntentAccountAccess, conversation.SentimentNeutral}: "I can help you regain access to your account.",

	{conversation.IntentComplaint, conversation.SentimentAngry}:      "I'm truly sorry to hear about your experience. Your feedback is extremely important and I want to make this right.",
	{conversation.IntentComplaint, conversation.SentimentFrustrated}: "I apologize that we didn't meet your expectations.",

	{conversation.IntentUpgrade, conversation.SentimentNeutral}:   "I'd be happy to help you upgrade.",
	{conversation.IntentUpgrade, conversation.SentimentSatisfied}: "Great! I'd be happy to help you upgrade.",

	{conversation.IntentShipping, conversation.SentimentFrustrated}: "I apologize for the delay. Let me track your order right away.",
	{conversation.IntentShipping, conversation.SentimentNeutral}:    "I'll help you track your shipment.",
}

// actionClauses ask for the one detail each intent needs to move forward.
var actionClauses = map[conversation.Intent]string{
	conversation.IntentRefund:           "Please provide your order ID so I can process this.",
	conversation.IntentCancellation:     "May I ask what prompted this decision? Please also share your registered email address.",
	conversation.IntentBilling:          "Please share your invoice number for verification.",
	conversation.IntentTechnicalSupport: "Could you describe the problem you're experiencing?",
	conversation.IntentAccountAccess:    "What's your registered email address?",
	conversation.IntentProductInquiry:   "Which feature would you like me to walk you through?",
	conversation.IntentComplaint:        "Can you tell me more about what happened?",
	conversation.IntentUpgrade:          "Let me walk you through our premium options.",
	conversation.IntentShipping:         "Could you provide your order number?",
}

const (
	genericAngryOpening = "I sincerely apologize for your experience. I want to help resolve this immediately."
	genericOpening      = "Thank you for reaching out. I'm here to help."
	genericAction       = "Could you please provide more details?"
	loyaltyClause       = "As one of our valued premium members, you have my full attention."
	escalationClause    = "I'm connecting you with a senior specialist who can provide immediate assistance. They'll have full context of your situation."
)

// Generator composes replies from an opening table plus an ordered list of
// clause appenders: opening, intent action, premium loyalty, escalation.
type Generator struct{}

// New returns a Generator over the built-in template tables.
func New() *Generator {
	return &Generator{}
}

// Generate produces the reply for a turn. It never returns an empty string:
// unknown (intent, sentiment) pairs use the generic acknowledgment and the
// generic action clause.
func (g *Generator) Generate(intent conversation.Intent, sentiment conversation.Sentiment, profile customer.Profile, verdict conversation.Verdict) string {
	parts := []string{g.opening(intent, sentiment)}

	for _, appendClause := range []func(conversation.Intent, customer.Profile, conversation.Verdict) string{
		g.actionClause,
		g.loyaltyClause,
		g.escalationClause,
	} {
		if clause := appendClause(intent, profile, verdict); clause != "" {
			parts = append(parts, clause)
		}
	}

	return strings.Join(parts, " ")
}

func (g *Generator) opening(intent conversation.Intent, sentiment conversation.Sentiment) string {
	if opening, ok := openings[key{intent, sentiment}]; ok {
		return opening
	}
	if opening, ok := openings[key{intent, conversation.SentimentNeutral}]; ok {
		return opening
	}
	if sentiment == conversation.SentimentAngry {
		return genericAngryOpening
	}
	return genericOpening
}

func (g *Generator) actionClause(intent conversation.Intent, _ customer.Profile, _ conversation.Verdict) string {
	if clause, ok := actionClauses[intent]; ok {
		return clause
	}
	return genericAction
}

func (g *Generator) loyaltyClause(_ conversation.Intent, profile customer.Profile, _ conversation.Verdict) string {
	if profile.Tier == customer.TierPremium {
		return loyaltyClause
	}
	return ""
}

func (g *Generator) escalationClause(_ conversation.Intent, _ customer.Profile, verdict conversation.Verdict) string {
	if verdict.Escalate {
		return escalationClause
	}
	return ""
}
