package reply_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davemont/deskpilot/internal/model/conversation"
	"github.com/davemont/deskpilot/internal/model/customer"
	"github.com/davemont/deskpilot/internal/service/reply"
)

func TestGenerate_NeverEmpty(t *testing.T) {
	generator := reply.New()

	for _, it := range conversation.Intents() {
		for _, tone := range conversation.Sentiments() {
			got := generator.Generate(it, tone, customer.Anonymous(""), conversation.Verdict{})
			assert.NotEmpty(t, got, "empty reply for (%s, %s)", it, tone)
		}
	}
}

func TestGenerate_KnownPairUsesItsOpening(t *testing.T) {
	generator := reply.New()

	got := generator.Generate(conversation.IntentBilling, conversation.SentimentAngry, customer.Anonymous(""), conversation.Verdict{})
	assert.Contains(t, got, "billing errors")
	assert.Contains(t, got, "invoice number")
}

func TestGenerate_FallsBackToNeutralThenGeneric(t *testing.T) {
	generator := reply.New()

	// (shipping, angry) is not in the table; the neutral shipping opening applies.
	got := generator.Generate(conversation.IntentShipping, conversation.SentimentAngry, customer.Anonymous(""), conversation.Verdict{})
	assert.Contains(t, got, "track your shipment")

	// general has no openings at all; generic acknowledgment plus generic action.
	got = generator.Generate(conversation.IntentGeneral, conversation.SentimentNeutral, customer.Anonymous(""), conversation.Verdict{})
	assert.Contains(t, got, "Thank you for reaching out")
	assert.Contains(t, got, "more details")

	// Angry generic differs from the neutral one.
	got = generator.Generate(conversation.IntentGeneral, conversation.SentimentAngry, customer.Anonymous(""), conversation.Verdict{})
	assert.Contains(t, got, "sincerely apologize")
}

func TestGenerate_CompositionOrder(t *testing.T) {
	generator := reply.New()
	premium := customer.Profile{ID: "p1", Tier: customer.TierPremium}
	verdict := conversation.Verdict{Escalate: true, Reason: "premium customer requesting cancellation"}

	got := generator.Generate(conversation.IntentCancellation, conversation.SentimentNeutral, premium, verdict)

	opening := strings.Index(got, "cancel your subscription")
	action := strings.Index(got, "registered email address")
	loyalty := strings.Index(got, "premium members")
	escalation := strings.Index(got, "senior specialist")

	require.NotEqual(t, -1, opening)
	require.NotEqual(t, -1, action)
	require.NotEqual(t, -1, loyalty)
	require.NotEqual(t, -1, escalation)
	assert.Less(t, opening, action)
	assert.Less(t, action, loyalty)
	assert.Less(t, loyalty, escalation)
}

func TestGenerate_OptionalClauses(t *testing.T) {
	generator := reply.New()

	basic := generator.Generate(conversation.IntentRefund, conversation.SentimentNeutral, customer.Anonymous(""), conversation.Verdict{})
	assert.NotContains(t, basic, "premium members")
	assert.NotContains(t, basic, "senior specialist")

	premium := customer.Profile{ID: "p1", Tier: customer.TierPremium}
	got := generator.Generate(conversation.IntentRefund, conversation.SentimentNeutral, premium, conversation.Verdict{})
	assert.Contains(t, got, "premium members")
	assert.NotContains(t, got, "senior specialist")
}

func TestGenerate_Idempotent(t *testing.T) {
	generator := reply.New()
	profile := customer.Profile{ID: "p1", Tier: customer.TierPremium}
	verdict := conversation.Verdict{Escalate: true, Reason: "repeated failure"}

	first := generator.Generate(conversation.IntentComplaint, conversation.SentimentAngry, profile, verdict)
	second := generator.Generate(conversation.IntentComplaint, conversation.SentimentAngry, profile, verdict)
	assert.Equal(t, first, second)
}
