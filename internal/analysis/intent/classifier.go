package intent

import (
	"regexp"
	"strings"

	"github.com/davemont/deskpilot/internal/model/conversation"
)

// rule binds one intent category to its trigger keywords and the default
// urgency for that category. Rules are evaluated in declaration order and
// the first match wins, so more specific categories sit ahead of broader
// ones (refund before complaint, complaint before general).
type rule struct {
	intent   conversation.Intent
	keywords []string
	base     conversation.Priority
}

var rules = []rule{
	{conversation.IntentRefund, []string{"refund", "money back", "return money", "get my money"}, conversation.PriorityHigh},
	{conversation.IntentCancellation, []string{"cancel", "stop subscription", "end service", "discontinue"}, conversation.PriorityMedium},
	{conversation.IntentBilling, []string{"invoice", "charge", "bill", "payment", "wrong amount", "overcharged"}, conversation.PriorityMedium},
	{conversation.IntentTechnicalSupport, []string{"not working", "broken", "error", "bug", "crash", "issue"}, conversation.PriorityMedium},
	{conversation.IntentAccountAccess, []string{"can't login", "cant login", "forgot password", "locked out", "reset"}, conversation.PriorityHigh},
	{conversation.IntentProductInquiry, []string{"how does", "what is", "explain", "feature"}, conversation.PriorityLow},
	{conversation.IntentComplaint, []string{"disappointed", "terrible", "worst", "never again"}, conversation.PriorityHigh},
	{conversation.IntentUpgrade, []string{"upgrade", "premium", "pro version", "better plan"}, conversation.PriorityLow},
	{conversation.IntentShipping, []string{"delivery", "tracking", "shipment", "hasn't arrived", "hasnt arrived"}, conversation.PriorityLow},
	{conversation.IntentGeneral, []string{"help", "question", "need assistance"}, conversation.PriorityLow},
}

// urgencyKeywords bump the category's default priority one level when present.
var urgencyKeywords = []string{"urgent", "immediately", "asap", "right now", "right away"}

// moneyMention matches explicit amounts such as "$40" or "$ 1,200".
var moneyMention = regexp.MustCompile(`\$\s?\d[\d,.]*`)

// Classify maps raw message text to exactly one intent and a derived
// priority. Unrecognized or empty text falls through to general/low.
func Classify(text string) (conversation.Intent, conversation.Priority) {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return conversation.IntentGeneral, conversation.PriorityLow
	}

	matched := conversation.IntentGeneral
	base := conversation.PriorityLow
	for _, r := range rules {
		if containsAny(normalized, r.keywords) {
			matched = r.intent
			base = r.base
			break
		}
	}

	if containsAny(normalized, urgencyKeywords) || moneyMention.MatchString(normalized) {
		base = base.Bump()
	}

	return matched, base
}

func containsAny(text string, keywords []string) bool {
	for _, word := range keywords {
		if word == "" {
			continue
		}
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
