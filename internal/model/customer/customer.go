package customer

import "time"

// Tier is the account class affecting escalation and reply phrasing.
type Tier string

const (
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
)

// Order is a single purchase on a customer's record.
type Order struct {
	ID       string    `json:"id" yaml:"id"`
	Amount   float64   `json:"amount" yaml:"amount"`
	PlacedAt time.Time `json:"placedAt" yaml:"placed_at"`
}

// Profile is the customer record the pipeline reads during a turn. It is
// never mutated while a turn is in flight.
type Profile struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name,omitempty" yaml:"name"`
	Tier          Tier    `json:"tier" yaml:"tier"`
	LifetimeValue float64 `json:"lifetimeValue" yaml:"lifetime_value"`
	Orders        []Order `json:"orders,omitempty" yaml:"orders"`
	PriorTickets  int     `json:"priorTickets" yaml:"prior_tickets"`
}

// Anonymous is the default profile substituted when a lookup misses.
func Anonymous(id string) Profile {
	return Profile{ID: id, Tier: TierBasic}
}
