package customer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Seed provides sample profiles for demos and tests.
func Seed() []Profile {
	return []Profile{
		{
			ID:            "user123",
			Name:          "John Doe",
			Tier:          TierPremium,
			LifetimeValue: 4200,
			Orders: []Order{
				{ID: "ord-1001", Amount: 129.90, PlacedAt: time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)},
				{ID: "ord-1002", Amount: 89.00, PlacedAt: time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)},
				{ID: "ord-1003", Amount: 349.50, PlacedAt: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)},
			},
			PriorTickets: 4,
		},
		{
			ID:            "user456",
			Name:          "Jane Smith",
			Tier:          TierBasic,
			LifetimeValue: 180,
			Orders: []Order{
				{ID: "ord-2001", Amount: 59.99, PlacedAt: time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)},
			},
			PriorTickets: 0,
		},
		{
			ID:            "user789",
			Name:          "Bob Johnson",
			Tier:          TierPremium,
			LifetimeValue: 9800,
			Orders: []Order{
				{ID: "ord-3001", Amount: 499.00, PlacedAt: time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC)},
				{ID: "ord-3002", Amount: 219.00, PlacedAt: time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)},
			},
			PriorTickets: 1,
		},
	}
}

// LoadFile reads a YAML profile directory maintained outside the service.
func LoadFile(path string) ([]Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read customer seed file: %w", err)
	}

	var doc struct {
		Customers []Profile `yaml:"customers"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse customer seed file %s: %w", path, err)
	}

	for i := range doc.Customers {
		if doc.Customers[i].ID == "" {
			return nil, fmt.Errorf("customer seed file %s: entry %d has no id", path, i)
		}
		if doc.Customers[i].Tier == "" {
			doc.Customers[i].Tier = TierBasic
		}
	}
	return doc.Customers, nil
}
