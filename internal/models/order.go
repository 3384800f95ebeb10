package models

import (
	"fmt"
	"net/url"
	"time"
)

// AcceptanceState tracks whether the newest pending items of an order have been
// acknowledged by the order-acceptance role.
type AcceptanceState string

const (
	StateAwaiting AcceptanceState = "awaiting"
	StateAccepted AcceptanceState = "accepted"
)

// OrderItem is one order line: a menu item identity with a price snapshot and a
// positive quantity. The price is captured when the item enters an order, so later
// catalog edits never change what a table owes.
type OrderItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is the full submitted state for one table. Items move through the four
// stage buckets as preparation progresses; one item identity lives in exactly one
// bucket at a time, and never appears twice inside the same bucket.
type Order struct {
	TableID        string          `json:"table_id"`
	Pending        []OrderItem     `json:"pending_items"`
	Accepted       []OrderItem     `json:"accepted_items"`
	Ready          []OrderItem     `json:"ready_items"`
	Served         []OrderItem     `json:"served_items"`
	State          AcceptanceState `json:"state"`
	LastActivityAt time.Time       `json:"last_activity_at"`

	// Discount claim: the proof URL is an unverified diner claim; the discount
	// binds only once a staff session approves it.
	DiscountProofURL   string  `json:"discount_proof_url,omitempty"`
	DiscountApplied    bool    `json:"discount_applied"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty"`
}

// Clone returns a deep copy of the order, including all four buckets.
func (o Order) Clone() Order {
	c := o
	c.Pending = cloneItems(o.Pending)
	c.Accepted = cloneItems(o.Accepted)
	c.Ready = cloneItems(o.Ready)
	c.Served = cloneItems(o.Served)
	return c
}

func cloneItems(items []OrderItem) []OrderItem {
	if items == nil {
		return nil
	}
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}

// ValidateItems checks a submission payload: it must be non-empty and every line
// must carry a positive quantity and a non-negative price.
func ValidateItems(items []OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("items cannot be empty")
	}
	for i, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("items[%d].quantity must be positive", i)
		}
		if item.Price < 0 {
			return fmt.Errorf("items[%d].price must not be negative", i)
		}
	}
	return nil
}

// ValidateDiscountPercentage enforces the approval range (0, 100].
func ValidateDiscountPercentage(pct float64) error {
	if pct <= 0 || pct > 100 {
		return fmt.Errorf("discount percentage must be greater than 0 and at most 100, got %v", pct)
	}
	return nil
}

// ValidateProofURL checks a discount claim URL for well-formedness only. Whether
// the linked post actually exists is for staff to judge.
func ValidateProofURL(proofURL string) error {
	u, err := url.Parse(proofURL)
	if err != nil {
		return fmt.Errorf("invalid proof url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("proof url must be absolute")
	}
	return nil
}
