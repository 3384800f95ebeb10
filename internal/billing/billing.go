// Package billing computes the figures the receipt view renders. It only reads
// order state; it never mutates it.
package billing

import (
	"tableside/internal/merge"
	"tableside/internal/models"
)

// DefaultTaxRate is the fixed tax applied to every bill.
const DefaultTaxRate = 0.05

// Bill is the money breakdown for one order.
type Bill struct {
	Subtotal           float64 `json:"subtotal"`
	Tax                float64 `json:"tax"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty"`
	DiscountAmount     float64 `json:"discount_amount,omitempty"`
	Total              float64 `json:"total"`
}

// Compute builds the bill for an order across all four stage buckets. An approved
// discount is taken as a percentage of (subtotal + tax), not of the subtotal
// alone; applying it earlier would under-discount the taxed amount.
func Compute(o models.Order, taxRate float64) Bill {
	subtotal := merge.Price(o.Pending, o.Accepted, o.Ready, o.Served)
	tax := subtotal * taxRate
	beforeDiscount := subtotal + tax

	bill := Bill{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    beforeDiscount,
	}
	if o.DiscountApplied && o.DiscountPercentage > 0 {
		bill.DiscountPercentage = o.DiscountPercentage
		bill.DiscountAmount = beforeDiscount * o.DiscountPercentage / 100
		bill.Total = beforeDiscount - bill.DiscountAmount
	}
	return bill
}
