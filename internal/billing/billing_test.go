package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableside/internal/models"
)

func TestComputeWithoutDiscount(t *testing.T) {
	order := models.Order{
		Served: []models.OrderItem{{ID: 101, Price: 180, Quantity: 2}},
	}

	bill := Compute(order, DefaultTaxRate)

	assert.InDelta(t, 360.0, bill.Subtotal, 1e-9)
	assert.InDelta(t, 18.0, bill.Tax, 1e-9)
	assert.Zero(t, bill.DiscountAmount)
	assert.InDelta(t, 378.0, bill.Total, 1e-9)
}

func TestComputeAppliesDiscountAfterTax(t *testing.T) {
	// The discount is a percentage of (subtotal + tax), not of subtotal alone:
	// 360 + 18 = 378, 10% of that is 37.8, leaving 340.2.
	order := models.Order{
		Served:             []models.OrderItem{{ID: 101, Price: 180, Quantity: 2}},
		DiscountApplied:    true,
		DiscountPercentage: 10,
	}

	bill := Compute(order, DefaultTaxRate)

	assert.InDelta(t, 360.0, bill.Subtotal, 1e-9)
	assert.InDelta(t, 18.0, bill.Tax, 1e-9)
	assert.InDelta(t, 37.8, bill.DiscountAmount, 1e-9)
	assert.InDelta(t, 340.2, bill.Total, 1e-9)
}

func TestComputeUnapprovedClaimDoesNotDiscount(t *testing.T) {
	order := models.Order{
		Served:             []models.OrderItem{{ID: 101, Price: 180, Quantity: 2}},
		DiscountProofURL:   "https://instagram.com/p/abc",
		DiscountApplied:    false,
		DiscountPercentage: 10,
	}

	bill := Compute(order, DefaultTaxRate)

	assert.Zero(t, bill.DiscountAmount)
	assert.InDelta(t, 378.0, bill.Total, 1e-9)
}

func TestComputeSpansAllBuckets(t *testing.T) {
	order := models.Order{
		Pending:  []models.OrderItem{{ID: 1, Price: 100, Quantity: 1}},
		Accepted: []models.OrderItem{{ID: 2, Price: 100, Quantity: 1}},
		Ready:    []models.OrderItem{{ID: 3, Price: 100, Quantity: 1}},
		Served:   []models.OrderItem{{ID: 4, Price: 100, Quantity: 1}},
	}

	bill := Compute(order, DefaultTaxRate)

	assert.InDelta(t, 400.0, bill.Subtotal, 1e-9)
	assert.InDelta(t, 420.0, bill.Total, 1e-9)
}

func TestComputeEmptyOrder(t *testing.T) {
	bill := Compute(models.Order{}, DefaultTaxRate)
	assert.Zero(t, bill.Subtotal)
	assert.Zero(t, bill.Total)
}
