// Package merge combines order-line collections by menu-item identity. It is the
// single place quantity arithmetic happens: every stage transition is expressed as
// Take from one bucket plus Into another. All functions return fresh slices and
// never mutate their inputs, so buckets can be reconciled safely while external
// updates replace collections underneath the caller.
package merge

import "tableside/internal/models"

// Into merges incoming lines into bucket: a line whose ID already exists in the
// bucket adds its quantity to the existing line, otherwise it is appended. The
// result is a new slice; bucket and incoming are left untouched.
func Into(bucket, incoming []models.OrderItem) []models.OrderItem {
	out := Clone(bucket)
	for _, in := range incoming {
		merged := false
		for i := range out {
			if out[i].ID == in.ID {
				out[i].Quantity += in.Quantity
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, in)
		}
	}
	return out
}

// Take removes the line with the given ID from bucket, returning the remaining
// bucket, the removed line with its full quantity, and whether it was present.
func Take(bucket []models.OrderItem, itemID int) ([]models.OrderItem, models.OrderItem, bool) {
	for i, item := range bucket {
		if item.ID == itemID {
			rest := make([]models.OrderItem, 0, len(bucket)-1)
			rest = append(rest, bucket[:i]...)
			rest = append(rest, bucket[i+1:]...)
			return rest, item, true
		}
	}
	return Clone(bucket), models.OrderItem{}, false
}

// Clone returns a copy of items. A nil input stays nil.
func Clone(items []models.OrderItem) []models.OrderItem {
	if items == nil {
		return nil
	}
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	return out
}

// Quantity sums the quantities of every line in the given buckets.
func Quantity(buckets ...[]models.OrderItem) int {
	total := 0
	for _, bucket := range buckets {
		for _, item := range bucket {
			total += item.Quantity
		}
	}
	return total
}

// QuantityOf sums the quantity of one item identity across the given buckets.
func QuantityOf(itemID int, buckets ...[]models.OrderItem) int {
	total := 0
	for _, bucket := range buckets {
		for _, item := range bucket {
			if item.ID == itemID {
				total += item.Quantity
			}
		}
	}
	return total
}

// Price sums price times quantity over every line in the given buckets.
func Price(buckets ...[]models.OrderItem) float64 {
	total := 0.0
	for _, bucket := range buckets {
		for _, item := range bucket {
			total += item.Price * float64(item.Quantity)
		}
	}
	return total
}
