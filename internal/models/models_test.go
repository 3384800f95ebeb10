package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []OrderItem
		wantErr bool
	}{
		{
			name:  "valid",
			items: []OrderItem{{ID: 101, Name: "Fries", Price: 90, Quantity: 1}},
		},
		{
			name:    "empty",
			items:   nil,
			wantErr: true,
		},
		{
			name:    "zero quantity",
			items:   []OrderItem{{ID: 101, Name: "Fries", Price: 90, Quantity: 0}},
			wantErr: true,
		},
		{
			name:    "negative price",
			items:   []OrderItem{{ID: 101, Name: "Fries", Price: -1, Quantity: 1}},
			wantErr: true,
		},
		{
			name:  "free item is fine",
			items: []OrderItem{{ID: 708, Name: "Water", Price: 0, Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItems(tt.items)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDiscountPercentage(t *testing.T) {
	assert.Error(t, ValidateDiscountPercentage(0))
	assert.Error(t, ValidateDiscountPercentage(-10))
	assert.Error(t, ValidateDiscountPercentage(100.01))
	assert.NoError(t, ValidateDiscountPercentage(0.5))
	assert.NoError(t, ValidateDiscountPercentage(100))
}

func TestValidateProofURL(t *testing.T) {
	assert.NoError(t, ValidateProofURL("https://instagram.com/p/abc123"))
	assert.Error(t, ValidateProofURL(""))
	assert.Error(t, ValidateProofURL("not a url at all"))
	assert.Error(t, ValidateProofURL("/relative/only"))
	assert.Error(t, ValidateProofURL("https://"))
}

func TestOrderClone(t *testing.T) {
	o := Order{
		TableID: "5",
		Pending: []OrderItem{{ID: 101, Name: "Fries", Price: 90, Quantity: 2}},
		Served:  []OrderItem{{ID: 901, Name: "Coffee", Price: 25, Quantity: 1}},
	}

	c := o.Clone()
	c.Pending[0].Quantity = 99
	c.Served[0].Price = 0

	assert.Equal(t, 2, o.Pending[0].Quantity)
	assert.Equal(t, 25.0, o.Served[0].Price)
}

func TestMenuItemLineSnapshotsPrice(t *testing.T) {
	m := MenuItem{ID: 101, Name: "Fries", Price: 90, Available: true}

	l := m.Line(3)

	require.Equal(t, OrderItem{ID: 101, Name: "Fries", Price: 90, Quantity: 3}, l)
}

func TestDefaultSeeds(t *testing.T) {
	menu := DefaultMenu()
	assert.NotEmpty(t, menu)
	for _, m := range menu {
		assert.True(t, m.Available)
		assert.GreaterOrEqual(t, m.Price, 0.0)
	}

	tables := DefaultTables()
	require.Len(t, tables, 15)
	assert.Equal(t, "1", tables[0].ID)
	assert.Equal(t, "15", tables[14].ID)
}
