package cart

import (
	"tableside/internal/geo"
	"tableside/internal/models"
	"tableside/internal/store"
)

// Locator yields the diner's current position, or nil when geolocation is
// unavailable or denied. The caller is responsible for bounding how long a
// position fix may take.
type Locator func() *geo.Point

// Session is one diner's ordering context: a table, a draft cart, and the gate
// deciding whether submissions are allowed.
type Session struct {
	store      *store.Store
	cart       Cart
	tableID    string
	restaurant *geo.Point
	threshold  float64
	locate     Locator
}

// NewSession creates a diner session. restaurant may be nil, which disables
// ordering entirely.
func NewSession(s *store.Store, restaurant *geo.Point, thresholdMeters float64, locate Locator) *Session {
	if thresholdMeters <= 0 {
		thresholdMeters = geo.DefaultThresholdMeters
	}
	return &Session{
		store:      s,
		restaurant: restaurant,
		threshold:  thresholdMeters,
		locate:     locate,
	}
}

// SetTable binds the session to a physical table.
func (s *Session) SetTable(tableID string) {
	s.tableID = tableID
}

// TableID returns the bound table, empty when unset.
func (s *Session) TableID() string {
	return s.tableID
}

// Cart exposes the session's draft selection.
func (s *Session) Cart() *Cart {
	return &s.cart
}

// CanOrder reports whether this session passes the eligibility gate right now.
// False when the restaurant location is unconfigured or the diner's position
// cannot be obtained. Advisory only; see the geo package.
func (s *Session) CanOrder() bool {
	if s.restaurant == nil || s.locate == nil {
		return false
	}
	return geo.IsEligible(s.locate(), s.restaurant, s.threshold)
}

// PlaceOrder submits the draft to the table's order and clears the draft.
// It reports whether a submission happened: nothing is submitted without a bound
// table, with an empty draft, or when the session fails the eligibility gate.
func (s *Session) PlaceOrder() bool {
	if s.tableID == "" || s.cart.TotalItems() == 0 || !s.CanOrder() {
		return false
	}
	s.store.Submit(s.tableID, s.cart.Items())
	s.cart.Clear()
	return true
}

// ClaimDiscount attaches a discount proof URL to the table's order.
func (s *Session) ClaimDiscount(proofURL string) error {
	return s.store.SubmitDiscountProof(s.tableID, proofURL)
}

// ItemQuantity returns the aggregate quantity for one item across the draft and
// all four stage buckets of the table's order, counting each unit exactly once.
func (s *Session) ItemQuantity(itemID int) int {
	total := s.cart.QuantityOf(itemID)
	if s.tableID != "" {
		total += s.store.OrderedQuantity(s.tableID, itemID)
	}
	return total
}

// Menu returns the catalog entries diners may currently order.
func (s *Session) Menu() []models.MenuItem {
	menu := s.store.Menu()
	available := make([]models.MenuItem, 0, len(menu))
	for _, m := range menu {
		if m.Available {
			available = append(available, m)
		}
	}
	return available
}
