package store

import (
	"tableside/internal/merge"
	"tableside/internal/models"
)

// Read side. Snapshots are deep copies so callers can render or serialize them
// while other goroutines keep mutating the store.

// Orders returns a snapshot of all open orders.
func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrders(s.orders)
}

// Order returns a snapshot of the open order for one table.
func (s *Store) Order(tableID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findOrder(tableID)
	if idx < 0 {
		return models.Order{}, false
	}
	return s.orders[idx].Clone(), true
}

// Menu returns a snapshot of the catalog.
func (s *Store) Menu() []models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MenuItem, len(s.menu))
	copy(out, s.menu)
	return out
}

// Tables returns a snapshot of the table list.
func (s *Store) Tables() []models.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Table, len(s.tables))
	copy(out, s.tables)
	return out
}

// OrderedQuantity sums the quantity of one item identity across all four stage
// buckets of the table's order. Zero when the table has no open order.
func (s *Store) OrderedQuantity(tableID string, itemID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findOrder(tableID)
	if idx < 0 {
		return 0
	}
	o := &s.orders[idx]
	return merge.QuantityOf(itemID, o.Pending, o.Accepted, o.Ready, o.Served)
}

// Replace setters install an externally-originated copy of a collection wholesale.
// The last writer to the shared medium wins in full; there is no field-level merge.
// These intentionally do not fire change listeners.

func (s *Store) ReplaceOrders(orders []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = cloneOrders(orders)
}

func (s *Store) ReplaceMenu(menu []models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = make([]models.MenuItem, len(menu))
	copy(s.menu, menu)
}

func (s *Store) ReplaceTables(tables []models.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make([]models.Table, len(tables))
	copy(s.tables, tables)
}

func cloneOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
