package store

import (
	"strconv"

	"tableside/internal/models"
)

// Catalog and table administration. These are plain mutations on the shared
// collections with no merge semantics; they exist so admin sessions re-persist
// through the same change fan-out as order transitions.

// AddMenuItem inserts a new catalog entry, allocating the next free id.
// The entry starts available.
func (s *Store) AddMenuItem(item models.MenuItem) models.MenuItem {
	s.mutate(CollectionMenu, func() bool {
		maxID := 0
		for _, m := range s.menu {
			if m.ID > maxID {
				maxID = m.ID
			}
		}
		item.ID = maxID + 1
		item.Available = true
		s.menu = append(s.menu, item)
		return true
	})
	return item
}

// UpdateMenuItem replaces the catalog entry with the same id. No-op for unknown ids.
func (s *Store) UpdateMenuItem(item models.MenuItem) {
	s.mutate(CollectionMenu, func() bool {
		for i := range s.menu {
			if s.menu[i].ID == item.ID {
				s.menu[i] = item
				return true
			}
		}
		return false
	})
}

// RemoveMenuItem deletes a catalog entry. Already-submitted order lines keep their
// price snapshots and are unaffected.
func (s *Store) RemoveMenuItem(itemID int) {
	s.mutate(CollectionMenu, func() bool {
		for i := range s.menu {
			if s.menu[i].ID == itemID {
				s.menu = append(s.menu[:i], s.menu[i+1:]...)
				return true
			}
		}
		return false
	})
}

// SetItemAvailability flips whether diners can add the item to a draft.
func (s *Store) SetItemAvailability(itemID int, available bool) {
	s.mutate(CollectionMenu, func() bool {
		for i := range s.menu {
			if s.menu[i].ID == itemID && s.menu[i].Available != available {
				s.menu[i].Available = available
				return true
			}
		}
		return false
	})
}

// AddTable appends a table with the next numeric id.
func (s *Store) AddTable() models.Table {
	var table models.Table
	s.mutate(CollectionTables, func() bool {
		maxID := 0
		for _, t := range s.tables {
			if n, err := strconv.Atoi(t.ID); err == nil && n > maxID {
				maxID = n
			}
		}
		table = models.Table{ID: strconv.Itoa(maxID + 1)}
		s.tables = append(s.tables, table)
		return true
	})
	return table
}

// RemoveTable deletes a table. A table with an open order cannot be removed; the
// order must be closed or rejected first.
func (s *Store) RemoveTable(tableID string) error {
	var err error
	s.mutate(CollectionTables, func() bool {
		if s.findOrder(tableID) >= 0 {
			err = ErrTableOccupied
			return false
		}
		for i := range s.tables {
			if s.tables[i].ID == tableID {
				s.tables = append(s.tables[:i], s.tables[i+1:]...)
				return true
			}
		}
		return false
	})
	return err
}
