// Package store holds the authoritative in-session state: open orders, the menu
// catalog, and the table list. It is the sole mutator of order state; every
// lifecycle transition is one method here. Operations are total: calling them with
// a missing table or empty input degrades to a no-op rather than an error, so
// session state stays usable even when views race each other.
package store

import (
	"errors"
	"sync"
	"time"

	"tableside/internal/merge"
	"tableside/internal/models"
)

// Collection names the shared-medium keys the store persists under.
type Collection string

const (
	CollectionOrders Collection = "orders"
	CollectionMenu   Collection = "menu_items"
	CollectionTables Collection = "tables"
)

// Errors surfaced to staff sessions as validation messages. Everything else is a
// silent no-op per the degradation policy.
var (
	ErrTableOccupied = errors.New("table has an open order")
	ErrNoOrder       = errors.New("no open order for table")
)

// Listener observes local mutations. The synchronization layer registers one to
// write the changed collection back to the shared medium. Listeners run outside
// the store lock, after the mutation is applied, and only when state actually
// changed; wholesale replacements from other sessions never fire them.
type Listener func(Collection)

// Store is safe for concurrent use: local views mutate it while the notification
// consumer replaces collections from its own goroutine.
type Store struct {
	mu        sync.Mutex
	orders    []models.Order
	menu      []models.MenuItem
	tables    []models.Table
	listeners []Listener
	now       func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// OnChange registers a mutation listener.
func (s *Store) OnChange(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// mutate runs fn under the lock and fires listeners afterwards when fn reports a
// change. Listeners read snapshots, so they must not run with the lock held.
func (s *Store) mutate(c Collection, fn func() bool) {
	s.mu.Lock()
	changed := fn()
	listeners := s.listeners
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(c)
	}
}

func (s *Store) findOrder(tableID string) int {
	for i := range s.orders {
		if s.orders[i].TableID == tableID {
			return i
		}
	}
	return -1
}

// Submit appends a diner submission to the table's open order, creating the order
// if this is the table's first submission. Quantities for an item identity already
// pending are added together, never duplicated. Any submission that lands new
// pending items returns the order to the awaiting state: fresh items always need
// another acceptance pass, even when earlier ones were already accepted.
// Empty submissions and blank table ids are no-ops.
func (s *Store) Submit(tableID string, items []models.OrderItem) {
	if tableID == "" || models.ValidateItems(items) != nil {
		return
	}

	s.mutate(CollectionOrders, func() bool {
		idx := s.findOrder(tableID)
		if idx < 0 {
			s.orders = append(s.orders, models.Order{
				TableID:        tableID,
				Pending:        merge.Into(nil, items),
				State:          models.StateAwaiting,
				LastActivityAt: s.now(),
			})
			return true
		}
		o := &s.orders[idx]
		o.Pending = merge.Into(o.Pending, items)
		o.State = models.StateAwaiting
		o.LastActivityAt = s.now()
		return true
	})
}

// Accept moves everything pending into the accepted bucket and marks the order
// accepted. No-op when the table has no open order.
func (s *Store) Accept(tableID string) {
	s.mutate(CollectionOrders, func() bool {
		idx := s.findOrder(tableID)
		if idx < 0 {
			return false
		}
		o := &s.orders[idx]
		o.Accepted = merge.Into(o.Accepted, o.Pending)
		o.Pending = nil
		o.State = models.StateAccepted
		return true
	})
}

// Reject discards the pending bucket. If nothing was ever accepted or served the
// whole order is deleted; otherwise the already-accepted portion continues to
// completion and only the new pending items are dropped.
func (s *Store) Reject(tableID string) {
	s.mutate(CollectionOrders, func() bool {
		idx := s.findOrder(tableID)
		if idx < 0 {
			return false
		}
		o := &s.orders[idx]
		if len(o.Accepted) == 0 && len(o.Served) == 0 {
			s.orders = append(s.orders[:idx], s.orders[idx+1:]...)
			return true
		}
		o.Pending = nil
		o.State = models.StateAccepted
		return true
	})
}

// MarkItemReady moves the named item's full quantity from accepted to ready.
// No-op when the item is not currently accepted.
func (s *Store) MarkItemReady(tableID string, itemID int) {
	s.moveItem(tableID, itemID,
		func(o *models.Order) *[]models.OrderItem { return &o.Accepted },
		func(o *models.Order) *[]models.OrderItem { return &o.Ready },
	)
}

// ServeItem moves the named item's full quantity from ready to served.
// No-op when the item is not currently ready.
func (s *Store) ServeItem(tableID string, itemID int) {
	s.moveItem(tableID, itemID,
		func(o *models.Order) *[]models.OrderItem { return &o.Ready },
		func(o *models.Order) *[]models.OrderItem { return &o.Served },
	)
}

func (s *Store) moveItem(tableID string, itemID int, from, to func(*models.Order) *[]models.OrderItem) {
	s.mutate(CollectionOrders, func() bool {
		idx := s.findOrder(tableID)
		if idx < 0 {
			return false
		}
		o := &s.orders[idx]

		src := from(o)
		rest, taken, ok := merge.Take(*src, itemID)
		if !ok {
			return false
		}
		dst := to(o)
		*src = rest
		*dst = merge.Into(*dst, []models.OrderItem{taken})
		return true
	})
}

// CloseOrder deletes the table's order, representing payment completion.
// Idempotent: closing an already-closed table changes nothing.
func (s *Store) CloseOrder(tableID string) {
	s.mutate(CollectionOrders, func() bool {
		idx := s.findOrder(tableID)
		if idx < 0 {
			return false
		}
		s.orders = append(s.orders[:idx], s.orders[idx+1:]...)
		return true
	})
}

// SubmitDiscountProof attaches a diner's discount claim to the table's order. The
// URL is checked for well-formedness only; the claim stays non-binding until a
// staff session approves it.
func (s *Store) SubmitDiscountProof(tableID, proofURL string) error {
	if err := models.ValidateProofURL(proofURL); err != nil {
		return err
	}

	err := ErrNoOrder
	s.mutate(CollectionOrders, func() bool {
		idx := s.findOrder(tableID)
		if idx < 0 {
			return false
		}
		s.orders[idx].DiscountProofURL = proofURL
		err = nil
		return true
	})
	return err
}

// ApproveDiscount marks the table's discount claim approved at the given
// percentage. The percentage must be in (0, 100]; out-of-range values are returned
// to the staff session as a validation error.
func (s *Store) ApproveDiscount(tableID string, percentage float64) error {
	if err := models.ValidateDiscountPercentage(percentage); err != nil {
		return err
	}

	err := ErrNoOrder
	s.mutate(CollectionOrders, func() bool {
		idx := s.findOrder(tableID)
		if idx < 0 {
			return false
		}
		o := &s.orders[idx]
		o.DiscountApplied = true
		o.DiscountPercentage = percentage
		err = nil
		return true
	})
	return err
}
