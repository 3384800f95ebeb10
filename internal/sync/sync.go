// Package sync keeps a session's store consistent with the shared persisted
// medium and with every other open session. The model is deliberately simple:
// after each local mutation the full changed collection is serialized and written
// to the medium, then announced to other sessions; on an external announcement the
// named collection is replaced wholesale. The last writer to the medium wins for a
// given key — two sessions mutating the same order concurrently can silently lose
// one session's transition. There is no field-level merge of external changes.
package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tableside/internal/logger"
	"tableside/internal/models"
	"tableside/internal/store"
)

// State is the session lifecycle: Initial until the first read of the medium
// completes, Loaded once local state mirrors it, Live once subscribed to external
// change notifications.
type State string

const (
	StateInitial State = "initial"
	StateLoaded  State = "loaded"
	StateLive    State = "live"
)

// Event announces that a collection key changed, carrying its complete new value.
// There are no partial or delta updates. Origin identifies the publishing session
// so it can ignore its own echo.
type Event struct {
	Origin string          `json:"origin"`
	Key    string          `json:"key"`
	Value  json.RawMessage `json:"value"`
}

// Medium is the persisted shared key/value store. Load returns nil bytes for an
// absent key.
type Medium interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Notifier fans change events out to every open session. Subscribe blocks until
// ctx is done, invoking handler for each received event.
type Notifier interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(ctx context.Context, handler func(Event)) error
}

// Session synchronizes one client's store with the shared medium.
type Session struct {
	id       string
	store    *store.Store
	medium   Medium
	notifier Notifier
	log      *logger.Logger
	state    State
	observer func(Event)
}

// NewSession wires a store to the shared medium and notifier. The session gets a
// unique origin id used to skip its own notifications.
func NewSession(st *store.Store, medium Medium, notifier Notifier, log *logger.Logger) *Session {
	return &Session{
		id:       uuid.NewString(),
		store:    st,
		medium:   medium,
		notifier: notifier,
		log:      log,
		state:    StateInitial,
	}
}

// ID returns the session's origin id.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Observe registers a callback invoked for every externally-originated event the
// session applies. Set before GoLive.
func (s *Session) Observe(fn func(Event)) {
	s.observer = fn
}

// Load performs the initial read of every collection from the shared medium and
// registers the write-back listener. A malformed persisted value is logged and
// leaves that collection unchanged; an absent key is simply empty. Only a medium
// read failure is returned, since without the initial read the session would
// start from a state no other session shares.
func (s *Session) Load(ctx context.Context) error {
	for _, key := range []store.Collection{store.CollectionOrders, store.CollectionMenu, store.CollectionTables} {
		raw, err := s.medium.Load(ctx, string(key))
		if err != nil {
			return fmt.Errorf("failed to load collection %s: %w", key, err)
		}
		if raw == nil {
			continue
		}
		s.replace(key, raw)
	}

	s.store.OnChange(func(c store.Collection) {
		s.flush(ctx, c)
	})
	s.state = StateLoaded

	s.log.Info("state_loaded", "Initial state loaded from shared medium", map[string]any{
		"session_id": s.id,
	})
	return nil
}

// GoLive subscribes to external change notifications and blocks until ctx is
// done. Must be called after Load.
func (s *Session) GoLive(ctx context.Context) error {
	if s.state != StateLoaded {
		return fmt.Errorf("session must be loaded before going live, state is %s", s.state)
	}
	s.state = StateLive
	s.log.Info("state_live", "Subscribed to external change notifications", map[string]any{
		"session_id": s.id,
	})
	return s.notifier.Subscribe(ctx, s.apply)
}

// flush serializes the named collection and writes it back to the medium, then
// announces the new value. Failures are logged and swallowed: the local session
// must stay usable even when the shared medium is unreachable.
func (s *Session) flush(ctx context.Context, c store.Collection) {
	raw, err := json.Marshal(s.snapshot(c))
	if err != nil {
		s.log.Error("flush_failed", "Failed to serialize collection", err, map[string]any{"key": c})
		return
	}

	if err := s.medium.Save(ctx, string(c), raw); err != nil {
		s.log.Error("flush_failed", "Failed to persist collection to shared medium", err, map[string]any{"key": c})
		return
	}

	ev := Event{Origin: s.id, Key: string(c), Value: raw}
	if err := s.notifier.Publish(ctx, ev); err != nil {
		s.log.Error("publish_failed", "Failed to announce collection change", err, map[string]any{"key": c})
		return
	}

	s.log.Debug("collection_flushed", "Collection persisted and announced", map[string]any{
		"key":  c,
		"size": len(raw),
	})
}

func (s *Session) snapshot(c store.Collection) any {
	switch c {
	case store.CollectionOrders:
		return s.store.Orders()
	case store.CollectionMenu:
		return s.store.Menu()
	case store.CollectionTables:
		return s.store.Tables()
	}
	return nil
}

// apply reacts to an externally-originated event by replacing the named local
// collection with the event's full value. Events published by this session are
// skipped.
func (s *Session) apply(ev Event) {
	if ev.Origin == s.id {
		return
	}
	s.replace(store.Collection(ev.Key), ev.Value)
	if s.observer != nil {
		s.observer(ev)
	}
}

// replace deserializes raw into the named collection, replacing the local copy
// wholesale. A payload that fails to deserialize is logged and the collection is
// treated as unchanged.
func (s *Session) replace(c store.Collection, raw []byte) {
	switch c {
	case store.CollectionOrders:
		var orders []models.Order
		if err := json.Unmarshal(raw, &orders); err != nil {
			s.logMalformed(c, err)
			return
		}
		s.store.ReplaceOrders(orders)
	case store.CollectionMenu:
		var menu []models.MenuItem
		if err := json.Unmarshal(raw, &menu); err != nil {
			s.logMalformed(c, err)
			return
		}
		s.store.ReplaceMenu(menu)
	case store.CollectionTables:
		var tables []models.Table
		if err := json.Unmarshal(raw, &tables); err != nil {
			s.logMalformed(c, err)
			return
		}
		s.store.ReplaceTables(tables)
	default:
		s.log.Debug("unknown_collection", "Ignoring change for unknown collection key", map[string]any{"key": c})
	}
}

func (s *Session) logMalformed(c store.Collection, err error) {
	s.log.Error("malformed_collection", "Failed to deserialize collection, keeping local copy", err, map[string]any{
		"key": c,
	})
}
