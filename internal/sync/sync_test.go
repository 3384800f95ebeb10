package sync

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/logger"
	"tableside/internal/models"
	"tableside/internal/store"
)

type fakeMedium struct {
	data    map[string][]byte
	loadErr error
}

func newFakeMedium() *fakeMedium {
	return &fakeMedium{data: make(map[string][]byte)}
}

func (m *fakeMedium) Load(_ context.Context, key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data[key], nil
}

func (m *fakeMedium) Save(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

type fakeNotifier struct {
	published []Event
	incoming  chan Event
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{incoming: make(chan Event, 16)}
}

func (n *fakeNotifier) Publish(_ context.Context, ev Event) error {
	n.published = append(n.published, ev)
	return nil
}

func (n *fakeNotifier) Subscribe(ctx context.Context, handler func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-n.incoming:
			handler(ev)
		}
	}
}

func newSession(t *testing.T) (*Session, *store.Store, *fakeMedium, *fakeNotifier) {
	t.Helper()
	st := store.New()
	medium := newFakeMedium()
	notifier := newFakeNotifier()
	session := NewSession(st, medium, notifier, logger.New("test"))
	return session, st, medium, notifier
}

func ordersJSON(t *testing.T, orders []models.Order) []byte {
	t.Helper()
	raw, err := json.Marshal(orders)
	require.NoError(t, err)
	return raw
}

func TestLoadReadsAllCollections(t *testing.T) {
	session, st, medium, _ := newSession(t)
	medium.data["orders"] = ordersJSON(t, []models.Order{{TableID: "5", State: models.StateAwaiting}})
	medium.data["menu_items"] = []byte(`[{"id":101,"name":"Fries","price":90,"is_available":true}]`)
	medium.data["tables"] = []byte(`[{"id":"1"},{"id":"2"}]`)

	require.NoError(t, session.Load(context.Background()))

	assert.Equal(t, StateLoaded, session.State())
	orders := st.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "5", orders[0].TableID)
	assert.Len(t, st.Menu(), 1)
	assert.Len(t, st.Tables(), 2)
}

func TestLoadTreatsAbsentKeysAsEmpty(t *testing.T) {
	session, st, _, _ := newSession(t)

	require.NoError(t, session.Load(context.Background()))

	assert.Empty(t, st.Orders())
	assert.Empty(t, st.Menu())
	assert.Empty(t, st.Tables())
}

func TestLoadKeepsLocalCopyOnMalformedValue(t *testing.T) {
	session, st, medium, _ := newSession(t)
	medium.data["orders"] = []byte(`{not json`)
	medium.data["tables"] = []byte(`[{"id":"1"}]`)

	require.NoError(t, session.Load(context.Background()), "malformed data is never propagated")

	assert.Empty(t, st.Orders())
	assert.Len(t, st.Tables(), 1)
}

func TestLoadFailsWhenMediumUnreachable(t *testing.T) {
	session, _, medium, _ := newSession(t)
	medium.loadErr = errors.New("connection refused")

	assert.Error(t, session.Load(context.Background()))
	assert.Equal(t, StateInitial, session.State())
}

func TestLocalMutationWritesBackAndAnnounces(t *testing.T) {
	session, st, medium, notifier := newSession(t)
	require.NoError(t, session.Load(context.Background()))

	st.Submit("5", []models.OrderItem{{ID: 101, Name: "Fries", Price: 90, Quantity: 2}})

	raw, ok := medium.data["orders"]
	require.True(t, ok, "full collection written to the medium")
	var persisted []models.Order
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, 2, persisted[0].Pending[0].Quantity)

	require.Len(t, notifier.published, 1)
	assert.Equal(t, session.ID(), notifier.published[0].Origin)
	assert.Equal(t, "orders", notifier.published[0].Key)
	assert.JSONEq(t, string(raw), string(notifier.published[0].Value))
}

func TestGoLiveRequiresLoad(t *testing.T) {
	session, _, _, _ := newSession(t)
	assert.Error(t, session.GoLive(context.Background()))
}

func goLive(t *testing.T, session *Session) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- session.GoLive(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Error("GoLive did not stop on context cancellation")
		}
	})
	return cancel
}

func TestExternalEventReplacesCollectionWholesale(t *testing.T) {
	session, st, _, notifier := newSession(t)
	require.NoError(t, session.Load(context.Background()))
	st.Submit("5", []models.OrderItem{{ID: 101, Name: "Fries", Price: 90, Quantity: 2}})

	goLive(t, session)

	// Another session closed table 5's order and opened one for table 7: its
	// write wins in full, the local copy is not merged.
	notifier.incoming <- Event{
		Origin: "other-session",
		Key:    "orders",
		Value:  ordersJSON(t, []models.Order{{TableID: "7", State: models.StateAwaiting}}),
	}

	require.Eventually(t, func() bool {
		orders := st.Orders()
		return len(orders) == 1 && orders[0].TableID == "7"
	}, time.Second, 5*time.Millisecond)
}

func TestOwnEchoIsSkipped(t *testing.T) {
	session, st, _, notifier := newSession(t)
	require.NoError(t, session.Load(context.Background()))
	st.Submit("5", []models.OrderItem{{ID: 101, Name: "Fries", Price: 90, Quantity: 2}})

	var observed atomic.Int32
	session.Observe(func(Event) { observed.Add(1) })
	goLive(t, session)

	notifier.incoming <- Event{Origin: session.ID(), Key: "orders", Value: []byte(`[]`)}
	notifier.incoming <- Event{Origin: "other", Key: "tables", Value: []byte(`[{"id":"1"}]`)}

	require.Eventually(t, func() bool { return observed.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Len(t, st.Tables(), 1)
	assert.Len(t, st.Orders(), 1, "own echo must not clear local orders")
}

func TestMalformedExternalPayloadKeepsLocalCopy(t *testing.T) {
	session, st, _, notifier := newSession(t)
	require.NoError(t, session.Load(context.Background()))
	st.Submit("5", []models.OrderItem{{ID: 101, Name: "Fries", Price: 90, Quantity: 2}})

	goLive(t, session)

	notifier.incoming <- Event{Origin: "other", Key: "orders", Value: []byte(`{broken`)}
	notifier.incoming <- Event{Origin: "other", Key: "tables", Value: []byte(`[{"id":"1"}]`)}

	require.Eventually(t, func() bool { return len(st.Tables()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Len(t, st.Orders(), 1, "collection treated as unchanged")
}

func TestUnknownCollectionKeyIgnored(t *testing.T) {
	session, st, _, notifier := newSession(t)
	require.NoError(t, session.Load(context.Background()))

	goLive(t, session)

	notifier.incoming <- Event{Origin: "other", Key: "mystery", Value: []byte(`[]`)}
	notifier.incoming <- Event{Origin: "other", Key: "tables", Value: []byte(`[{"id":"1"}]`)}

	require.Eventually(t, func() bool { return len(st.Tables()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, st.Orders())
}
