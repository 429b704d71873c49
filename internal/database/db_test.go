package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/events"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndQueryServedOrders(t *testing.T) {
	store := openTestStore(t)

	now := time.Now()
	require.NoError(t, store.RecordServedOrder(ServedOrderRecord{
		OrderID: "o1", CustomerID: "c1", DishID: "dish_soup",
		QualityScore: 90, Tip: 14, Total: 34, ServedAt: now,
	}))
	require.NoError(t, store.RecordServedOrder(ServedOrderRecord{
		OrderID: "o2", CustomerID: "c2", DishID: "dish_soup",
		QualityScore: 70, Tip: 10, Total: 30, ServedAt: now.Add(2 * time.Hour),
	}))

	window, err := store.OrdersForSessionWindow(now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "o1", window[0].OrderID)
}

func TestRecentSessionsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i, reason := range []string{"bankrupt", "too_many_customers_lost", "bankrupt"} {
		require.NoError(t, store.RecordSession(SessionRecord{
			Reason:  reason,
			Score:   float64(i),
			EndedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	sessions, err := store.RecentSessions(2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 2.0, sessions[0].Score)
	assert.Equal(t, 1.0, sessions[1].Score)
}

func TestNilStoreIsNoOp(t *testing.T) {
	var store *Store

	assert.NoError(t, store.RecordServedOrder(ServedOrderRecord{OrderID: "o1"}))
	assert.NoError(t, store.RecordSession(SessionRecord{Reason: "bankrupt"}))
	assert.NoError(t, store.Close())

	sessions, err := store.RecentSessions(5)
	assert.NoError(t, err)
	assert.Nil(t, sessions)
}

func TestRecorderArchivesFromPayloads(t *testing.T) {
	store := openTestStore(t)
	bus := events.NewBus()
	recorder := NewRecorder(store, bus)
	defer recorder.Detach()

	bus.Publish(events.PaymentProcessed, map[string]interface{}{
		"orderId": "o1", "customerId": "c1", "dishId": "dish_soup",
		"quality": 90.0, "tip": 14.0, "total": 34.0,
	})
	bus.Publish(events.GameOver, map[string]interface{}{
		"reason": "bankrupt", "score": -5.0, "timeElapsed": 320.0,
		"difficulty": 1.5, "ordersCompleted": 4.0,
		"customersServed": 4.0, "customersLost": 11.0,
	})

	orders, err := store.OrdersForSessionWindow(time.Now().Add(-time.Minute), time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].OrderID)
	assert.Equal(t, 34.0, orders[0].Total)

	sessions, err := store.RecentSessions(1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "bankrupt", sessions[0].Reason)
	assert.Equal(t, 11.0, sessions[0].CustomersLost)
}

func TestRecorderDetachStopsArchiving(t *testing.T) {
	store := openTestStore(t)
	bus := events.NewBus()
	recorder := NewRecorder(store, bus)

	recorder.Detach()
	bus.Publish(events.PaymentProcessed, map[string]interface{}{"orderId": "o1"})

	orders, err := store.OrdersForSessionWindow(time.Now().Add(-time.Minute), time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, orders)
}
