// internal/domain/cart/store_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price int64) Product {
	return Product{
		ProductID: id,
		Name:      "Product " + id,
		UnitPrice: price,
	}
}

func TestAddItemNewLine(t *testing.T) {
	store := NewStore("session_1_abc")

	store.AddItem(testProduct("p1", 1500), 2)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "p1", snapshot.Lines[0].ProductID)
	assert.Equal(t, 2, snapshot.Lines[0].Quantity)
	assert.Equal(t, int64(3000), snapshot.Total)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	store := NewStore("session_1_abc")

	store.AddItem(testProduct("p1", 1500), 1)
	store.AddItem(testProduct("p1", 1500), 2)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 3, snapshot.Lines[0].Quantity)
	assert.Equal(t, int64(4500), snapshot.Total)
}

func TestAddItemClampsNonPositiveQuantity(t *testing.T) {
	store := NewStore("session_1_abc")

	store.AddItem(testProduct("p1", 1000), 0)
	store.AddItem(testProduct("p2", 1000), -5)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Lines, 2)
	assert.Equal(t, 1, snapshot.Lines[0].Quantity)
	assert.Equal(t, 1, snapshot.Lines[1].Quantity)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	store := NewStore("session_1_abc")

	store.AddItem(testProduct("p1", 100), 1)
	store.AddItem(testProduct("p2", 200), 1)
	store.AddItem(testProduct("p3", 300), 1)
	store.AddItem(testProduct("p2", 200), 1)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Lines, 3)
	assert.Equal(t, "p1", snapshot.Lines[0].ProductID)
	assert.Equal(t, "p2", snapshot.Lines[1].ProductID)
	assert.Equal(t, "p3", snapshot.Lines[2].ProductID)
}

func TestRemoveItem(t *testing.T) {
	store := NewStore("session_1_abc")
	store.AddItem(testProduct("p1", 1500), 3)

	store.RemoveItem("p1")

	snapshot := store.Snapshot()
	assert.True(t, snapshot.IsEmpty())
	assert.Equal(t, int64(0), snapshot.Total)
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	store := NewStore("session_1_abc")
	store.AddItem(testProduct("p1", 1500), 1)

	before := store.Snapshot()
	store.RemoveItem("missing")

	assert.Equal(t, before, store.Snapshot())
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore("session_1_abc")
	store.AddItem(testProduct("p1", 1500), 3)

	store.UpdateQuantity("p1", 1)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 1, snapshot.Lines[0].Quantity)
	assert.Equal(t, int64(1500), snapshot.Total)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := NewStore("session_1_abc")
	store.AddItem(testProduct("p1", 1500), 3)
	store.AddItem(testProduct("p2", 500), 1)

	store.UpdateQuantity("p1", 0)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "p2", snapshot.Lines[0].ProductID)
}

func TestUpdateQuantityMatchesRemoveItem(t *testing.T) {
	a := NewStore("session_1_abc")
	b := NewStore("session_1_abc")
	for _, s := range []*Store{a, b} {
		s.AddItem(testProduct("p1", 1500), 3)
		s.AddItem(testProduct("p2", 500), 2)
	}

	a.UpdateQuantity("p1", 0)
	b.RemoveItem("p1")

	assert.Equal(t, b.Snapshot(), a.Snapshot())
}

func TestUpdateQuantityAbsentIsNoOp(t *testing.T) {
	store := NewStore("session_1_abc")
	store.AddItem(testProduct("p1", 1500), 1)

	before := store.Snapshot()
	store.UpdateQuantity("missing", 5)

	assert.Equal(t, before, store.Snapshot())
}

func TestClearPreservesSessionID(t *testing.T) {
	store := NewStore("session_42_xyz")
	store.AddItem(testProduct("p1", 1500), 3)

	store.Clear()

	snapshot := store.Snapshot()
	assert.True(t, snapshot.IsEmpty())
	assert.Equal(t, int64(0), snapshot.Total)
	assert.Equal(t, "session_42_xyz", snapshot.SessionID)
}

// Walks a full shopping session and checks the total after every step.
func TestTotalTracksEveryMutation(t *testing.T) {
	store := NewStore("session_1_abc")

	store.AddItem(testProduct("p1", 1500), 3)
	assert.Equal(t, int64(4500), store.Snapshot().Total)

	store.UpdateQuantity("p1", 1)
	assert.Equal(t, int64(1500), store.Snapshot().Total)

	store.RemoveItem("p1")
	assert.Equal(t, int64(0), store.Snapshot().Total)
}

func TestRestoreReestablishesInvariants(t *testing.T) {
	store := NewStore("session_1_abc")

	store.Restore([]Line{
		{ProductID: "p1", UnitPrice: 100, Quantity: 2},
		{ProductID: "p2", UnitPrice: 200, Quantity: 0},
		{ProductID: "p1", UnitPrice: 100, Quantity: 3},
	})

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 5, snapshot.Lines[0].Quantity)
	assert.Equal(t, int64(500), snapshot.Total)
}

func TestSnapshotIsImmutable(t *testing.T) {
	store := NewStore("session_1_abc")
	store.AddItem(testProduct("p1", 1500), 2)

	snapshot := store.Snapshot()
	snapshot.Lines[0].Quantity = 99
	snapshot.Lines[0].ProductID = "tampered"

	fresh := store.Snapshot()
	assert.Equal(t, "p1", fresh.Lines[0].ProductID)
	assert.Equal(t, 2, fresh.Lines[0].Quantity)
}

func TestSubscriberReceivesEveryMutationInOrder(t *testing.T) {
	store := NewStore("session_1_abc")

	var totals []int64
	store.Subscribe(func(c Cart) {
		totals = append(totals, c.Total)
	})

	store.AddItem(testProduct("p1", 1500), 3)
	store.UpdateQuantity("p1", 1)
	store.Clear()

	assert.Equal(t, []int64{4500, 1500, 0}, totals)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	store := NewStore("session_1_abc")

	calls := 0
	unsubscribe := store.Subscribe(func(Cart) { calls++ })

	store.AddItem(testProduct("p1", 100), 1)
	unsubscribe()
	store.AddItem(testProduct("p2", 100), 1)

	assert.Equal(t, 1, calls)
}

func TestLineSubtotal(t *testing.T) {
	line := Line{UnitPrice: 1500, Quantity: 3}
	assert.Equal(t, int64(4500), line.Subtotal())
}

func TestCartCounts(t *testing.T) {
	store := NewStore("session_1_abc")
	store.AddItem(testProduct("p1", 100), 2)
	store.AddItem(testProduct("p2", 100), 3)

	snapshot := store.Snapshot()
	assert.Equal(t, 2, snapshot.LineCount())
	assert.Equal(t, 5, snapshot.TotalQuantity())
}
