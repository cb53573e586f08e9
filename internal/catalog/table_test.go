package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *Table {
	t.Helper()
	tbl := New()
	tbl.Seed(map[string]struct {
		Price    decimal.Decimal
		Quantity int
	}{
		"yo-yo":       {Price: decimal.NewFromFloat(4.99), Quantity: 2},
		"kazoo":       {Price: decimal.NewFromFloat(2.50), Quantity: 0},
		"rubber-duck": {Price: decimal.NewFromFloat(9.99), Quantity: 100},
	})
	return tbl
}

func TestQueryKnownProduct(t *testing.T) {
	tbl := seeded(t)
	price, qty, err := tbl.Query(context.Background(), "yo-yo")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromFloat(4.99)))
	assert.Equal(t, int32(2), qty)
}

func TestQueryUnknownProduct(t *testing.T) {
	tbl := seeded(t)
	price, qty, err := tbl.Query(context.Background(), "spinning-top")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), qty)
	assert.True(t, price.Equal(decimal.NewFromInt(-1)))
}

func TestOrderSuccess(t *testing.T) {
	tbl := seeded(t)
	result, err := tbl.Order(context.Background(), "rubber-duck", 10)
	require.NoError(t, err)
	assert.Equal(t, OrderSuccess, result)

	_, qty, err := tbl.Query(context.Background(), "rubber-duck")
	require.NoError(t, err)
	assert.Equal(t, int32(90), qty)
}

func TestOrderInsufficientStock(t *testing.T) {
	tbl := seeded(t)
	result, err := tbl.Order(context.Background(), "yo-yo", 5)
	require.NoError(t, err)
	assert.Equal(t, OrderInsufficientStock, result)
}

func TestOrderInvalidQuantity(t *testing.T) {
	tbl := seeded(t)
	result, err := tbl.Order(context.Background(), "yo-yo", 0)
	require.NoError(t, err)
	assert.Equal(t, OrderInvalidQuantity, result)

	result, err = tbl.Order(context.Background(), "yo-yo", -3)
	require.NoError(t, err)
	assert.Equal(t, OrderInvalidQuantity, result)
}

func TestOrderUnknownProduct(t *testing.T) {
	tbl := seeded(t)
	result, err := tbl.Order(context.Background(), "spinning-top", 1)
	require.NoError(t, err)
	assert.Equal(t, OrderUnknownProduct, result)
}

func TestDepletedAndRestock(t *testing.T) {
	tbl := seeded(t)
	names, err := tbl.depleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"kazoo"}, names)

	ok, err := tbl.restock(context.Background(), "kazoo")
	require.NoError(t, err)
	assert.True(t, ok)

	_, qty, err := tbl.Query(context.Background(), "kazoo")
	require.NoError(t, err)
	assert.Equal(t, int32(restockQuantity), qty)

	names, err = tbl.depleted(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDirtyFlagClearsOnlyAfterTake(t *testing.T) {
	tbl := seeded(t)
	assert.False(t, tbl.takeDirty())

	_, err := tbl.Order(context.Background(), "rubber-duck", 1)
	require.NoError(t, err)

	assert.True(t, tbl.takeDirty())
	assert.False(t, tbl.takeDirty())
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	tbl := seeded(t)
	snap, err := tbl.snapshot(context.Background())
	require.NoError(t, err)
	require.Contains(t, snap, "yo-yo")

	_, err = tbl.Order(context.Background(), "yo-yo", 1)
	require.NoError(t, err)

	assert.Equal(t, 2, snap["yo-yo"].quantity)
}
