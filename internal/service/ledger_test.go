package service

import (
	"context"
	"testing"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStockNeverGoesNegative(t *testing.T) {
	store := newFakeTransferStore()
	svc := NewTransferService(store, store)
	ctx := context.Background()

	store.seed(1, 100, 10)

	// an arbitrary mixed sequence of signed deltas
	for _, delta := range []int{-4, -20, 3, -1, 15, -50} {
		err := svc.AdjustStock(ctx, []domain.LedgerDelta{{BranchID: 1, ProductID: 100, Delta: delta}})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, store.stock(1, 100), 0)
	}
}

func TestAdjustStockCreatesEntryOnlyOnPositiveDelta(t *testing.T) {
	store := newFakeTransferStore()
	svc := NewTransferService(store, store)
	ctx := context.Background()

	// negative delta against a missing entry is a no-op
	require.NoError(t, svc.AdjustStock(ctx, []domain.LedgerDelta{{BranchID: 3, ProductID: 9, Delta: -5}}))
	_, err := svc.BranchStock(ctx, 3, 9)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// first positive delta creates the entry
	require.NoError(t, svc.AdjustStock(ctx, []domain.LedgerDelta{{BranchID: 3, ProductID: 9, Delta: 5}}))
	entry, err := svc.BranchStock(ctx, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)
}

func TestAdjustStockValidation(t *testing.T) {
	store := newFakeTransferStore()
	svc := NewTransferService(store, store)
	ctx := context.Background()

	cases := []struct {
		name   string
		deltas []domain.LedgerDelta
	}{
		{"empty", nil},
		{"missing ids", []domain.LedgerDelta{{Delta: 5}}},
		{"zero delta", []domain.LedgerDelta{{BranchID: 1, ProductID: 1, Delta: 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.AdjustStock(ctx, tc.deltas)
			require.Error(t, err)
			assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
		})
	}
}

func TestBranchStockValidation(t *testing.T) {
	store := newFakeTransferStore()
	svc := NewTransferService(store, store)

	_, err := svc.BranchStock(context.Background(), 0, 1)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
}
