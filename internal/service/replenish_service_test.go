package service

import (
	"context"
	"testing"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/ardiwinata/posbranch/backend-go/internal/replenish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leadDays(v int) *int { return &v }

// twenty active days totalling 150 units, inside the trailing window
func workedExampleLines(productID int64) []domain.SaleLine {
	lines := make([]domain.SaleLine, 0, 20)
	base := time.Now().AddDate(0, 0, -25)
	for day := 0; day < 20; day++ {
		qty := 10
		if day >= 10 {
			qty = 5
		}
		lines = append(lines, domain.SaleLine{
			ProductID:  productID,
			Quantity:   qty,
			OccurredAt: base.AddDate(0, 0, day),
		})
	}
	return lines
}

func TestRecalculateWorkedExample(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.Product{
		{ID: 1, SKU: "SKU-001", CurrentStock: 10, LeadTimeDays: leadDays(5)},
	}}
	policies := &fakePolicyRepo{policy: domain.DefaultInventoryPolicy()}
	sales := &fakeSalesRepo{lines: workedExampleLines(1)}

	svc := NewReplenishService(sales, products, policies, nil, replenish.DefaultCostConfig(), 2)

	result, err := svc.Recalculate(context.Background(), domain.SalesFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ProductsUpdated)
	require.Len(t, result.ReorderPoints, 1)
	point := result.ReorderPoints[0]
	assert.InDelta(t, 7.5, point.AverageDailySales, 1e-9)
	assert.Equal(t, 54, point.ReorderLevel)
	assert.Equal(t, 262, point.ReorderQuantity)
	assert.Empty(t, result.Skipped)

	// persisted with the calculation timestamp
	require.Len(t, products.savedPoints, 1)
	assert.Equal(t, point, products.savedPoints[0])
	assert.False(t, products.savedAt.IsZero())

	// the report sees the fresh thresholds: 10 on hand vs level 54
	require.NotNil(t, result.Report)
	require.Len(t, result.Report.Alerts, 1)
	assert.Equal(t, domain.PriorityCritical, result.Report.Alerts[0].Priority)
}

func TestRecalculateSkipsFailedProductsAndContinues(t *testing.T) {
	// the second product has no lead time anywhere, so its calculation fails
	products := &fakeProductRepo{products: []*domain.Product{
		{ID: 1, SKU: "GOOD", LeadTimeDays: leadDays(5)},
		{ID: 2, SKU: "BAD"},
	}}
	policies := &fakePolicyRepo{policy: domain.InventoryPolicy{SafetyStockDays: 7, DefaultLeadTimeDays: 0, ServiceLevel: 0.95}}
	sales := &fakeSalesRepo{}

	svc := NewReplenishService(sales, products, policies, nil, replenish.DefaultCostConfig(), 2)

	result, err := svc.Recalculate(context.Background(), domain.SalesFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ProductsUpdated)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, int64(2), result.Skipped[0].ProductID)
	assert.NotEmpty(t, result.Skipped[0].Reason)
}

func TestRecalculateInvalidatesReportCache(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.Product{{ID: 1, SKU: "A", LeadTimeDays: leadDays(5)}}}
	policies := &fakePolicyRepo{policy: domain.DefaultInventoryPolicy()}
	reportCache := newCountingCache()

	svc := NewReplenishService(&fakeSalesRepo{}, products, policies, reportCache, replenish.DefaultCostConfig(), 1)

	// warm the cache, then recalculate
	_, err := svc.Report(context.Background(), domain.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, reportCache.stored, 1)

	_, err = svc.Recalculate(context.Background(), domain.SalesFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, reportCache.invalidated)
	assert.Empty(t, reportCache.stored)
}

func TestReportServedFromCache(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.Product{
		{ID: 1, SKU: "A", CurrentStock: 1, ReorderLevel: 10},
	}}
	policies := &fakePolicyRepo{policy: domain.DefaultInventoryPolicy()}
	reportCache := newCountingCache()

	svc := NewReplenishService(&fakeSalesRepo{}, products, policies, reportCache, replenish.DefaultCostConfig(), 1)
	ctx := context.Background()

	first, err := svc.Report(ctx, domain.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.LowStockCount)
	assert.Equal(t, 1, products.getCalls)

	second, err := svc.Report(ctx, domain.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// cache hit, no second product read
	assert.Equal(t, 1, products.getCalls)
}
