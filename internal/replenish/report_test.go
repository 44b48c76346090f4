package replenish

import (
	"testing"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildReportStrictBoundary(t *testing.T) {
	calc := NewCalculator(testPolicy(), DefaultCostConfig())
	products := []*domain.Product{
		{ID: 1, SKU: "A", CurrentStock: 10, ReorderLevel: 10}, // at the level: not flagged
		{ID: 2, SKU: "B", CurrentStock: 9, ReorderLevel: 10},  // below: flagged
		{ID: 3, SKU: "C", CurrentStock: 11, ReorderLevel: 10},
	}

	report := calc.BuildReport(products, time.Now())

	require.Len(t, report.Alerts, 1)
	assert.Equal(t, int64(2), report.Alerts[0].ProductID)
	assert.Equal(t, 1, report.LowStockCount)
}

func TestBuildReportPriorities(t *testing.T) {
	calc := NewCalculator(testPolicy(), DefaultCostConfig())
	lead := 5
	products := []*domain.Product{
		// 20/5 = 4 days left, lead 5 -> critical and needs reorder
		{ID: 1, SKU: "A", CurrentStock: 20, ReorderLevel: 100, AverageDailySales: 5, LeadTimeDays: &lead},
		// 40/5 = 8 days left, within 2*lead -> high
		{ID: 2, SKU: "B", CurrentStock: 40, ReorderLevel: 100, AverageDailySales: 5, LeadTimeDays: &lead},
		// 75/5 = 15 days left -> medium
		{ID: 3, SKU: "C", CurrentStock: 75, ReorderLevel: 100, AverageDailySales: 5, LeadTimeDays: &lead},
	}

	report := calc.BuildReport(products, time.Now())
	require.Len(t, report.Alerts, 3)

	assert.Equal(t, domain.PriorityCritical, report.Alerts[0].Priority)
	assert.True(t, report.Alerts[0].NeedsReorder)
	assert.Equal(t, 4, report.Alerts[0].DaysUntilStockout)

	assert.Equal(t, domain.PriorityHigh, report.Alerts[1].Priority)
	assert.False(t, report.Alerts[1].NeedsReorder)

	assert.Equal(t, domain.PriorityMedium, report.Alerts[2].Priority)
	assert.Equal(t, 1, report.CriticalAlerts)
}

func TestBuildReportNoDemandSentinel(t *testing.T) {
	calc := NewCalculator(testPolicy(), DefaultCostConfig())
	products := []*domain.Product{
		{ID: 1, SKU: "A", CurrentStock: 3, ReorderLevel: 10, AverageDailySales: 0},
	}

	report := calc.BuildReport(products, time.Now())
	require.Len(t, report.Alerts, 1)

	assert.Equal(t, 999, report.Alerts[0].DaysUntilStockout)
	assert.Equal(t, domain.PriorityMedium, report.Alerts[0].Priority)
	assert.False(t, report.Alerts[0].NeedsReorder)
}

func TestBuildReportGroupsBySupplier(t *testing.T) {
	calc := NewCalculator(testPolicy(), DefaultCostConfig())
	products := []*domain.Product{
		{ID: 1, SKU: "A", CurrentStock: 1, ReorderLevel: 10, SupplierID: int64Ptr(7), SupplierName: "Acme", SupplierSKU: "AC-1", SupplierPrice: 4.5},
		{ID: 2, SKU: "B", CurrentStock: 2, ReorderLevel: 10, SupplierID: int64Ptr(7), SupplierName: "Acme"},
		{ID: 3, SKU: "C", CurrentStock: 3, ReorderLevel: 10},
	}

	report := calc.BuildReport(products, time.Now())

	require.Len(t, report.BySupplier, 2)
	acme := report.BySupplier["7"]
	assert.Equal(t, "Acme", acme.SupplierName)
	assert.Len(t, acme.Lines, 2)
	assert.Equal(t, "AC-1", acme.Lines[0].SupplierSKU)

	unknown := report.BySupplier["unknown"]
	assert.Equal(t, "Unknown supplier", unknown.SupplierName)
	assert.Len(t, unknown.Lines, 1)
	assert.Equal(t, int64(3), unknown.Lines[0].ProductID)
}
