package replenish

import (
	"math"
	"strconv"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
)

// daysUntilStockoutSentinel stands in for "no measurable demand".
const daysUntilStockoutSentinel = 999

// BuildReport derives the low-stock picture from current thresholds. Only
// products strictly below their reorder level are flagged; a product sitting
// exactly at the level is not. Pure read/derive, no writes.
func (c *Calculator) BuildReport(products []*domain.Product, now time.Time) *domain.ReplenishmentReport {
	report := &domain.ReplenishmentReport{
		GeneratedAt: now,
		Alerts:      []domain.LowStockAlert{},
		BySupplier:  make(map[string]domain.SupplierSuggestion),
	}

	for _, p := range products {
		if p.CurrentStock >= p.ReorderLevel {
			continue
		}

		leadTime := c.LeadTimeDays(p)

		days := daysUntilStockoutSentinel
		if p.AverageDailySales > 0 {
			days = int(math.Floor(float64(p.CurrentStock) / p.AverageDailySales))
		}

		priority := domain.PriorityMedium
		switch {
		case days <= leadTime:
			priority = domain.PriorityCritical
		case days <= 2*leadTime:
			priority = domain.PriorityHigh
		}

		alert := domain.LowStockAlert{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Name:              p.Name,
			CurrentStock:      p.CurrentStock,
			ReorderLevel:      p.ReorderLevel,
			ReorderQuantity:   p.ReorderQuantity,
			AverageDailySales: p.AverageDailySales,
			DaysUntilStockout: days,
			LeadTimeDays:      leadTime,
			NeedsReorder:      days <= leadTime,
			Priority:          priority,
			SupplierID:        p.SupplierID,
			SupplierName:      p.SupplierName,
			SupplierSKU:       p.SupplierSKU,
			SupplierPrice:     p.SupplierPrice,
		}

		report.Alerts = append(report.Alerts, alert)
		if priority == domain.PriorityCritical {
			report.CriticalAlerts++
		}

		key := "unknown"
		name := "Unknown supplier"
		if p.SupplierID != nil {
			key = strconv.FormatInt(*p.SupplierID, 10)
			name = p.SupplierName
		}
		suggestion, ok := report.BySupplier[key]
		if !ok {
			suggestion = domain.SupplierSuggestion{
				SupplierKey:  key,
				SupplierName: name,
			}
		}
		suggestion.Lines = append(suggestion.Lines, alert)
		report.BySupplier[key] = suggestion
	}

	report.LowStockCount = len(report.Alerts)

	return report
}
