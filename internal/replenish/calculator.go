package replenish

import (
	"math"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
)

// Calculator computes reorder thresholds from demand statistics. The policy
// and cost parameters are resolved once per run and stay fixed for every
// product in the batch.
type Calculator struct {
	policy domain.InventoryPolicy
	costs  CostConfig
}

func NewCalculator(policy domain.InventoryPolicy, costs CostConfig) *Calculator {
	return &Calculator{
		policy: policy,
		costs:  costs,
	}
}

// zScore maps a service level to its z-score. Only the two supported levels
// have exact values; anything else falls through to 1.0 without
// interpolation.
func zScore(serviceLevel float64) float64 {
	switch serviceLevel {
	case 0.95:
		return 1.645
	case 0.90:
		return 1.28
	default:
		return 1.0
	}
}

// LeadTimeDays resolves the effective lead time for a product: product-level
// override, then the linked supplier's lead time, then the policy default.
func (c *Calculator) LeadTimeDays(p *domain.Product) int {
	if p.LeadTimeDays != nil && *p.LeadTimeDays > 0 {
		return *p.LeadTimeDays
	}
	if p.SupplierLeadTime != nil && *p.SupplierLeadTime > 0 {
		return *p.SupplierLeadTime
	}
	return c.policy.DefaultLeadTimeDays
}

// Compute derives the reorder point and reorder quantity for one product.
func (c *Calculator) Compute(p *domain.Product, stats DemandStats) (domain.ReorderPoint, error) {
	leadTime := c.LeadTimeDays(p)
	if leadTime <= 0 {
		return domain.ReorderPoint{}, domain.Invalidf("product %d: non-positive lead time %d", p.ID, leadTime)
	}
	if stats.TotalQuantity < 0 {
		return domain.ReorderPoint{}, domain.Invalidf("product %d: negative demand total %d", p.ID, stats.TotalQuantity)
	}

	activeDays := stats.ActiveDays
	if activeDays < 1 {
		activeDays = 1
	}

	// 1. Average daily sales over the window
	avgDailySales := float64(stats.TotalQuantity) / math.Min(float64(activeDays), WindowDays)

	// 2. Demand variance proxy; zero when there is no history
	variance := 0.0
	if stats.TotalQuantity > 0 {
		mean := float64(stats.TotalQuantity) / float64(activeDays)
		variance = mean * (1 - 1/float64(activeDays))
	}
	stdDev := math.Sqrt(variance)

	// 3. Safety stock over lead time plus the policy buffer
	z := zScore(c.policy.ServiceLevel)
	safetyStock := math.Ceil(z * stdDev * math.Sqrt(float64(leadTime+c.policy.SafetyStockDays)))

	// 4. Reorder point
	reorderLevel := int(math.Ceil(avgDailySales*float64(leadTime) + safetyStock))

	// 5. EOQ from annualized demand
	annualDemand := avgDailySales * 365
	eoq := int(math.Ceil(math.Sqrt(2 * annualDemand * c.costs.OrderingCost / (c.costs.HoldingRate * c.costs.DefaultItemCost))))

	// 6. Reorder quantity keeps the previous value (or 10) as a floor
	previous := p.ReorderQuantity
	if previous <= 0 {
		previous = 10
	}
	reorderQuantity := eoq
	if previous > reorderQuantity {
		reorderQuantity = previous
	}

	return domain.ReorderPoint{
		ProductID:         p.ID,
		SKU:               p.SKU,
		AverageDailySales: avgDailySales,
		ReorderLevel:      reorderLevel,
		ReorderQuantity:   reorderQuantity,
		LeadTimeDays:      leadTime,
	}, nil
}
