package replenish

// WindowDays is the length of the trailing demand window.
const WindowDays = 30

// DemandStats is the reduced sales history for one product: how much was
// sold, and on how many distinct calendar days.
type DemandStats struct {
	TotalQuantity int
	ActiveDays    int
}

// CostConfig holds the EOQ cost parameters. These are injected, not
// hard-coded, so deployments can source them from supplier catalog data.
type CostConfig struct {
	OrderingCost    float64
	HoldingRate     float64
	DefaultItemCost float64
}

// DefaultCostConfig returns the assumed cost figures used when no
// deployment-specific values are configured.
func DefaultCostConfig() CostConfig {
	return CostConfig{
		OrderingCost:    25,
		HoldingRate:     0.2,
		DefaultItemCost: 10,
	}
}
