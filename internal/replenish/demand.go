package replenish

import (
	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
)

// AggregateDemand reduces a window of sale lines into per-product demand
// statistics. ActiveDays counts distinct calendar days with at least one
// sale, clamped to the window length and floored at 1 so later divisions are
// always defined. Pure read-and-reduce.
func AggregateDemand(lines []domain.SaleLine) map[int64]DemandStats {
	type bucket struct {
		total int
		days  map[string]struct{}
	}

	buckets := make(map[int64]*bucket)
	for _, line := range lines {
		b, ok := buckets[line.ProductID]
		if !ok {
			b = &bucket{days: make(map[string]struct{})}
			buckets[line.ProductID] = b
		}
		b.total += line.Quantity
		b.days[line.OccurredAt.Format("2006-01-02")] = struct{}{}
	}

	stats := make(map[int64]DemandStats, len(buckets))
	for productID, b := range buckets {
		activeDays := len(b.days)
		if activeDays > WindowDays {
			activeDays = WindowDays
		}
		if activeDays < 1 {
			activeDays = 1
		}
		stats[productID] = DemandStats{
			TotalQuantity: b.total,
			ActiveDays:    activeDays,
		}
	}

	return stats
}
