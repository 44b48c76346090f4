package service

import (
	"context"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/cache"
	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/ardiwinata/posbranch/backend-go/internal/replenish"
	"github.com/ardiwinata/posbranch/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultRecalcWorkers = 4

// ReplenishService runs the recalculation batch and serves the low-stock
// report.
type ReplenishService struct {
	sales    repository.SalesRepository
	products repository.ProductRepository
	policies repository.PolicyRepository
	cache    cache.ReplenishCache
	costs    replenish.CostConfig
	workers  int
}

func NewReplenishService(
	sales repository.SalesRepository,
	products repository.ProductRepository,
	policies repository.PolicyRepository,
	cacheImpl cache.ReplenishCache,
	costs replenish.CostConfig,
	workers int,
) *ReplenishService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReplenishCache()
	}
	if workers <= 0 {
		workers = defaultRecalcWorkers
	}
	return &ReplenishService{
		sales:    sales,
		products: products,
		policies: policies,
		cache:    cacheImpl,
		costs:    costs,
		workers:  workers,
	}
}

// Recalculate reruns the reorder math for every product matched by the
// filter. A product whose calculation fails is skipped and reported; the
// batch itself is best-effort, not a transaction.
func (s *ReplenishService) Recalculate(ctx context.Context, filter domain.SalesFilter) (*domain.RecalculationResult, error) {
	// Policy is resolved once; every product in the run sees the same value.
	policy, err := s.policies.GetPolicy(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -replenish.WindowDays)
	lines, err := s.sales.SalesSince(ctx, cutoff, filter)
	if err != nil {
		return nil, err
	}
	stats := replenish.AggregateDemand(lines)

	products, err := s.products.GetProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	calc := replenish.NewCalculator(policy, s.costs)

	// Products are independent; compute in parallel, each worker writing
	// only its own slot.
	points := make([]*domain.ReorderPoint, len(products))
	skips := make([]*domain.SkippedProduct, len(products))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, product := range products {
		g.Go(func() error {
			point, err := calc.Compute(product, stats[product.ID])
			if err != nil {
				skips[i] = &domain.SkippedProduct{ProductID: product.ID, Reason: err.Error()}
				return nil
			}
			points[i] = &point
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &domain.RecalculationResult{
		ReorderPoints: make([]domain.ReorderPoint, 0, len(products)),
		Skipped:       []domain.SkippedProduct{},
	}
	for i, product := range products {
		if skips[i] != nil {
			result.Skipped = append(result.Skipped, *skips[i])
			continue
		}
		point := *points[i]
		result.ReorderPoints = append(result.ReorderPoints, point)

		// Refresh the in-memory profile so the report below sees the new
		// thresholds without a second read.
		product.ReorderLevel = point.ReorderLevel
		product.ReorderQuantity = point.ReorderQuantity
		product.AverageDailySales = point.AverageDailySales
	}

	now := time.Now()
	if err := s.products.SaveReorderPoints(ctx, result.ReorderPoints, now); err != nil {
		return nil, err
	}
	result.ProductsUpdated = len(result.ReorderPoints)
	result.Report = calc.BuildReport(products, now)

	if err := s.cache.InvalidateReports(ctx); err != nil {
		log.Warn().Err(err).Msg("replenish: cache invalidation failed")
	}

	log.Info().
		Int("products_updated", result.ProductsUpdated).
		Int("skipped", len(result.Skipped)).
		Int("low_stock", result.Report.LowStockCount).
		Msg("recalculation finished")

	return result, nil
}

// Report builds the low-stock report from current thresholds, serving a
// cached copy when one is fresh.
func (s *ReplenishService) Report(ctx context.Context, filter domain.SalesFilter) (*domain.ReplenishmentReport, error) {
	if report, ok, err := s.cache.GetReport(ctx, filter); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("replenish: cache get report failed")
	}

	policy, err := s.policies.GetPolicy(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.GetProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := replenish.NewCalculator(policy, s.costs).BuildReport(products, time.Now())

	if err := s.cache.SetReport(ctx, filter, report); err != nil {
		log.Warn().Err(err).Msg("replenish: cache set report failed")
	}

	return report, nil
}
