// backend-go/internal/repository/replenish_repository.go
package repository

import (
	"context"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
)

// SalesRepository reads the immutable sales history.
type SalesRepository interface {
	// SalesSince returns all sale lines recorded at or after the cutoff,
	// narrowed by the optional filter.
	SalesSince(ctx context.Context, cutoff time.Time, filter domain.SalesFilter) ([]domain.SaleLine, error)
}

// ProductRepository reads replenishment profiles and writes calculator output.
type ProductRepository interface {
	GetProducts(ctx context.Context, filter domain.SalesFilter) ([]*domain.Product, error)

	// SaveReorderPoints batch-upserts calculator results and stamps
	// last_reorder_calc. Products absent from points are untouched.
	SaveReorderPoints(ctx context.Context, points []domain.ReorderPoint, calculatedAt time.Time) error
}

// PolicyRepository resolves the global inventory policy.
type PolicyRepository interface {
	// GetPolicy returns the stored policy, or the built-in defaults when no
	// record exists.
	GetPolicy(ctx context.Context) (domain.InventoryPolicy, error)
}
