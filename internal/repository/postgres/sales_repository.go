// backend-go/internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) *salesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) SalesSince(ctx context.Context, cutoff time.Time, filter domain.SalesFilter) ([]domain.SaleLine, error) {
	query := `
		SELECT si.product_id, si.quantity, s.occurred_at
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id
		WHERE s.occurred_at >= $1
	`
	args := []interface{}{cutoff}

	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(" AND si.product_id = $%d", len(args))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		query += fmt.Sprintf(" AND si.product_id IN (SELECT id FROM products WHERE supplier_id = $%d)", len(args))
	}

	query += " ORDER BY s.occurred_at"

	var lines []domain.SaleLine
	if err := sqlx.SelectContext(ctx, r.db, &lines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get sales history: %w", err)
	}

	return lines, nil
}
