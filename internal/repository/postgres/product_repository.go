// backend-go/internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetProducts(ctx context.Context, filter domain.SalesFilter) ([]*domain.Product, error) {
	query := `
		SELECT
			p.id,
			p.sku,
			p.name,
			p.current_stock,
			p.reorder_level,
			p.reorder_quantity,
			p.lead_time_days,
			p.supplier_id,
			COALESCE(s.name, '') AS supplier_name,
			COALESCE(p.supplier_sku, '') AS supplier_sku,
			COALESCE(p.supplier_price, 0) AS supplier_price,
			s.lead_time_days AS supplier_lead_time,
			p.average_daily_sales,
			p.last_reorder_calc
		FROM products p
		LEFT JOIN suppliers s ON p.supplier_id = s.id
		WHERE p.active = TRUE
	`
	args := []interface{}{}

	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(" AND p.id = $%d", len(args))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		query += fmt.Sprintf(" AND p.supplier_id = $%d", len(args))
	}

	query += " ORDER BY p.sku"

	var products []*domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

func (r *productRepository) SaveReorderPoints(ctx context.Context, points []domain.ReorderPoint, calculatedAt time.Time) error {
	if len(points) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE products SET
				reorder_level = $2,
				reorder_quantity = $3,
				average_daily_sales = $4,
				last_reorder_calc = $5
			WHERE id = $1
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, point := range points {
			_, err := stmt.ExecContext(
				ctx,
				point.ProductID,
				point.ReorderLevel,
				point.ReorderQuantity,
				point.AverageDailySales,
				calculatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to save reorder point for product %d: %w", point.ProductID, err)
			}
		}

		return nil
	})
}
