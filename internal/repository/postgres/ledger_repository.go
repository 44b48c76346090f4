// backend-go/internal/repository/postgres/ledger_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type ledgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *ledgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetEntry(ctx context.Context, branchID, productID int64) (*domain.LedgerEntry, error) {
	query := `
		SELECT branch_id, product_id, quantity, min_stock_level, max_stock_level, last_updated
		FROM branch_inventory
		WHERE branch_id = $1 AND product_id = $2
	`

	var entry domain.LedgerEntry
	err := sqlx.GetContext(ctx, r.db, &entry, query, branchID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("no inventory entry for branch %d, product %d", branchID, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory entry: %w", err)
	}

	return &entry, nil
}

func (r *ledgerRepository) ApplyDeltas(ctx context.Context, deltas []domain.LedgerDelta) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return applyDeltasTx(ctx, tx, deltas)
	})
}

// applyDeltasTx adjusts branch inventory rows inside an open transaction.
// Rows are locked for the read-modify-write; an entry is created lazily on
// the first positive delta, and a non-positive delta against a missing entry
// is a no-op. Quantities clamp at zero, but a delta that would have gone
// negative is recorded as a violation for later reconciliation.
func applyDeltasTx(ctx context.Context, tx *sql.Tx, deltas []domain.LedgerDelta) error {
	for _, d := range deltas {
		var qty int
		err := tx.QueryRowContext(ctx, `
			SELECT quantity FROM branch_inventory
			WHERE branch_id = $1 AND product_id = $2
			FOR UPDATE
		`, d.BranchID, d.ProductID).Scan(&qty)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			if d.Delta <= 0 {
				continue
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO branch_inventory (branch_id, product_id, quantity, min_stock_level, max_stock_level, last_updated)
				VALUES ($1, $2, $3, 0, 0, NOW())
			`, d.BranchID, d.ProductID, d.Delta)
			if err != nil {
				return fmt.Errorf("failed to create inventory entry: %w", err)
			}

		case err != nil:
			return fmt.Errorf("failed to lock inventory entry: %w", err)

		default:
			next := qty + d.Delta
			if next < 0 {
				if err := recordViolation(ctx, tx, d, qty); err != nil {
					return err
				}
				log.Warn().
					Int64("branch_id", d.BranchID).
					Int64("product_id", d.ProductID).
					Int("quantity", qty).
					Int("delta", d.Delta).
					Msg("inventory delta clamped at zero")
				next = 0
			}

			_, err = tx.ExecContext(ctx, `
				UPDATE branch_inventory
				SET quantity = $3, last_updated = NOW()
				WHERE branch_id = $1 AND product_id = $2
			`, d.BranchID, d.ProductID, next)
			if err != nil {
				return fmt.Errorf("failed to update inventory entry: %w", err)
			}
		}
	}

	return nil
}

func recordViolation(ctx context.Context, tx *sql.Tx, d domain.LedgerDelta, quantityBefore int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO inventory_violations (branch_id, product_id, attempted_delta, quantity_before, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, d.BranchID, d.ProductID, d.Delta, quantityBefore)
	if err != nil {
		return fmt.Errorf("failed to record inventory violation: %w", err)
	}

	return nil
}
