// backend-go/internal/repository/postgres/transfer_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type transferRepository struct {
	db *DB
}

func NewTransferRepository(db *DB) *transferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) CreateTransfer(ctx context.Context, req *domain.CreateTransferRequest) (*domain.StockTransfer, error) {
	transfer := &domain.StockTransfer{
		FromBranchID: req.FromBranchID,
		ToBranchID:   req.ToBranchID,
		Status:       domain.TransferPending,
		RequestedBy:  req.RequestedBy,
		Notes:        req.Notes,
	}

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		number, err := nextTransferNumber(ctx, tx, time.Now())
		if err != nil {
			return err
		}
		transfer.TransferNumber = number

		err = tx.QueryRowContext(ctx, `
			INSERT INTO stock_transfers (transfer_number, from_branch_id, to_branch_id, status, requested_by, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING id, created_at
		`, number, req.FromBranchID, req.ToBranchID, transfer.Status, req.RequestedBy, req.Notes,
		).Scan(&transfer.ID, &transfer.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert transfer: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO stock_transfer_items (transfer_id, product_id, quantity_requested, unit_cost)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, line := range req.Items {
			item := domain.TransferItem{
				TransferID:        transfer.ID,
				ProductID:         line.ProductID,
				QuantityRequested: line.Quantity,
				UnitCost:          line.UnitCost,
			}
			if err := stmt.QueryRowContext(ctx, transfer.ID, line.ProductID, line.Quantity, line.UnitCost).Scan(&item.ID); err != nil {
				return fmt.Errorf("failed to insert transfer item: %w", err)
			}
			transfer.Items = append(transfer.Items, item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// nextTransferNumber allocates the next "TRF-YYYYMMDD-XXXX" number for the
// day. The count query runs under the creating transaction.
func nextTransferNumber(ctx context.Context, tx *sql.Tx, now time.Time) (string, error) {
	day := now.Format("20060102")

	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stock_transfers WHERE transfer_number LIKE $1`,
		"TRF-"+day+"-%",
	).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to count transfers for %s: %w", day, err)
	}

	return fmt.Sprintf("TRF-%s-%04d", day, count+1), nil
}

func (r *transferRepository) GetTransfer(ctx context.Context, id int64) (*domain.StockTransfer, error) {
	query := `
		SELECT id, transfer_number, from_branch_id, to_branch_id, status,
		       requested_by, COALESCE(approved_by, '') AS approved_by, notes,
		       created_at, shipped_at, received_at
		FROM stock_transfers
		WHERE id = $1
	`

	var transfer domain.StockTransfer
	err := sqlx.GetContext(ctx, r.db, &transfer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("transfer %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}

	itemsQuery := `
		SELECT id, transfer_id, product_id, quantity_requested, unit_cost
		FROM stock_transfer_items
		WHERE transfer_id = $1
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &transfer.Items, itemsQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get transfer items: %w", err)
	}

	return &transfer, nil
}

func (r *transferRepository) ApplyTransition(ctx context.Context, update domain.TransferUpdate, deltas []domain.LedgerDelta) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE stock_transfers SET
				status = $2,
				approved_by = COALESCE($3, approved_by),
				shipped_at = COALESCE($4, shipped_at),
				received_at = COALESCE($5, received_at)
			WHERE id = $1
		`, update.ID, update.Status, update.ApprovedBy, update.ShippedAt, update.ReceivedAt)
		if err != nil {
			return fmt.Errorf("failed to update transfer status: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check transfer update: %w", err)
		}
		if affected == 0 {
			return domain.NotFoundf("transfer %d not found", update.ID)
		}

		return applyDeltasTx(ctx, tx, deltas)
	})
}
