// backend-go/internal/repository/transfer_repository.go
package repository

import (
	"context"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
)

// LedgerRepository manages per-branch stock quantities.
type LedgerRepository interface {
	GetEntry(ctx context.Context, branchID, productID int64) (*domain.LedgerEntry, error)

	// ApplyDeltas applies signed quantity adjustments in one transaction.
	// Entries are created lazily on the first positive delta and quantities
	// never go below zero.
	ApplyDeltas(ctx context.Context, deltas []domain.LedgerDelta) error
}

// TransferRepository persists stock transfers and their transitions.
type TransferRepository interface {
	CreateTransfer(ctx context.Context, req *domain.CreateTransferRequest) (*domain.StockTransfer, error)
	GetTransfer(ctx context.Context, id int64) (*domain.StockTransfer, error)

	// ApplyTransition writes the status update and the transition's ledger
	// deltas in a single transaction. Either both land or neither does.
	ApplyTransition(ctx context.Context, update domain.TransferUpdate, deltas []domain.LedgerDelta) error
}
