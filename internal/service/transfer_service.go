package service

import (
	"context"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/ardiwinata/posbranch/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// TransferService drives the stock transfer state machine. Validation runs
// before any write; the status update and the ledger deltas of a transition
// land in one storage transaction.
type TransferService struct {
	transfers repository.TransferRepository
	ledger    repository.LedgerRepository
	locks     *transferLocks
}

func NewTransferService(transfers repository.TransferRepository, ledger repository.LedgerRepository) *TransferService {
	return &TransferService{
		transfers: transfers,
		ledger:    ledger,
		locks:     newTransferLocks(),
	}
}

// BranchStock returns the ledger entry for one product at one branch.
func (s *TransferService) BranchStock(ctx context.Context, branchID, productID int64) (*domain.LedgerEntry, error) {
	if branchID <= 0 || productID <= 0 {
		return nil, domain.Invalidf("branch and product ids are required")
	}
	return s.ledger.GetEntry(ctx, branchID, productID)
}

// AdjustStock applies manual inventory corrections, e.g. after a physical
// count. The usual ledger semantics hold: entries are created lazily on
// positive deltas and quantities clamp at zero.
func (s *TransferService) AdjustStock(ctx context.Context, deltas []domain.LedgerDelta) error {
	if len(deltas) == 0 {
		return domain.Invalidf("at least one adjustment is required")
	}
	for _, d := range deltas {
		if d.BranchID <= 0 || d.ProductID <= 0 {
			return domain.Invalidf("adjustment branch and product ids are required")
		}
		if d.Delta == 0 {
			return domain.Invalidf("adjustment delta for branch %d, product %d must be non-zero", d.BranchID, d.ProductID)
		}
	}

	if err := s.ledger.ApplyDeltas(ctx, deltas); err != nil {
		return err
	}

	log.Info().Int("adjustments", len(deltas)).Msg("inventory adjusted")
	return nil
}

func (s *TransferService) Create(ctx context.Context, req *domain.CreateTransferRequest) (*domain.StockTransfer, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	transfer, err := s.transfers.CreateTransfer(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("transfer_number", transfer.TransferNumber).
		Int64("from_branch", transfer.FromBranchID).
		Int64("to_branch", transfer.ToBranchID).
		Int("items", len(transfer.Items)).
		Msg("transfer created")

	return transfer, nil
}

func validateCreate(req *domain.CreateTransferRequest) error {
	if req.FromBranchID <= 0 || req.ToBranchID <= 0 {
		return domain.Invalidf("from_branch_id and to_branch_id are required")
	}
	if req.FromBranchID == req.ToBranchID {
		return domain.Invalidf("source and destination branch must differ")
	}
	if len(req.Items) == 0 {
		return domain.Invalidf("transfer needs at least one item")
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 {
			return domain.Invalidf("item product_id is required")
		}
		if item.Quantity <= 0 {
			return domain.Invalidf("item quantity must be positive, got %d for product %d", item.Quantity, item.ProductID)
		}
	}
	return nil
}

func (s *TransferService) Get(ctx context.Context, id int64) (*domain.StockTransfer, error) {
	return s.transfers.GetTransfer(ctx, id)
}

// Transition applies one state-machine action. At most one transition per
// transfer id runs at a time.
func (s *TransferService) Transition(ctx context.Context, id int64, req *domain.TransitionRequest) (*domain.StockTransfer, error) {
	s.locks.lock(id)
	defer s.locks.unlock(id)

	transfer, err := s.transfers.GetTransfer(ctx, id)
	if err != nil {
		return nil, err
	}

	update, deltas, err := planTransition(transfer, req, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.transfers.ApplyTransition(ctx, update, deltas); err != nil {
		return nil, err
	}

	transfer.Status = update.Status
	if update.ApprovedBy != nil {
		transfer.ApprovedBy = *update.ApprovedBy
	}
	if update.ShippedAt != nil {
		transfer.ShippedAt = update.ShippedAt
	}
	if update.ReceivedAt != nil {
		transfer.ReceivedAt = update.ReceivedAt
	}

	log.Info().
		Str("transfer_number", transfer.TransferNumber).
		Str("action", string(req.Action)).
		Str("status", string(transfer.Status)).
		Msg("transfer transitioned")

	return transfer, nil
}

// planTransition validates the action against the current status and builds
// the resulting update plus the ledger deltas. Pure; nothing is written until
// the plan is applied.
func planTransition(t *domain.StockTransfer, req *domain.TransitionRequest, now time.Time) (domain.TransferUpdate, []domain.LedgerDelta, error) {
	update := domain.TransferUpdate{ID: t.ID}

	switch req.Action {
	case domain.ActionApprove:
		if t.Status != domain.TransferPending {
			return update, nil, domain.Conflictf("cannot approve transfer %s in status %s", t.TransferNumber, t.Status)
		}
		update.Status = domain.TransferApproved
		approvedBy := req.ApprovedBy
		update.ApprovedBy = &approvedBy
		return update, nil, nil

	case domain.ActionShip:
		if t.Status != domain.TransferApproved {
			return update, nil, domain.Conflictf("cannot ship transfer %s in status %s", t.TransferNumber, t.Status)
		}
		update.Status = domain.TransferInTransit
		update.ShippedAt = &now
		return update, itemDeltas(t, t.FromBranchID, -1), nil

	case domain.ActionReceive:
		if t.Status != domain.TransferInTransit {
			return update, nil, domain.Conflictf("cannot receive transfer %s in status %s", t.TransferNumber, t.Status)
		}
		update.Status = domain.TransferReceived
		update.ReceivedAt = &now
		return update, itemDeltas(t, t.ToBranchID, 1), nil

	case domain.ActionCancel:
		if t.Status.Terminal() {
			return update, nil, domain.Conflictf("cannot cancel transfer %s in status %s", t.TransferNumber, t.Status)
		}
		update.Status = domain.TransferCancelled
		if t.Status == domain.TransferInTransit {
			// Stock already left the source; put it back.
			return update, itemDeltas(t, t.FromBranchID, 1), nil
		}
		return update, nil, nil

	default:
		return update, nil, domain.Invalidf("unknown transfer action %q", req.Action)
	}
}

// itemDeltas builds one signed delta per item against branchID, summing lines
// that hit the same (branch, product) pair so the zero floor cannot depend on
// application order.
func itemDeltas(t *domain.StockTransfer, branchID int64, sign int) []domain.LedgerDelta {
	index := make(map[int64]int, len(t.Items))
	deltas := make([]domain.LedgerDelta, 0, len(t.Items))

	for _, item := range t.Items {
		if at, ok := index[item.ProductID]; ok {
			deltas[at].Delta += sign * item.QuantityRequested
			continue
		}
		index[item.ProductID] = len(deltas)
		deltas = append(deltas, domain.LedgerDelta{
			BranchID:  branchID,
			ProductID: item.ProductID,
			Delta:     sign * item.QuantityRequested,
		})
	}

	return deltas
}
