package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/ardiwinata/posbranch/backend-go/internal/repository"
)

func testNow() time.Time {
	return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
}

type ledgerKey struct {
	branchID  int64
	productID int64
}

// fakeTransferStore is an in-memory TransferRepository with the same delta
// semantics as the postgres implementation: lazy entry creation on positive
// deltas, quantities clamped at zero.
type fakeTransferStore struct {
	mu        sync.Mutex
	seq       int64
	transfers map[int64]*domain.StockTransfer
	ledger    map[ledgerKey]int
}

var (
	_ repository.TransferRepository = (*fakeTransferStore)(nil)
	_ repository.LedgerRepository   = (*fakeTransferStore)(nil)
)

func newFakeTransferStore() *fakeTransferStore {
	return &fakeTransferStore{
		transfers: make(map[int64]*domain.StockTransfer),
		ledger:    make(map[ledgerKey]int),
	}
}

func (f *fakeTransferStore) seed(branchID, productID int64, qty int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ledger[ledgerKey{branchID, productID}] = qty
}

func (f *fakeTransferStore) stock(branchID, productID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledger[ledgerKey{branchID, productID}]
}

func (f *fakeTransferStore) CreateTransfer(ctx context.Context, req *domain.CreateTransferRequest) (*domain.StockTransfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	transfer := &domain.StockTransfer{
		ID:             f.seq,
		TransferNumber: fmt.Sprintf("TRF-20260831-%04d", f.seq),
		FromBranchID:   req.FromBranchID,
		ToBranchID:     req.ToBranchID,
		Status:         domain.TransferPending,
		RequestedBy:    req.RequestedBy,
		Notes:          req.Notes,
		CreatedAt:      time.Now(),
	}
	for i, line := range req.Items {
		transfer.Items = append(transfer.Items, domain.TransferItem{
			ID:                int64(i + 1),
			TransferID:        transfer.ID,
			ProductID:         line.ProductID,
			QuantityRequested: line.Quantity,
			UnitCost:          line.UnitCost,
		})
	}
	f.transfers[transfer.ID] = transfer
	return cloneTransfer(transfer), nil
}

func (f *fakeTransferStore) GetTransfer(ctx context.Context, id int64) (*domain.StockTransfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	transfer, ok := f.transfers[id]
	if !ok {
		return nil, domain.NotFoundf("transfer %d not found", id)
	}
	return cloneTransfer(transfer), nil
}

func (f *fakeTransferStore) ApplyTransition(ctx context.Context, update domain.TransferUpdate, deltas []domain.LedgerDelta) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	transfer, ok := f.transfers[update.ID]
	if !ok {
		return domain.NotFoundf("transfer %d not found", update.ID)
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

	f.applyDeltasLocked(deltas)
	return nil
}

func (f *fakeTransferStore) applyDeltasLocked(deltas []domain.LedgerDelta) {
	for _, d := range deltas {
		key := ledgerKey{d.BranchID, d.ProductID}
		qty, exists := f.ledger[key]
		if !exists {
			if d.Delta > 0 {
				f.ledger[key] = d.Delta
			}
			continue
		}
		next := qty + d.Delta
		if next < 0 {
			next = 0
		}
		f.ledger[key] = next
	}
}

func (f *fakeTransferStore) GetEntry(ctx context.Context, branchID, productID int64) (*domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	qty, ok := f.ledger[ledgerKey{branchID, productID}]
	if !ok {
		return nil, domain.NotFoundf("no inventory entry for branch %d, product %d", branchID, productID)
	}
	return &domain.LedgerEntry{BranchID: branchID, ProductID: productID, Quantity: qty, LastUpdated: time.Now()}, nil
}

func (f *fakeTransferStore) ApplyDeltas(ctx context.Context, deltas []domain.LedgerDelta) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applyDeltasLocked(deltas)
	return nil
}

func cloneTransfer(t *domain.StockTransfer) *domain.StockTransfer {
	copied := *t
	copied.Items = append([]domain.TransferItem(nil), t.Items...)
	return &copied
}

type fakeSalesRepo struct {
	lines []domain.SaleLine
}

var _ repository.SalesRepository = (*fakeSalesRepo)(nil)

func (f *fakeSalesRepo) SalesSince(ctx context.Context, cutoff time.Time, filter domain.SalesFilter) ([]domain.SaleLine, error) {
	return f.lines, nil
}

type fakeProductRepo struct {
	mu          sync.Mutex
	products    []*domain.Product
	getCalls    int
	savedPoints []domain.ReorderPoint
	savedAt     time.Time
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) GetProducts(ctx context.Context, filter domain.SalesFilter) ([]*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	return f.products, nil
}

func (f *fakeProductRepo) SaveReorderPoints(ctx context.Context, points []domain.ReorderPoint, calculatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedPoints = points
	f.savedAt = calculatedAt
	return nil
}

type fakePolicyRepo struct {
	policy domain.InventoryPolicy
}

var _ repository.PolicyRepository = (*fakePolicyRepo)(nil)

func (f *fakePolicyRepo) GetPolicy(ctx context.Context) (domain.InventoryPolicy, error) {
	return f.policy, nil
}

// countingCache wraps the report cache to observe hits, sets, and
// invalidations.
type countingCache struct {
	mu          sync.Mutex
	stored      map[string]*domain.ReplenishmentReport
	invalidated int
}

func newCountingCache() *countingCache {
	return &countingCache{stored: make(map[string]*domain.ReplenishmentReport)}
}

func cacheKey(filter domain.SalesFilter) string {
	key := "all"
	if filter.SupplierID != nil {
		key += fmt.Sprintf(":s%d", *filter.SupplierID)
	}
	if filter.ProductID != nil {
		key += fmt.Sprintf(":p%d", *filter.ProductID)
	}
	return key
}

func (c *countingCache) GetReport(ctx context.Context, filter domain.SalesFilter) (*domain.ReplenishmentReport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	report, ok := c.stored[cacheKey(filter)]
	return report, ok, nil
}

func (c *countingCache) SetReport(ctx context.Context, filter domain.SalesFilter, report *domain.ReplenishmentReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored[cacheKey(filter)] = report
	return nil
}

func (c *countingCache) InvalidateReports(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = make(map[string]*domain.ReplenishmentReport)
	c.invalidated++
	return nil
}
