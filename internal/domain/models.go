// backend-go/internal/domain/models.go
package domain

import "time"

// Product carries the replenishment profile for a single SKU.
// CurrentStock is the authoritative total on-hand quantity across branches;
// ReorderLevel and ReorderQuantity are only ever written by the reorder
// calculator.
type Product struct {
	ID                int64      `json:"id" db:"id"`
	SKU               string     `json:"sku" db:"sku"`
	Name              string     `json:"name" db:"name"`
	CurrentStock      int        `json:"current_stock" db:"current_stock"`
	ReorderLevel      int        `json:"reorder_level" db:"reorder_level"`
	ReorderQuantity   int        `json:"reorder_quantity" db:"reorder_quantity"`
	LeadTimeDays      *int       `json:"lead_time_days" db:"lead_time_days"`
	SupplierID        *int64     `json:"supplier_id" db:"supplier_id"`
	SupplierName      string     `json:"supplier_name" db:"supplier_name"`
	SupplierSKU       string     `json:"supplier_sku" db:"supplier_sku"`
	SupplierPrice     float64    `json:"supplier_price" db:"supplier_price"`
	SupplierLeadTime  *int       `json:"supplier_lead_time" db:"supplier_lead_time"`
	AverageDailySales float64    `json:"average_daily_sales" db:"average_daily_sales"`
	LastReorderCalc   *time.Time `json:"last_reorder_calc" db:"last_reorder_calc"`
}

// InventoryPolicy holds the global replenishment defaults. It is resolved once
// per recalculation run and passed down as an immutable value.
type InventoryPolicy struct {
	SafetyStockDays     int     `json:"safety_stock_days" db:"safety_stock_days"`
	DefaultLeadTimeDays int     `json:"default_lead_time_days" db:"default_lead_time_days"`
	ServiceLevel        float64 `json:"service_level" db:"service_level"`
}

// DefaultInventoryPolicy is used when no policy record exists.
func DefaultInventoryPolicy() InventoryPolicy {
	return InventoryPolicy{
		SafetyStockDays:     7,
		DefaultLeadTimeDays: 3,
		ServiceLevel:        0.95,
	}
}

// SaleLine is a read-only sales history record.
type SaleLine struct {
	ProductID  int64     `json:"product_id" db:"product_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}

// SalesFilter narrows the demand window to one supplier or one product.
type SalesFilter struct {
	SupplierID *int64
	ProductID  *int64
}

// ReorderPoint is the calculator output for one product.
type ReorderPoint struct {
	ProductID         int64   `json:"product_id"`
	SKU               string  `json:"sku"`
	AverageDailySales float64 `json:"average_daily_sales"`
	ReorderLevel      int     `json:"reorder_level"`
	ReorderQuantity   int     `json:"reorder_quantity"`
	LeadTimeDays      int     `json:"lead_time_days"`
}

// SkippedProduct reports a product whose calculation failed during a batch
// recalculation. The batch continues past it.
type SkippedProduct struct {
	ProductID int64  `json:"product_id"`
	Reason    string `json:"reason"`
}

// LowStockAlert flags a product below its reorder level.
type LowStockAlert struct {
	ProductID         int64   `json:"product_id"`
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	CurrentStock      int     `json:"current_stock"`
	ReorderLevel      int     `json:"reorder_level"`
	ReorderQuantity   int     `json:"reorder_quantity"`
	AverageDailySales float64 `json:"average_daily_sales"`
	DaysUntilStockout int     `json:"days_until_stockout"`
	LeadTimeDays      int     `json:"lead_time_days"`
	NeedsReorder      bool    `json:"needs_reorder"`
	Priority          string  `json:"priority"`
	SupplierID        *int64  `json:"supplier_id"`
	SupplierName      string  `json:"supplier_name"`
	SupplierSKU       string  `json:"supplier_sku"`
	SupplierPrice     float64 `json:"supplier_price"`
}

// Alert priorities ordered from most to least urgent.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
)

// SupplierSuggestion groups suggested purchase lines under one supplier.
// Products without a linked supplier fall into the "unknown" bucket.
type SupplierSuggestion struct {
	SupplierKey  string          `json:"supplier_key"`
	SupplierName string          `json:"supplier_name"`
	Lines        []LowStockAlert `json:"lines"`
}

// ReplenishmentReport is the full low-stock picture built from current
// thresholds. It is derived read-only; building it never writes.
type ReplenishmentReport struct {
	GeneratedAt    time.Time                     `json:"generated_at"`
	LowStockCount  int                           `json:"low_stock_count"`
	CriticalAlerts int                           `json:"critical_alerts"`
	Alerts         []LowStockAlert               `json:"alerts"`
	BySupplier     map[string]SupplierSuggestion `json:"by_supplier"`
}

// RecalculationResult is the outcome of one recalculation batch.
type RecalculationResult struct {
	ProductsUpdated int                  `json:"products_updated"`
	ReorderPoints   []ReorderPoint       `json:"reorder_points"`
	Skipped         []SkippedProduct     `json:"skipped,omitempty"`
	Report          *ReplenishmentReport `json:"report"`
}

// LedgerEntry is the stock record for one product at one branch. Quantity is
// floor-clamped at zero and the entry is created lazily on the first positive
// delta.
type LedgerEntry struct {
	BranchID      int64     `json:"branch_id" db:"branch_id"`
	ProductID     int64     `json:"product_id" db:"product_id"`
	Quantity      int       `json:"quantity" db:"quantity"`
	MinStockLevel int       `json:"min_stock_level" db:"min_stock_level"`
	MaxStockLevel int       `json:"max_stock_level" db:"max_stock_level"`
	LastUpdated   time.Time `json:"last_updated" db:"last_updated"`
}

// LedgerDelta is one signed quantity adjustment against a (branch, product)
// ledger entry. Deltas for the same pair must be summed before applying.
type LedgerDelta struct {
	BranchID  int64 `json:"branch_id"`
	ProductID int64 `json:"product_id"`
	Delta     int   `json:"delta"`
}

// StockTransfer moves inventory between two branches.
type StockTransfer struct {
	ID             int64          `json:"id" db:"id"`
	TransferNumber string         `json:"transfer_number" db:"transfer_number"`
	FromBranchID   int64          `json:"from_branch_id" db:"from_branch_id"`
	ToBranchID     int64          `json:"to_branch_id" db:"to_branch_id"`
	Status         TransferStatus `json:"status" db:"status"`
	RequestedBy    string         `json:"requested_by" db:"requested_by"`
	ApprovedBy     string         `json:"approved_by" db:"approved_by"`
	Notes          string         `json:"notes" db:"notes"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	ShippedAt      *time.Time     `json:"shipped_at" db:"shipped_at"`
	ReceivedAt     *time.Time     `json:"received_at" db:"received_at"`
	Items          []TransferItem `json:"items" db:"-"`
}

// TransferItem is one product line inside a transfer. QuantityRequested is
// frozen once the transfer exists and is reused unchanged for the receive or
// the compensating cancel.
type TransferItem struct {
	ID                int64   `json:"id" db:"id"`
	TransferID        int64   `json:"transfer_id" db:"transfer_id"`
	ProductID         int64   `json:"product_id" db:"product_id"`
	QuantityRequested int     `json:"quantity_requested" db:"quantity_requested"`
	UnitCost          float64 `json:"unit_cost" db:"unit_cost"`
}

// CreateTransferRequest is the input for opening a new transfer.
type CreateTransferRequest struct {
	FromBranchID int64                `json:"from_branch_id"`
	ToBranchID   int64                `json:"to_branch_id"`
	RequestedBy  string               `json:"requested_by"`
	Notes        string               `json:"notes"`
	Items        []CreateTransferItem `json:"items"`
}

// CreateTransferItem is one requested line of a new transfer.
type CreateTransferItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
}

// TransitionRequest asks for one state-machine action on a transfer.
type TransitionRequest struct {
	Action     TransferAction `json:"action"`
	ApprovedBy string         `json:"approved_by"`
}

// TransferUpdate is the storage-level write of one transition: the new status,
// whichever timestamp the transition stamps, and the approver when recorded.
// Nil pointer fields are left untouched.
type TransferUpdate struct {
	ID         int64
	Status     TransferStatus
	ApprovedBy *string
	ShippedAt  *time.Time
	ReceivedAt *time.Time
}
