package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSuggestionsCSV(t *testing.T) {
	supplierID := int64(7)
	report := &domain.ReplenishmentReport{
		GeneratedAt: time.Now(),
		BySupplier: map[string]domain.SupplierSuggestion{
			"7": {
				SupplierKey:  "7",
				SupplierName: "Acme",
				Lines: []domain.LowStockAlert{
					{ProductID: 1, SKU: "SKU-001", Name: "Widget", CurrentStock: 4, ReorderLevel: 20, ReorderQuantity: 50, SupplierID: &supplierID, SupplierSKU: "AC-1", SupplierPrice: 2.5, DaysUntilStockout: 3, Priority: domain.PriorityCritical},
				},
			},
			"unknown": {
				SupplierKey:  "unknown",
				SupplierName: "Unknown supplier",
				Lines: []domain.LowStockAlert{
					{ProductID: 2, SKU: "SKU-002", Name: "Gadget", CurrentStock: 1, ReorderLevel: 5, ReorderQuantity: 10, DaysUntilStockout: 999, Priority: domain.PriorityMedium},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "suggestions.csv")
	require.NoError(t, WriteSuggestionsCSV(path, report))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3) // header + two lines
	assert.Equal(t, "Supplier", records[0][0])
	// suppliers come out in sorted key order: "7" before "unknown"
	assert.Equal(t, "Acme", records[1][0])
	assert.Equal(t, "SKU-001", records[1][2])
	assert.Equal(t, "2.50", records[1][7])
	assert.Equal(t, "Unknown supplier", records[2][0])
	assert.Equal(t, "999", records[2][8])
}
