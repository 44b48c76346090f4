// backend-go/internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
)

// WriteSuggestionsCSV renders the purchase-order suggestion lines of a
// report to path, grouped by supplier. Suppliers and lines keep a stable
// order so re-exports of the same report diff cleanly.
func WriteSuggestionsCSV(path string, report *domain.ReplenishmentReport) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Supplier", "Supplier SKU", "SKU", "Product", "Current Stock", "Reorder Level", "Suggested Qty", "Unit Price", "Days Until Stockout", "Priority"}
	if err := writer.Write(header); err != nil {
		return err
	}

	keys := make([]string, 0, len(report.BySupplier))
	for key := range report.BySupplier {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		suggestion := report.BySupplier[key]
		for _, line := range suggestion.Lines {
			record := []string{
				suggestion.SupplierName,
				line.SupplierSKU,
				line.SKU,
				line.Name,
				fmt.Sprintf("%d", line.CurrentStock),
				fmt.Sprintf("%d", line.ReorderLevel),
				fmt.Sprintf("%d", line.ReorderQuantity),
				fmt.Sprintf("%.2f", line.SupplierPrice),
				fmt.Sprintf("%d", line.DaysUntilStockout),
				line.Priority,
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	return writer.Error()
}
