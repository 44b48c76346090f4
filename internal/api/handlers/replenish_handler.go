package handlers

import (
	"net/http"
	"strconv"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/ardiwinata/posbranch/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ReplenishHandler struct {
	service *service.ReplenishService
}

func NewReplenishHandler(service *service.ReplenishService) *ReplenishHandler {
	return &ReplenishHandler{service: service}
}

type recalculateRequest struct {
	SupplierID *int64 `json:"supplier_id"`
	ProductID  *int64 `json:"product_id"`
}

// Recalculate reruns the reorder math, optionally narrowed to one supplier
// or product. Always returns partial results plus the skipped list.
func (h *ReplenishHandler) Recalculate(c *gin.Context) {
	var req recalculateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	result, err := h.service.Recalculate(c.Request.Context(), domain.SalesFilter{
		SupplierID: req.SupplierID,
		ProductID:  req.ProductID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products_updated":           result.ProductsUpdated,
		"reorder_points":             result.ReorderPoints,
		"low_stock_alerts":           result.Report.Alerts,
		"purchase_order_suggestions": result.Report.BySupplier,
		"skipped":                    result.Skipped,
	})
}

// Report serves the current low-stock report.
func (h *ReplenishHandler) Report(c *gin.Context) {
	filter := domain.SalesFilter{}
	if raw := c.Query("supplier_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier_id"})
			return
		}
		filter.SupplierID = &id
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}
		filter.ProductID = &id
	}

	report, err := h.service.Report(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
