package handlers

import (
	"net/http"
	"strconv"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/ardiwinata/posbranch/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type TransferHandler struct {
	service *service.TransferService
}

func NewTransferHandler(service *service.TransferService) *TransferHandler {
	return &TransferHandler{service: service}
}

func (h *TransferHandler) Create(c *gin.Context) {
	var req domain.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	transfer, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transfer)
}

func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := transferID(c)
	if !ok {
		return
	}

	transfer, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, transfer)
}

type transitionBody struct {
	Action     string `json:"action"`
	ApprovedBy string `json:"approved_by"`
}

func (h *TransferHandler) Transition(c *gin.Context) {
	id, ok := transferID(c)
	if !ok {
		return
	}

	var body transitionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	action, ok := domain.ParseTransferAction(body.Action)
	if !ok {
		writeError(c, domain.Invalidf("unknown transfer action %q", body.Action))
		return
	}

	transfer, err := h.service.Transition(c.Request.Context(), id, &domain.TransitionRequest{
		Action:     action,
		ApprovedBy: body.ApprovedBy,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transfer_number": transfer.TransferNumber,
		"new_status":      transfer.Status,
	})
}

func (h *TransferHandler) BranchStock(c *gin.Context) {
	branchID, err := strconv.ParseInt(c.Param("branch_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch id"})
		return
	}
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	entry, err := h.service.BranchStock(c.Request.Context(), branchID, productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

type adjustmentBody struct {
	Adjustments []domain.LedgerDelta `json:"adjustments"`
}

func (h *TransferHandler) Adjust(c *gin.Context) {
	var body adjustmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.AdjustStock(c.Request.Context(), body.Adjustments); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"adjusted": len(body.Adjustments)})
}

func transferID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transfer id"})
		return 0, false
	}
	return id, true
}

// writeError maps the domain error taxonomy onto HTTP statuses. Untyped
// errors are storage failures and stay opaque to the caller.
func writeError(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
