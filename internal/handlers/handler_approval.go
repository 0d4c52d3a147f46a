package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kasapp/cashledger/internal/apperrors"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/dto"
	"github.com/kasapp/cashledger/internal/middleware"
)

// approvalHandler handles HTTP requests for the approval workflow.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{
		approvalService: as,
	}
}

// RegisterApprovalRoutes registers routes for the approval workflow.
func RegisterApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approvalService)

	approvals := rg.Group("/approvals")
	{
		approvals.GET("/pending", h.listPending)
		approvals.GET("/resolve", h.resolveByReference)
		approvals.POST("/scan", h.approveByReference)
		approvals.POST("/:id/approve", h.approve)
		approvals.POST("/:id/reject", h.reject)
	}
}

// scanRequest carries a full reference read from a printed slip.
type scanRequest struct {
	FullReference string `json:"fullReference" binding:"required,fullreference"`
}

func approverFromContext(c *gin.Context) (portssvc.Approver, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return portssvc.Approver{}, false
	}
	return portssvc.Approver{
		UserID:     userID,
		CanApprove: middleware.GetCanApproveFromContext(c),
	}, true
}

func (h *approvalHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	pending, err := h.approvalService.ListPendingTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list pending transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(pending))
}

func (h *approvalHandler) resolveByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fullReference := c.Query("fullReference")
	if fullReference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fullReference query parameter is required"})
		return
	}

	txn, err := h.approvalService.ResolveByFullReference(c.Request.Context(), fullReference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No transaction matches this reference"})
		} else {
			logger.Error("Failed to resolve full reference", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve reference"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *approvalHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	approver, ok := approverFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.approvalService.ApproveTransaction(c.Request.Context(), transactionID, approver)
	if err != nil {
		h.respondDecisionError(c, logger, err, "approve")
		return
	}

	logger.Info("Transaction approved",
		slog.String("transaction_id", transactionID),
		slog.String("approved_by", approver.UserID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *approvalHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	approver, ok := approverFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.approvalService.RejectTransaction(c.Request.Context(), transactionID, approver)
	if err != nil {
		h.respondDecisionError(c, logger, err, "reject")
		return
	}

	logger.Info("Transaction rejected",
		slog.String("transaction_id", transactionID),
		slog.String("rejected_by", approver.UserID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *approvalHandler) approveByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for scan approval", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	approver, ok := approverFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.approvalService.ApproveByFullReference(c.Request.Context(), req.FullReference, approver)
	if err != nil {
		h.respondDecisionError(c, logger, err, "approve by reference")
		return
	}

	logger.Info("Transaction approved by scanned reference",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("approved_by", approver.UserID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *approvalHandler) respondDecisionError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Approval capability required"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, apperrors.ErrAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPeriodClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPartialApprovalConflict):
		logger.Error("Transfer legs found in inconsistent states", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
