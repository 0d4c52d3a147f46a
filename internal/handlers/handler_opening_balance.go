package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kasapp/cashledger/internal/apperrors"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/dto"
	"github.com/kasapp/cashledger/internal/middleware"
)

// openingBalanceHandler handles HTTP requests related to opening balances.
type openingBalanceHandler struct {
	openingBalanceService portssvc.OpeningBalanceSvcFacade
}

func newOpeningBalanceHandler(obs portssvc.OpeningBalanceSvcFacade) *openingBalanceHandler {
	return &openingBalanceHandler{
		openingBalanceService: obs,
	}
}

// registerOpeningBalanceRoutes registers routes related to opening balances.
func registerOpeningBalanceRoutes(rg *gin.RouterGroup, openingBalanceService portssvc.OpeningBalanceSvcFacade) {
	h := newOpeningBalanceHandler(openingBalanceService)

	balances := rg.Group("/opening-balances")
	{
		balances.POST("", h.setOpeningBalance)
		balances.GET("", h.listOpeningBalances)
		balances.GET("/:branchID/:currencyCode", h.getOpeningBalance)
		balances.PUT("/:id", h.updateOpeningBalance)
	}
}

func (h *openingBalanceHandler) setOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetOpeningBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ob, err := h.openingBalanceService.SetOpeningBalance(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Opening balance already exists for this branch and currency"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set opening balance in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set opening balance"})
		}
		return
	}

	logger.Info("Opening balance set",
		slog.String("branch_id", ob.BranchID),
		slog.String("currency_code", ob.CurrencyCode))
	c.JSON(http.StatusCreated, dto.ToOpeningBalanceResponse(ob))
}

func (h *openingBalanceHandler) getOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")
	currencyCode := strings.ToUpper(c.Param("currencyCode"))

	ob, err := h.openingBalanceService.GetOpeningBalance(c.Request.Context(), branchID, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Opening balance not found"})
		} else {
			logger.Error("Failed to get opening balance from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve opening balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOpeningBalanceResponse(ob))
}

func (h *openingBalanceHandler) listOpeningBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var branchID *string
	if v := c.Query("branchID"); v != "" {
		branchID = &v
	}

	balances, err := h.openingBalanceService.ListOpeningBalances(c.Request.Context(), branchID)
	if err != nil {
		logger.Error("Failed to list opening balances from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list opening balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListOpeningBalanceResponse(balances))
}

func (h *openingBalanceHandler) updateOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	openingBalanceID := c.Param("id")

	var req dto.UpdateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOpeningBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ob, err := h.openingBalanceService.UpdateOpeningBalance(c.Request.Context(), openingBalanceID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Opening balance not found"})
		} else if errors.Is(err, apperrors.ErrOpeningBalanceLocked) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update opening balance in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update opening balance"})
		}
		return
	}

	logger.Info("Opening balance updated", slog.String("opening_balance_id", openingBalanceID))
	c.JSON(http.StatusOK, dto.ToOpeningBalanceResponse(ob))
}
