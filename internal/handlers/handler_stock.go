package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/dto"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/middleware"
)

// stockHandler handles HTTP requests related to warehouse stock lots.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

// newStockHandler creates a new stockHandler.
func newStockHandler(stockService portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: stockService}
}

// consumeStock godoc
// @Summary Consume (sell) stock from a lot
// @Description Sells a carton quantity out of a lot, enforcing the warehouse-source rule
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   stockID path string true "Stock ID"
// @Param   consume body dto.ConsumeStockRequest true "Carton quantity"
// @Success 200 {object} dto.ConsumeStockResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Stock not found"
// @Failure 409 {object} map[string]string "Source rule violation or insufficient stock"
// @Router /stock/{stockID}/consume [post]
func (h *stockHandler) consumeStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockID := c.Param("stockID")

	req := dto.ConsumeStockRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ConsumeStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.stockService.ConsumeStock(c.Request.Context(), stockID, req.Cartons, domain.CartonType(req.CartonType), actorID)
	if err != nil {
		respondStockError(c, logger, err, "Failed to consume stock")
		return
	}

	c.JSON(http.StatusOK, dto.ConsumeStockResponse{
		Stock: dto.ToStockResponse(&result.Stock),
		Sale:  dto.ToSaleResponse(&result.Sale),
	})
}

// transferStock godoc
// @Summary Transfer stock from the FIRST to the FINAL warehouse
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   stockID path string true "Stock ID"
// @Param   transfer body dto.TransferStockRequest true "Transfer quantity in kg"
// @Success 200 {object} dto.TransferStockResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Stock not found"
// @Failure 409 {object} map[string]string "Source rule violation or insufficient stock"
// @Router /stock/{stockID}/transfer [post]
func (h *stockHandler) transferStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockID := c.Param("stockID")

	req := dto.TransferStockRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for TransferStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	quantity := domain.NewMoneyFromDecimal(req.QuantityKg, domain.UnitKilogram)
	result, err := h.stockService.TransferStock(c.Request.Context(), stockID, quantity, actorID)
	if err != nil {
		respondStockError(c, logger, err, "Failed to transfer stock")
		return
	}

	c.JSON(http.StatusOK, dto.TransferStockResponse{
		Source:      dto.ToStockResponse(&result.Source),
		Destination: dto.ToStockResponse(&result.Destination),
	})
}

// filterStock godoc
// @Summary Filter a stock lot
// @Description Reclassifies part of a lot's non-clean quantity as clean
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   stockID path string true "Stock ID"
// @Param   filter body dto.FilterStockRequest true "Clean quantity in kg"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Stock not found"
// @Failure 409 {object} map[string]string "Lot not awaiting filter"
// @Router /stock/{stockID}/filter [post]
func (h *stockHandler) filterStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockID := c.Param("stockID")

	req := dto.FilterStockRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for FilterStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cleanKg := domain.NewMoneyFromDecimal(req.CleanKg, domain.UnitKilogram)
	stock, err := h.stockService.FilterStock(c.Request.Context(), stockID, cleanKg, actorID)
	if err != nil {
		respondStockError(c, logger, err, "Failed to filter stock")
		return
	}

	c.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// assignGrade godoc
// @Summary Assign an approved inspection's grade to a lot
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   stockID path string true "Stock ID"
// @Param   grade body dto.AssignGradeRequest true "Approved inspection ID"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} map[string]string "Stock or inspection not found"
// @Failure 409 {object} map[string]string "Inspection not approved"
// @Router /stock/{stockID}/grade [post]
func (h *stockHandler) assignGrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockID := c.Param("stockID")

	req := dto.AssignGradeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AssignGrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stock, err := h.stockService.AssignGrade(c.Request.Context(), stockID, req.InspectionID, actorID)
	if err != nil {
		respondStockError(c, logger, err, "Failed to assign grade")
		return
	}

	c.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// validateReturn godoc
// @Summary Validate a stock return against its originating sale
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   return body dto.ValidateReturnRequest true "Sale and return warehouse"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Return warehouse mismatch"
// @Router /returns/validate [post]
func (h *stockHandler) validateReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.ValidateReturnRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ValidateReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.stockService.ValidateReturn(c.Request.Context(), req.SaleID, domain.WarehouseType(req.ReturnWarehouse))
	if err != nil {
		respondStockError(c, logger, err, "Failed to validate return")
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// getStock godoc
// @Summary Get a stock lot
// @Tags stock
// @Produce  json
// @Param   stockID path string true "Stock ID"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} map[string]string "Stock not found"
// @Router /stock/{stockID} [get]
func (h *stockHandler) getStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockID := c.Param("stockID")

	stock, err := h.stockService.GetStockByID(c.Request.Context(), stockID)
	if err != nil {
		respondStockError(c, logger, err, "Failed to retrieve stock")
		return
	}

	c.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// listStock godoc
// @Summary List stock lots
// @Tags stock
// @Produce  json
// @Param   warehouseType query string false "FIRST or FINAL"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListStockResponse
// @Router /stock [get]
func (h *stockHandler) listStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var warehouseType *domain.WarehouseType
	if wt := c.Query("warehouseType"); wt != "" {
		parsed := domain.WarehouseType(wt)
		if !parsed.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "warehouseType must be FIRST or FINAL"})
			return
		}
		warehouseType = &parsed
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	stocks, newToken, err := h.stockService.ListStock(c.Request.Context(), warehouseType, limit, nextToken)
	if err != nil {
		logger.Error("Failed to list stock", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock"})
		return
	}

	c.JSON(http.StatusOK, dto.ListStockResponse{
		Stock:     dto.ToStockResponses(stocks),
		NextToken: newToken,
	})
}

func respondStockError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrStockNotFound),
		errors.Is(err, services.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnitMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInventorySourceViolation),
		errors.Is(err, services.ErrReturnWarehouseMismatch),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInspectionStateViolation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		respondAppError(c, logger, err, fallback)
	}
}

// registerStockRoutes registers warehouse stock lifecycle routes.
func registerStockRoutes(group *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)
	stock := group.Group("/stock")
	{
		stock.GET("", h.listStock)
		stock.GET("/:stockID", h.getStock)
		stock.POST("/:stockID/consume", h.consumeStock)
		stock.POST("/:stockID/transfer", h.transferStock)
		stock.POST("/:stockID/filter", h.filterStock)
		stock.POST("/:stockID/grade", h.assignGrade)
	}
	// registered outside the /stock group so the static segment does not
	// collide with the :stockID wildcard
	group.POST("/returns/validate", h.validateReturn)
}
