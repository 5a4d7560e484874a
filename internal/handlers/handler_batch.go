package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/dto"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/middleware"
)

// batchHandler handles HTTP requests related to warehouse batches.
type batchHandler struct {
	batchService portssvc.BatchSvcFacade
}

// newBatchHandler creates a new batchHandler.
func newBatchHandler(batchService portssvc.BatchSvcFacade) *batchHandler {
	return &batchHandler{batchService: batchService}
}

// splitBatch godoc
// @Summary Split a batch
// @Description Carves a quantity out of a batch into a new descendant batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Param   split body dto.SplitBatchRequest true "Split quantity"
// @Success 200 {object} dto.SplitBatchResponse
// @Failure 400 {object} map[string]string "Invalid request or split quantity"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch inactive"
// @Router /batches/{batchID}/split [post]
func (h *batchHandler) splitBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	req := dto.SplitBatchRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for SplitBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	splitKg := domain.NewMoneyFromDecimal(req.SplitKg, domain.UnitKilogram)
	result, err := h.batchService.SplitBatch(c.Request.Context(), batchID, splitKg, actorID)
	if err != nil {
		respondBatchError(c, logger, err, "Failed to split batch")
		return
	}

	c.JSON(http.StatusOK, dto.SplitBatchResponse{
		Original:   dto.ToBatchResponse(&result.Original),
		Descendant: dto.ToBatchResponse(&result.Descendant),
	})
}

// mergeBatches godoc
// @Summary Merge batches
// @Description Combines active batches of one supplier and grade into a new batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   merge body dto.MergeBatchesRequest true "Batch IDs to merge"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Incompatible batches"
// @Router /batches/merge [post]
func (h *batchHandler) mergeBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.MergeBatchesRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for MergeBatches", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	merged, err := h.batchService.MergeBatches(c.Request.Context(), req.BatchIDs, actorID)
	if err != nil {
		respondBatchError(c, logger, err, "Failed to merge batches")
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(merged))
}

// getBatch godoc
// @Summary Get a batch
// @Tags batches
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Router /batches/{batchID} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	batch, err := h.batchService.GetBatchByID(c.Request.Context(), batchID)
	if err != nil {
		respondBatchError(c, logger, err, "Failed to retrieve batch")
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// listBatches godoc
// @Summary List active batches for one supplier and grade
// @Tags batches
// @Produce  json
// @Param   supplierID query string true "Supplier ID"
// @Param   grade query string true "Quality grade"
// @Success 200 {array} dto.BatchResponse
// @Router /batches [get]
func (h *batchHandler) listBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	supplierID := c.Query("supplierID")
	grade := c.Query("grade")
	if supplierID == "" || grade == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplierID and grade query parameters are required"})
		return
	}

	batches, err := h.batchService.ListActiveBatchesBySupplierAndGrade(c.Request.Context(), supplierID, grade)
	if err != nil {
		logger.Error("Failed to list batches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list batches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponses(batches))
}

func respondBatchError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrBatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidSplitQuantity),
		errors.Is(err, services.ErrMergeMinBatches),
		errors.Is(err, domain.ErrUnitMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrIncompatibleMerge):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		respondAppError(c, logger, err, fallback)
	}
}

// registerBatchRoutes registers batch split/merge and lineage routes.
func registerBatchRoutes(group *gin.RouterGroup, batchService portssvc.BatchSvcFacade) {
	h := newBatchHandler(batchService)
	batches := group.Group("/batches")
	{
		batches.GET("", h.listBatches)
		batches.GET("/:batchID", h.getBatch)
		batches.POST("/:batchID/split", h.splitBatch)
		batches.POST("/merge", h.mergeBatches)
	}
}
