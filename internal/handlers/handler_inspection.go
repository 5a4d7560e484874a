package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/dto"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/middleware"
)

// inspectionHandler handles HTTP requests related to quality inspections.
type inspectionHandler struct {
	inspectionService portssvc.InspectionSvcFacade
}

// newInspectionHandler creates a new inspectionHandler.
func newInspectionHandler(inspectionService portssvc.InspectionSvcFacade) *inspectionHandler {
	return &inspectionHandler{inspectionService: inspectionService}
}

// createInspection godoc
// @Summary Open a pending inspection against a batch
// @Tags inspections
// @Accept  json
// @Produce  json
// @Param   inspection body dto.CreateInspectionRequest true "Target batch"
// @Success 201 {object} dto.InspectionResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Router /inspections [post]
func (h *inspectionHandler) createInspection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateInspectionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateInspection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inspection, err := h.inspectionService.CreateInspection(c.Request.Context(), req.BatchID, actorID)
	if err != nil {
		respondInspectionError(c, logger, err, "Failed to create inspection")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInspectionResponse(inspection))
}

// completeInspection godoc
// @Summary Record the lab result on a pending inspection
// @Tags inspections
// @Accept  json
// @Produce  json
// @Param   inspectionID path string true "Inspection ID"
// @Param   result body dto.CompleteInspectionRequest true "Grade, score and test results"
// @Success 200 {object} dto.InspectionResponse
// @Failure 404 {object} map[string]string "Inspection not found"
// @Failure 409 {object} map[string]string "Inspection not pending"
// @Router /inspections/{inspectionID}/complete [post]
func (h *inspectionHandler) completeInspection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	inspectionID := c.Param("inspectionID")

	req := dto.CompleteInspectionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CompleteInspection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inspection, err := h.inspectionService.CompleteInspection(c.Request.Context(), inspectionID, req.Grade, req.Score, req.TestResults, actorID)
	if err != nil {
		respondInspectionError(c, logger, err, "Failed to complete inspection")
		return
	}

	c.JSON(http.StatusOK, dto.ToInspectionResponse(inspection))
}

// approveInspection godoc
// @Summary Approve a completed inspection's result
// @Tags inspections
// @Produce  json
// @Param   inspectionID path string true "Inspection ID"
// @Success 200 {object} dto.InspectionResponse
// @Failure 404 {object} map[string]string "Inspection not found"
// @Failure 409 {object} map[string]string "Inspection not completed"
// @Router /inspections/{inspectionID}/approve [post]
func (h *inspectionHandler) approveInspection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	inspectionID := c.Param("inspectionID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inspection, err := h.inspectionService.ApproveInspection(c.Request.Context(), inspectionID, actorID)
	if err != nil {
		respondInspectionError(c, logger, err, "Failed to approve inspection")
		return
	}

	c.JSON(http.StatusOK, dto.ToInspectionResponse(inspection))
}

// rejectInspection godoc
// @Summary Reject a completed inspection's result
// @Tags inspections
// @Accept  json
// @Produce  json
// @Param   inspectionID path string true "Inspection ID"
// @Param   rejection body dto.RejectInspectionRequest true "Rejection reason"
// @Success 200 {object} dto.InspectionResponse
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 404 {object} map[string]string "Inspection not found"
// @Failure 409 {object} map[string]string "Inspection not completed"
// @Router /inspections/{inspectionID}/reject [post]
func (h *inspectionHandler) rejectInspection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	inspectionID := c.Param("inspectionID")

	req := dto.RejectInspectionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for RejectInspection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inspection, err := h.inspectionService.RejectInspection(c.Request.Context(), inspectionID, req.Reason, actorID)
	if err != nil {
		respondInspectionError(c, logger, err, "Failed to reject inspection")
		return
	}

	c.JSON(http.StatusOK, dto.ToInspectionResponse(inspection))
}

// getInspection godoc
// @Summary Get an inspection
// @Tags inspections
// @Produce  json
// @Param   inspectionID path string true "Inspection ID"
// @Success 200 {object} dto.InspectionResponse
// @Failure 404 {object} map[string]string "Inspection not found"
// @Router /inspections/{inspectionID} [get]
func (h *inspectionHandler) getInspection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	inspectionID := c.Param("inspectionID")

	inspection, err := h.inspectionService.GetInspectionByID(c.Request.Context(), inspectionID)
	if err != nil {
		respondInspectionError(c, logger, err, "Failed to retrieve inspection")
		return
	}

	c.JSON(http.StatusOK, dto.ToInspectionResponse(inspection))
}

// listInspectionsByBatch godoc
// @Summary List a batch's inspections
// @Tags inspections
// @Produce  json
// @Param   batchID query string true "Batch ID"
// @Success 200 {array} dto.InspectionResponse
// @Router /inspections [get]
func (h *inspectionHandler) listInspectionsByBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	batchID := c.Query("batchID")
	if batchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batchID query parameter is required"})
		return
	}

	inspections, err := h.inspectionService.ListInspectionsByBatch(c.Request.Context(), batchID)
	if err != nil {
		logger.Error("Failed to list inspections", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inspections"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInspectionResponses(inspections))
}

func respondInspectionError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInspectionNotFound),
		errors.Is(err, services.ErrBatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRejectionReasonRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInspectionStateViolation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		respondAppError(c, logger, err, fallback)
	}
}

// registerInspectionRoutes registers the quality inspection workflow routes.
func registerInspectionRoutes(group *gin.RouterGroup, inspectionService portssvc.InspectionSvcFacade) {
	h := newInspectionHandler(inspectionService)
	inspections := group.Group("/inspections")
	{
		inspections.GET("", h.listInspectionsByBatch)
		inspections.POST("", h.createInspection)
		inspections.GET("/:inspectionID", h.getInspection)
		inspections.POST("/:inspectionID/complete", h.completeInspection)
		inspections.POST("/:inspectionID/approve", h.approveInspection)
		inspections.POST("/:inspectionID/reject", h.rejectInspection)
	}
}
