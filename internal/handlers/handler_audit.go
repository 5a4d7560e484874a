package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/dto"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/middleware"
)

// auditHandler exposes the read side of the audit ledger to compliance
// consumers. There is no write surface; entries are recorded only by the
// services that mutate entities.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(auditService portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: auditService}
}

// getEntry godoc
// @Summary Get a single audit entry
// @Tags audit
// @Produce  json
// @Param   auditID path string true "Audit entry ID"
// @Success 200 {object} dto.AuditEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /audit/{auditID} [get]
func (h *auditHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	auditID := c.Param("auditID")

	entry, err := h.auditService.GetEntryByID(c.Request.Context(), auditID)
	if err != nil {
		respondAppError(c, logger, err, "Failed to retrieve audit entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditEntryResponse(entry))
}

// verifyEntry godoc
// @Summary Verify an audit entry's checksum
// @Description Recomputes the checksum from the stored fields and reports whether it matches
// @Tags audit
// @Produce  json
// @Param   auditID path string true "Audit entry ID"
// @Success 200 {object} dto.VerifyAuditEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /audit/{auditID}/verify [get]
func (h *auditHandler) verifyEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	auditID := c.Param("auditID")

	entry, valid, err := h.auditService.VerifyEntry(c.Request.Context(), auditID)
	if err != nil {
		respondAppError(c, logger, err, "Failed to verify audit entry")
		return
	}

	if !valid {
		logger.Warn("Audit entry failed checksum verification", slog.String("audit_id", auditID))
	}
	c.JSON(http.StatusOK, dto.VerifyAuditEntryResponse{
		Entry: dto.ToAuditEntryResponse(entry),
		Valid: valid,
	})
}

// listEntries godoc
// @Summary List audit entries
// @Description Filters by entity, actor, correlation or date range; exactly one filter set applies
// @Tags audit
// @Produce  json
// @Param   entityType query string false "Entity type (with entityID)"
// @Param   entityID query string false "Entity ID (with entityType)"
// @Param   actorID query string false "Actor ID"
// @Param   correlationID query string false "Correlation ID"
// @Param   from query string false "RFC3339 range start (with to)"
// @Param   to query string false "RFC3339 range end (with from)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListAuditEntriesResponse
// @Router /audit [get]
func (h *auditHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	switch {
	case c.Query("correlationID") != "":
		entries, err := h.auditService.ListEntriesByCorrelation(ctx, c.Query("correlationID"))
		if err != nil {
			respondAppError(c, logger, err, "Failed to list audit entries")
			return
		}
		c.JSON(http.StatusOK, dto.ListAuditEntriesResponse{Entries: dto.ToAuditEntryResponses(entries)})

	case c.Query("entityType") != "" && c.Query("entityID") != "":
		entries, newToken, err := h.auditService.ListEntriesByEntity(ctx, c.Query("entityType"), c.Query("entityID"), limit, nextToken)
		if err != nil {
			respondAppError(c, logger, err, "Failed to list audit entries")
			return
		}
		c.JSON(http.StatusOK, dto.ListAuditEntriesResponse{Entries: dto.ToAuditEntryResponses(entries), NextToken: newToken})

	case c.Query("actorID") != "":
		entries, newToken, err := h.auditService.ListEntriesByActor(ctx, c.Query("actorID"), limit, nextToken)
		if err != nil {
			respondAppError(c, logger, err, "Failed to list audit entries")
			return
		}
		c.JSON(http.StatusOK, dto.ListAuditEntriesResponse{Entries: dto.ToAuditEntryResponses(entries), NextToken: newToken})

	case c.Query("from") != "" && c.Query("to") != "":
		from, errFrom := time.Parse(time.RFC3339, c.Query("from"))
		to, errTo := time.Parse(time.RFC3339, c.Query("to"))
		if errFrom != nil || errTo != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be RFC3339 timestamps"})
			return
		}
		entries, newToken, err := h.auditService.ListEntriesByDateRange(ctx, from, to, limit, nextToken)
		if err != nil {
			respondAppError(c, logger, err, "Failed to list audit entries")
			return
		}
		c.JSON(http.StatusOK, dto.ListAuditEntriesResponse{Entries: dto.ToAuditEntryResponses(entries), NextToken: newToken})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of correlationID, entityType+entityID, actorID or from+to is required"})
	}
}

// registerAuditRoutes registers the audit ledger read routes.
func registerAuditRoutes(group *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)
	audit := group.Group("/audit")
	{
		audit.GET("", h.listEntries)
		audit.GET("/:auditID", h.getEntry)
		audit.GET("/:auditID/verify", h.verifyEntry)
	}
}
