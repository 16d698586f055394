package handler

import (
	"log/slog"
	"net/http"

	"github.com/ewaste-kiosk-backend/internal/api/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the dashboard and reporting endpoints
type AdminHandler struct {
	reportingService service.ReportingService
	logger           *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(logger *slog.Logger, reportingService service.ReportingService) *AdminHandler {
	return &AdminHandler{
		reportingService: reportingService,
		logger:           logger,
	}
}

// Stats returns the dashboard headline numbers
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.reportingService.AdminStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load admin stats", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, stats)
}

// Users returns paginated non-admin accounts
func (h *AdminHandler) Users(c *gin.Context) {
	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	users, total, err := h.reportingService.ListUsers(c.Request.Context(), params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		RespondInternalError(c)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, mapUserToResponse(u))
	}
	RespondWithPaginatedData(c, http.StatusOK, out, params.Page, params.PerPage, int(total))
}

// Ewaste returns paginated earn entries across all accounts
func (h *AdminHandler) Ewaste(c *gin.Context) {
	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	entries, total, err := h.reportingService.EarnEntries(c.Request.Context(), params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to list earn entries", "error", err)
		RespondInternalError(c)
		return
	}

	RespondWithPaginatedData(c, http.StatusOK, mapEntriesToResponse(entries), params.Page, params.PerPage, int(total))
}

// EwasteSummary groups all earn entries by item category
func (h *AdminHandler) EwasteSummary(c *gin.Context) {
	summary, err := h.reportingService.EarnSummary(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to summarize earn entries", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, summary)
}
