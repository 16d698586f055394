package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ewaste-kiosk-backend/internal/api/middleware"
	"github.com/ewaste-kiosk-backend/internal/api/service"
	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// ScanHandler handles earn submissions, history and personal stats
type ScanHandler struct {
	pointsService    service.PointsService
	reportingService service.ReportingService
	logger           *slog.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(logger *slog.Logger, pointsService service.PointsService, reportingService service.ReportingService) *ScanHandler {
	return &ScanHandler{
		pointsService:    pointsService,
		reportingService: reportingService,
		logger:           logger,
	}
}

// Scan handles a plain earn submission. Points come from the server-side
// category table; claimed values in the request are audit hints only.
func (h *ScanHandler) Scan(c *gin.Context) {
	ownerID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payload := &ledger.EarnPayload{
		ScannedObject: req.ScannedObject,
		Category:      req.Category,
		KioskCode:     req.KioskCode,
		LocationTag:   req.LocationTag,
		ClaimedValue:  req.ClaimedValue,
		ClaimedPoints: req.ClaimedPoints,
	}

	entry, err := h.pointsService.RecordEarn(c.Request.Context(), ownerID, payload, middleware.GetCorrelationID(c))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound{}) {
			RespondNotFound(c, "User not found")
			return
		}
		h.logger.Error("Failed to record earn", "user_id", ownerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}

// ScanToken handles a single-use QR code scan. Replays report the original
// consumption time with a 409.
func (h *ScanHandler) ScanToken(c *gin.Context) {
	ownerID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req TokenScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, token, err := h.pointsService.ConsumeToken(c.Request.Context(), ownerID, req.QRData, middleware.GetCorrelationID(c))
	if err != nil {
		var usedErr qrtoken.ErrTokenAlreadyUsed
		if errors.As(err, &usedErr) {
			h.logger.Warn("Replayed qr token", "user_id", ownerID.String(), "used_at", usedErr.UsedAt)
			response := NewErrorResponse("TOKEN_ALREADY_USED", "This code has already been redeemed")
			response.CorrelationID = middleware.GetCorrelationID(c)
			response.Data = gin.H{"used_at": usedErr.UsedAt.Format(time.RFC3339)}
			c.JSON(http.StatusConflict, response)
			return
		}
		if errors.Is(err, qrtoken.ErrTokenNotFound{}) {
			RespondNotFound(c, "Unrecognized code")
			return
		}
		h.logger.Error("Failed to consume token", "user_id", ownerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, gin.H{
		"entry": mapEntryToResponse(entry),
		"token": mapTokenToStatusResponse(token),
	})
}

// History returns the caller's paginated ledger entries, newest first
func (h *ScanHandler) History(c *gin.Context) {
	ownerID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	entries, total, err := h.reportingService.OwnerHistory(c.Request.Context(), ownerID, params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to load history", "user_id", ownerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondWithPaginatedData(c, http.StatusOK, mapEntriesToResponse(entries), params.Page, params.PerPage, int(total))
}

// Stats returns the caller's point totals and category breakdown
func (h *ScanHandler) Stats(c *gin.Context) {
	ownerID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	stats, err := h.reportingService.OwnerStats(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound{}) {
			RespondNotFound(c, "User not found")
			return
		}
		h.logger.Error("Failed to load stats", "user_id", ownerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, stats)
}
