package handler

import (
	"errors"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/api/middleware"
	"github.com/ewaste-kiosk-backend/internal/api/service"
	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QRHandler handles token issuance and the public status endpoint
type QRHandler struct {
	qrService service.QRService
	logger    *slog.Logger
}

// NewQRHandler creates a new QR handler
func NewQRHandler(logger *slog.Logger, qrService service.QRService) *QRHandler {
	return &QRHandler{
		qrService: qrService,
		logger:    logger,
	}
}

// Generate mints a single-use token and returns its rendered PNG. Admin only.
func (h *QRHandler) Generate(c *gin.Context) {
	issuedBy, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req GenerateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, image, err := h.qrService.IssueToken(c.Request.Context(), issuedBy, req.Category, req.Value)
	if err != nil {
		h.logger.Error("Failed to issue qr token", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, GenerateQRResponse{
		TokenID:  token.TokenID.String(),
		Category: token.Category,
		Value:    token.ValuePHP,
		QRData:   token.QRData,
		Image:    image,
	})
}

// Status reports whether a token has been consumed. The response never
// carries the payload or hash.
func (h *QRHandler) Status(c *gin.Context) {
	idParam := c.Param("id")
	tokenID, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid token ID")
		return
	}

	token, err := h.qrService.TokenStatus(c.Request.Context(), tokenID)
	if err != nil {
		if errors.Is(err, qrtoken.ErrTokenNotFound{}) {
			RespondNotFound(c, "Token not found")
			return
		}
		h.logger.Error("Failed to load token status", "token_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTokenToStatusResponse(token))
}
