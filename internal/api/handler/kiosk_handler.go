package handler

import (
	"errors"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/api/service"
	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KioskHandler handles the public kiosk listing and admin fleet management
type KioskHandler struct {
	kioskService service.KioskService
	logger       *slog.Logger
}

// NewKioskHandler creates a new kiosk handler
func NewKioskHandler(logger *slog.Logger, kioskService service.KioskService) *KioskHandler {
	return &KioskHandler{
		kioskService: kioskService,
		logger:       logger,
	}
}

// List returns the whole fleet. Public: kiosk locations are user-facing.
func (h *KioskHandler) List(c *gin.Context) {
	kiosks, err := h.kioskService.ListKiosks(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list kiosks", "error", err)
		RespondInternalError(c)
		return
	}

	out := make([]KioskResponse, 0, len(kiosks))
	for _, k := range kiosks {
		out = append(out, mapKioskToResponse(k))
	}
	RespondOK(c, out)
}

// GetByID retrieves a kiosk by its ID
func (h *KioskHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid kiosk ID")
		return
	}

	k, err := h.kioskService.GetKiosk(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, kiosk.ErrKioskNotFound{}) {
			RespondNotFound(c, "Kiosk not found")
			return
		}
		h.logger.Error("Failed to get kiosk", "kiosk_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapKioskToResponse(k))
}

// Create registers a new kiosk. Admin only.
func (h *KioskHandler) Create(c *gin.Context) {
	var req KioskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	k, err := kiosk.NewKiosk(req.Code, req.Location, req.Latitude, req.Longitude)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	applyKioskRequest(k, &req)

	if err := h.kioskService.CreateKiosk(c.Request.Context(), k); err != nil {
		var duplicateErr kiosk.ErrDuplicateCode
		if errors.As(err, &duplicateErr) {
			RespondConflict(c, "Kiosk with this code already exists")
			return
		}
		if isKioskValidationError(err) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create kiosk", "code", req.Code, "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapKioskToResponse(k))
}

// Update edits a kiosk under the optimistic version check. Admin only.
func (h *KioskHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid kiosk ID")
		return
	}

	var req KioskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	k, err := h.kioskService.UpdateKiosk(c.Request.Context(), id, func(k *kiosk.Kiosk) error {
		k.Code = kiosk.NormalizeCode(req.Code)
		k.Location = req.Location
		k.Latitude = req.Latitude
		k.Longitude = req.Longitude
		applyKioskRequest(k, &req)
		return nil
	})
	if err != nil {
		if errors.Is(err, kiosk.ErrKioskNotFound{}) {
			RespondNotFound(c, "Kiosk not found")
			return
		}
		if errors.Is(err, kiosk.ErrConcurrentModification{}) {
			RespondConflict(c, "Kiosk was modified concurrently, retry the update")
			return
		}
		if isKioskValidationError(err) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to update kiosk", "kiosk_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapKioskToResponse(k))
}

// Delete removes a kiosk from the fleet. Admin only.
func (h *KioskHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid kiosk ID")
		return
	}

	if err := h.kioskService.DeleteKiosk(c.Request.Context(), id); err != nil {
		if errors.Is(err, kiosk.ErrKioskNotFound{}) {
			RespondNotFound(c, "Kiosk not found")
			return
		}
		h.logger.Error("Failed to delete kiosk", "kiosk_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// applyKioskRequest copies the optional fields onto the kiosk
func applyKioskRequest(k *kiosk.Kiosk, req *KioskRequest) {
	k.Description = req.Description
	if req.Situation != "" {
		k.Situation = kiosk.Situation(req.Situation)
	}
	if req.Status != "" {
		k.Status = kiosk.OperationalStatus(req.Status)
	}
	if req.FillCurrent != nil {
		k.FillCurrent = *req.FillCurrent
	}
	if req.FillMax != nil {
		k.FillMax = *req.FillMax
	}
	if req.OpenTime != "" {
		k.OpenTime = req.OpenTime
	}
	if req.CloseTime != "" {
		k.CloseTime = req.CloseTime
	}
}

func isKioskValidationError(err error) bool {
	return errors.Is(err, kiosk.ErrEmptyCode) ||
		errors.Is(err, kiosk.ErrEmptyLocation) ||
		errors.Is(err, kiosk.ErrInvalidLatitude) ||
		errors.Is(err, kiosk.ErrInvalidLongitude) ||
		errors.Is(err, kiosk.ErrInvalidCapacity) ||
		errors.Is(err, kiosk.ErrInvalidHours)
}
