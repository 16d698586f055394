package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ewaste-kiosk-backend/internal/api/middleware"
	"github.com/ewaste-kiosk-backend/internal/api/service"
	"github.com/ewaste-kiosk-backend/internal/domain/reward"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RewardHandler handles the reward catalog and redemptions
type RewardHandler struct {
	pointsService service.PointsService
	logger        *slog.Logger
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(logger *slog.Logger, pointsService service.PointsService) *RewardHandler {
	return &RewardHandler{
		pointsService: pointsService,
		logger:        logger,
	}
}

// List returns the active reward catalog
func (h *RewardHandler) List(c *gin.Context) {
	rewards, err := h.pointsService.ListRewards(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list rewards", "error", err)
		RespondInternalError(c)
		return
	}

	out := make([]RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, mapRewardToResponse(r))
	}
	RespondOK(c, out)
}

// Redeem exchanges points for the reward named in the path. Insufficient
// balance maps to 422 with the have/need figures.
func (h *RewardHandler) Redeem(c *gin.Context) {
	ownerID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	rewardID, err := uuid.Parse(c.Param("rewardId"))
	if err != nil {
		RespondBadRequest(c, "Invalid reward ID")
		return
	}

	entry, err := h.pointsService.RecordRedeem(c.Request.Context(), ownerID, rewardID, middleware.GetCorrelationID(c))
	if err != nil {
		if errors.Is(err, reward.ErrRewardNotFound{}) {
			RespondNotFound(c, "Reward not found")
			return
		}
		var insufficientErr user.ErrInsufficientPoints
		if errors.As(err, &insufficientErr) {
			h.logger.Warn("Redemption rejected for insufficient points",
				"user_id", ownerID.String(),
				"have", insufficientErr.Have,
				"need", insufficientErr.Need,
			)
			response := NewErrorResponse("INSUFFICIENT_POINTS", "Not enough points for this reward")
			response.CorrelationID = middleware.GetCorrelationID(c)
			response.Data = gin.H{
				"balance":  insufficientErr.Have,
				"required": insufficientErr.Need,
			}
			c.JSON(http.StatusUnprocessableEntity, response)
			return
		}
		if errors.Is(err, user.ErrUserNotFound{}) {
			RespondNotFound(c, "User not found")
			return
		}
		h.logger.Error("Failed to redeem reward", "user_id", ownerID.String(), "reward_id", rewardID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}
