package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ewaste-kiosk-backend/internal/api/middleware"
	"github.com/ewaste-kiosk-backend/internal/api/service"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and the profile endpoint
type AuthHandler struct {
	authService      service.AuthService
	reportingService service.ReportingService
	logger           *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, authService service.AuthService, reportingService service.ReportingService) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		reportingService: reportingService,
		logger:           logger,
	}
}

// Register handles account creation, rejecting duplicate usernames
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, session, err := h.authService.Register(c.Request.Context(), req.FullName, req.Username, req.Password)
	if err != nil {
		var duplicateErr user.ErrDuplicateUsername
		if errors.As(err, &duplicateErr) {
			h.logger.Warn("Attempt to register duplicate username", "username", duplicateErr.Username)
			RespondConflict(c, "Username already taken")
			return
		}
		if errors.Is(err, user.ErrEmptyFullName) || errors.Is(err, user.ErrEmptyUsername) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to register user", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      mapUserToResponse(u),
	})
}

// Login verifies credentials and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnauthorized(c, "Invalid username or password")
			return
		}
		h.logger.Error("Failed to log in user", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      mapUserToResponse(u),
	})
}

// Profile returns the caller's account with stats and recent entries
func (h *AuthHandler) Profile(c *gin.Context) {
	ownerID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	profile, err := h.reportingService.Profile(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound{}) {
			RespondNotFound(c, "User not found")
			return
		}
		h.logger.Error("Failed to load profile", "user_id", ownerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{
		"user":    mapUserToResponse(profile.User),
		"summary": profile.Summary,
		"recent":  mapEntriesToResponse(profile.Recent),
	})
}
