package handler

import (
	"time"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
	"github.com/ewaste-kiosk-backend/internal/domain/reward"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
)

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Points    int64  `json:"points"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse carries a session token and the authenticated account
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ScanRequest represents a plain scan submission. Value and points fields
// are client-side hints recorded for audit; the server resolves the points
// actually granted from the category table.
type ScanRequest struct {
	ScannedObject string `json:"scanned_object" binding:"required"`
	Category      string `json:"category" binding:"required"`
	KioskCode     string `json:"kiosk_code,omitempty"`
	LocationTag   string `json:"location_tag,omitempty"`
	ClaimedValue  string `json:"claimed_value,omitempty"`
	ClaimedPoints string `json:"claimed_points,omitempty"`
}

// TokenScanRequest represents a single-use QR code scan
type TokenScanRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	EntryID     string                `json:"entry_id"`
	Kind        string                `json:"kind"`
	PointsDelta int64                 `json:"points_delta"`
	Status      string                `json:"status"`
	Earn        *ledger.EarnPayload   `json:"earn,omitempty"`
	Redeem      *ledger.RedeemPayload `json:"redeem,omitempty"`
	CreatedAt   string                `json:"created_at"`
}

// GenerateQRRequest represents an admin request to mint a single-use token
type GenerateQRRequest struct {
	Category string `json:"category" binding:"required"`
	Value    string `json:"value,omitempty"`
}

// GenerateQRResponse carries the minted token and its rendered image
type GenerateQRResponse struct {
	TokenID  string `json:"token_id"`
	Category string `json:"category"`
	Value    string `json:"value,omitempty"`
	QRData   string `json:"qr_data"`
	Image    string `json:"image"`
}

// TokenStatusResponse reports token consumption state. The payload and
// hash are deliberately absent so the status endpoint cannot be used to
// reconstruct a scannable code.
type TokenStatusResponse struct {
	TokenID  string  `json:"token_id"`
	Category string  `json:"category"`
	Value    string  `json:"value,omitempty"`
	Used     bool    `json:"used"`
	UsedAt   *string `json:"used_at,omitempty"`
	IssuedAt string  `json:"issued_at"`
}

// RewardResponse represents a catalog item in API responses
type RewardResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Method     string `json:"method"`
	CostPoints int64  `json:"cost_points"`
	ValuePHP   int64  `json:"value_php"`
}

// KioskRequest represents a kiosk create or update
type KioskRequest struct {
	Code        string  `json:"code" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Latitude    float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" binding:"min=-180,max=180"`
	Description string  `json:"description,omitempty"`
	Situation   string  `json:"situation,omitempty"`
	Status      string  `json:"status,omitempty"`
	FillCurrent *int    `json:"fill_current,omitempty"`
	FillMax     *int    `json:"fill_max,omitempty"`
	OpenTime    string  `json:"open_time,omitempty"`
	CloseTime   string  `json:"close_time,omitempty"`
}

// KioskResponse represents a kiosk in API responses
type KioskResponse struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Location       string  `json:"location"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Description    string  `json:"description,omitempty"`
	Situation      string  `json:"situation"`
	Status         string  `json:"status"`
	FillCurrent    int     `json:"fill_current"`
	FillMax        int     `json:"fill_max"`
	FillPercentage int     `json:"fill_percentage"`
	OpenTime       string  `json:"open_time"`
	CloseTime      string  `json:"close_time"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

func mapUserToResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Username:  u.Username,
		Role:      string(u.Role),
		Points:    u.Points,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func mapEntryToResponse(e *ledger.Entry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID.String(),
		Kind:        string(e.Kind),
		PointsDelta: e.PointsDelta,
		Status:      string(e.Status),
		Earn:        e.Earn,
		Redeem:      e.Redeem,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

func mapEntriesToResponse(entries []*ledger.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapEntryToResponse(e))
	}
	return out
}

func mapTokenToStatusResponse(t *qrtoken.Token) TokenStatusResponse {
	resp := TokenStatusResponse{
		TokenID:  t.TokenID.String(),
		Category: t.Category,
		Value:    t.ValuePHP,
		Used:     t.Used,
		IssuedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.UsedAt != nil {
		usedAt := t.UsedAt.Format(time.RFC3339)
		resp.UsedAt = &usedAt
	}
	return resp
}

func mapRewardToResponse(r *reward.Reward) RewardResponse {
	return RewardResponse{
		ID:         r.ID.String(),
		Name:       r.Name,
		Method:     string(r.Method),
		CostPoints: r.CostPoints,
		ValuePHP:   r.ValuePHP,
	}
}

func mapKioskToResponse(k *kiosk.Kiosk) KioskResponse {
	return KioskResponse{
		ID:             k.ID.String(),
		Code:           k.Code,
		Location:       k.Location,
		Latitude:       k.Latitude,
		Longitude:      k.Longitude,
		Description:    k.Description,
		Situation:      string(k.Situation),
		Status:         string(k.Status),
		FillCurrent:    k.FillCurrent,
		FillMax:        k.FillMax,
		FillPercentage: k.FillPercentage(),
		OpenTime:       k.OpenTime,
		CloseTime:      k.CloseTime,
		CreatedAt:      k.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      k.UpdatedAt.Format(time.RFC3339),
	}
}
