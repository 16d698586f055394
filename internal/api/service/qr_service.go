package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// QRServiceImpl implements the QRService interface
type QRServiceImpl struct {
	logger    *slog.Logger
	tokenRepo qrtoken.Repository
}

// NewQRService creates a new QR issuance service
func NewQRService(logger *slog.Logger, tokenRepo qrtoken.Repository) QRService {
	return &QRServiceImpl{
		logger:    logger,
		tokenRepo: tokenRepo,
	}
}

// tokenPayload is the canonical JSON encoded into the QR image. Its SHA-256
// hash is the token's identity; field order matters for hash stability.
type tokenPayload struct {
	TokenID  string `json:"token_id"`
	Category string `json:"category"`
	Value    string `json:"value"`
	IssuedAt int64  `json:"issued_at"`
	Nonce    string `json:"nonce"`
}

// IssueToken mints an unused token and renders its payload as a PNG data
// URL for display on the kiosk screen
func (s *QRServiceImpl) IssueToken(ctx context.Context, issuedBy uuid.UUID, category, value string) (*qrtoken.Token, string, error) {
	payload := tokenPayload{
		TokenID:  uuid.New().String(),
		Category: category,
		Value:    value,
		IssuedAt: time.Now().Unix(),
		Nonce:    uuid.New().String(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode token payload: %w", err)
	}

	token := qrtoken.NewToken(string(raw), category, value, &issuedBy)

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, "", err
	}

	png, err := qrcode.Encode(string(raw), qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render qr code: %w", err)
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	s.logger.Info("Issued qr token",
		"token_id", token.TokenID.String(),
		"category", category,
		"issued_by", issuedBy.String(),
	)

	return token, dataURL, nil
}

// TokenStatus reports whether a token has been consumed
func (s *QRServiceImpl) TokenStatus(ctx context.Context, tokenID uuid.UUID) (*qrtoken.Token, error) {
	return s.tokenRepo.GetByTokenID(ctx, tokenID)
}
