// Package qrtoken defines the single-use credential gating one
// point-granting event. A token is identified by the SHA-256 hash of its
// canonical payload; once consumed it never reverts to unused.
package qrtoken

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Token is a single-use QR credential. Used transitions false -> true
// exactly once via an atomic compare-and-set; a consumed token is kept
// forever so replays can report the original consumption time.
type Token struct {
	TokenID   uuid.UUID  `json:"token_id" bson:"token_id"`
	Hash      string     `json:"hash" bson:"hash"`
	Category  string     `json:"category" bson:"category"`
	ValuePHP  string     `json:"value_php" bson:"value_php"`
	QRData    string     `json:"qr_data" bson:"qr_data"`
	Used      bool       `json:"used" bson:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty" bson:"used_at,omitempty"`
	UsedBy    *uuid.UUID `json:"used_by,omitempty" bson:"used_by,omitempty"`
	IssuedBy  *uuid.UUID `json:"issued_by,omitempty" bson:"issued_by,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// HashPayload computes the token identity from the canonical scanned payload
func HashPayload(qrData string) string {
	sum := sha256.Sum256([]byte(qrData))
	return hex.EncodeToString(sum[:])
}

// NewToken mints an unused token for the given canonical payload
func NewToken(qrData, category, valuePHP string, issuedBy *uuid.UUID) *Token {
	return &Token{
		TokenID:   uuid.New(),
		Hash:      HashPayload(qrData),
		Category:  category,
		ValuePHP:  valuePHP,
		QRData:    qrData,
		Used:      false,
		IssuedBy:  issuedBy,
		CreatedAt: time.Now(),
	}
}
