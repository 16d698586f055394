package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
)

const (
	// QRTokenCollectionName is the name of the token collection in MongoDB
	QRTokenCollectionName = "qr_tokens"
)

// QRTokenRepository implements the qrtoken.Repository interface for MongoDB
type QRTokenRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewQRTokenRepository creates a new MongoDB token repository
func NewQRTokenRepository(logger *slog.Logger, db *mongo.Database) qrtoken.Repository {
	return &QRTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a freshly issued token. Returns ErrDuplicateToken if a
// token with the same hash exists.
func (r *QRTokenRepository) Create(ctx context.Context, token *qrtoken.Token) error {
	collection := r.db.Collection(QRTokenCollectionName)

	existing, err := r.GetByHash(ctx, token.Hash)
	if err != nil && !errors.Is(err, qrtoken.ErrTokenNotFound{}) {
		r.logger.Error("Failed to check for existing token",
			"hash", token.Hash,
			"error", err)
		return fmt.Errorf("failed to check for existing token: %w", err)
	}

	if existing != nil {
		return qrtoken.ErrDuplicateToken{Hash: token.Hash}
	}

	_, err = collection.InsertOne(ctx, token)
	if err != nil {
		r.logger.Error("Failed to create token",
			"token_id", token.TokenID.String(),
			"error", err)
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetByTokenID retrieves a token by its ID
func (r *QRTokenRepository) GetByTokenID(ctx context.Context, tokenID uuid.UUID) (*qrtoken.Token, error) {
	collection := r.db.Collection(QRTokenCollectionName)

	var token qrtoken.Token
	err := collection.FindOne(ctx, bson.M{"token_id": tokenID}).Decode(&token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, qrtoken.ErrTokenNotFound{Hash: tokenID.String()}
		}
		r.logger.Error("Failed to get token",
			"token_id", tokenID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &token, nil
}

// GetByHash retrieves a token by its payload hash
func (r *QRTokenRepository) GetByHash(ctx context.Context, hash string) (*qrtoken.Token, error) {
	collection := r.db.Collection(QRTokenCollectionName)

	var token qrtoken.Token
	err := collection.FindOne(ctx, bson.M{"hash": hash}).Decode(&token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, qrtoken.ErrTokenNotFound{Hash: hash}
		}
		r.logger.Error("Failed to get token by hash",
			"hash", hash,
			"error", err)
		return nil, fmt.Errorf("failed to get token by hash: %w", err)
	}

	return &token, nil
}

// Consume atomically claims the token. The filter includes used:false, so
// the find-and-modify is a compare-and-set: of any number of concurrent
// callers, exactly one matches the unused document and wins. Losers are
// classified by a follow-up read into not-found vs already-used.
func (r *QRTokenRepository) Consume(ctx context.Context, hash string, usedBy uuid.UUID) (*qrtoken.Token, error) {
	collection := r.db.Collection(QRTokenCollectionName)

	now := time.Now()
	filter := bson.M{"hash": hash, "used": false}
	update := bson.M{
		"$set": bson.M{
			"used":    true,
			"used_at": now,
			"used_by": usedBy,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var token qrtoken.Token
	err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&token)
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		r.logger.Error("Failed to consume token",
			"hash", hash,
			"error", err)
		return nil, fmt.Errorf("failed to consume token: %w", err)
	}

	// No unused document matched: either the token never existed or it was
	// already consumed (possibly by a concurrent racer a moment ago).
	existing, getErr := r.GetByHash(ctx, hash)
	if getErr != nil {
		return nil, getErr
	}

	usedAt := now
	if existing.UsedAt != nil {
		usedAt = *existing.UsedAt
	}
	return nil, qrtoken.ErrTokenAlreadyUsed{Hash: hash, UsedAt: usedAt}
}
