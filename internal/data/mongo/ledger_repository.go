package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
)

const (
	// LedgerCollectionName is the name of the ledger collection in MongoDB
	LedgerCollectionName = "ledger_entries"
)

// LedgerRepository implements the ledger.Repository interface for MongoDB
type LedgerRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewLedgerRepository creates a new MongoDB ledger repository
func NewLedgerRepository(logger *slog.Logger, db *mongo.Database) ledger.Repository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new ledger entry after checking for duplicates.
// Returns ErrDuplicateEntry if an entry with the same entry ID exists.
func (r *LedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	collection := r.db.Collection(LedgerCollectionName)

	// Check if entry already exists
	existingEntry, err := r.GetByEntryID(ctx, entry.EntryID)
	if err != nil && !errors.Is(err, ledger.ErrEntryNotFound{}) {
		r.logger.Error("Failed to check for existing ledger entry",
			"entry_id", entry.EntryID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing ledger entry: %w", err)
	}

	if existingEntry != nil {
		return ledger.ErrDuplicateEntry{EntryID: entry.EntryID}
	}

	// Insert the entry
	_, err = collection.InsertOne(ctx, entry)
	if err != nil {
		r.logger.Error("Failed to create ledger entry",
			"entry_id", entry.EntryID.String(),
			"error", err)
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

// GetByEntryID retrieves a ledger entry by its ID.
// Returns ErrEntryNotFound if no entry exists.
func (r *LedgerRepository) GetByEntryID(ctx context.Context, entryID uuid.UUID) (*ledger.Entry, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"entry_id": entryID}
	var entry ledger.Entry
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledger.ErrEntryNotFound{EntryID: entryID}
		}
		r.logger.Error("Failed to get ledger entry",
			"entry_id", entryID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return &entry, nil
}

// GetByOwnerID retrieves paginated ledger entries for an account.
// Results are sorted by creation time in descending order (newest first).
func (r *LedgerRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"owner_id": ownerID}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}). // Sort by created_at in descending order
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get ledger entries",
			"owner_id", ownerID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*ledger.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode ledger entries",
			"owner_id", ownerID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode ledger entries: %w", err)
	}

	return entries, nil
}

// CountByOwnerID counts the total number of ledger entries for an account
func (r *LedgerRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"owner_id": ownerID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count ledger entries",
			"owner_id", ownerID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	return count, nil
}

// GetByKind retrieves paginated entries of one kind across all owners,
// newest first. Backs the admin e-waste listing.
func (r *LedgerRepository) GetByKind(ctx context.Context, kind ledger.Kind, limit, offset int) ([]*ledger.Entry, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"kind": kind}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get ledger entries by kind",
			"kind", string(kind),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger entries by kind: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*ledger.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode ledger entries",
			"kind", string(kind),
			"error", err)
		return nil, fmt.Errorf("failed to decode ledger entries: %w", err)
	}

	return entries, nil
}

// CountByKind counts entries of one kind across all owners
func (r *LedgerRepository) CountByKind(ctx context.Context, kind ledger.Kind) (int64, error) {
	collection := r.db.Collection(LedgerCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{"kind": kind})
	if err != nil {
		r.logger.Error("Failed to count ledger entries by kind",
			"kind", string(kind),
			"error", err)
		return 0, fmt.Errorf("failed to count ledger entries by kind: %w", err)
	}

	return count, nil
}

// CountByCategory groups earn entries by item category, most common first
func (r *LedgerRepository) CountByCategory(ctx context.Context) ([]ledger.CategoryCount, error) {
	collection := r.db.Collection(LedgerCollectionName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"kind": ledger.KindEarn}}},
		{{Key: "$group", Value: bson.M{"_id": "$earn.category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate entries by category", "error", err)
		return nil, fmt.Errorf("failed to aggregate entries by category: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []ledger.CategoryCount
	if err := cursor.All(ctx, &counts); err != nil {
		r.logger.Error("Failed to decode category counts", "error", err)
		return nil, fmt.Errorf("failed to decode category counts: %w", err)
	}

	return counts, nil
}

// CountByOwnerCategory groups one owner's earn entries by item category
func (r *LedgerRepository) CountByOwnerCategory(ctx context.Context, ownerID uuid.UUID) ([]ledger.CategoryCount, error) {
	collection := r.db.Collection(LedgerCollectionName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID, "kind": ledger.KindEarn}}},
		{{Key: "$group", Value: bson.M{"_id": "$earn.category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate owner entries by category",
			"owner_id", ownerID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to aggregate owner entries by category: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []ledger.CategoryCount
	if err := cursor.All(ctx, &counts); err != nil {
		r.logger.Error("Failed to decode owner category counts",
			"owner_id", ownerID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode owner category counts: %w", err)
	}

	return counts, nil
}

// SummarizeOwner folds an owner's entries into totals. DeltaSum is the
// authoritative balance; the reconciler rewrites the account to it on drift.
func (r *LedgerRepository) SummarizeOwner(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerSummary, error) {
	collection := r.db.Collection(LedgerCollectionName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"entries": bson.M{"$sum": 1},
			"earned": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gt": bson.A{"$points_delta", 0}}, "$points_delta", 0},
			}},
			"spent": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$lt": bson.A{"$points_delta", 0}}, bson.M{"$abs": "$points_delta"}, 0},
			}},
			"delta_sum": bson.M{"$sum": "$points_delta"},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to summarize owner ledger",
			"owner_id", ownerID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to summarize owner ledger: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Entries  int64 `bson:"entries"`
		Earned   int64 `bson:"earned"`
		Spent    int64 `bson:"spent"`
		DeltaSum int64 `bson:"delta_sum"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		r.logger.Error("Failed to decode owner summary",
			"owner_id", ownerID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode owner summary: %w", err)
	}

	// No entries yet: the empty summary, not an error
	if len(results) == 0 {
		return &ledger.OwnerSummary{}, nil
	}

	return &ledger.OwnerSummary{
		Entries:      results[0].Entries,
		EarnedPoints: results[0].Earned,
		SpentPoints:  results[0].Spent,
		DeltaSum:     results[0].DeltaSum,
	}, nil
}
