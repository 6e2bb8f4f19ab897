package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hybridauth/internal/common"
	"github.com/dmitrijs2005/hybridauth/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	users *mongo.Collection
	logs  *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		users: db.Collection(UsersCollection),
		logs:  db.Collection(ActivityLogsCollection),
	}
}

// EnsureIndexes creates the unique relational_id index on users and the
// user_ref lookup index on activity_logs. It is idempotent.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "relational_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("relational_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = r.logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_ref", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("user_ref_timestamp"),
	})
	if err != nil {
		return fmt.Errorf("failed to create activity_logs index: %w", err)
	}

	return nil
}

func (r *MongoRepository) InsertMirror(ctx context.Context, mirror *models.UserMirror) error {
	if _, err := r.users.InsertOne(ctx, mirror); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: mirror for user %d", common.ErrDuplicate, mirror.RelationalID)
		}
		return fmt.Errorf("failed to insert mirror: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindMirrorByRelationalID(ctx context.Context, relationalID int64) (*models.UserMirror, error) {
	var mirror models.UserMirror

	err := r.users.FindOne(ctx, bson.D{{Key: "relational_id", Value: relationalID}}).Decode(&mirror)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find mirror: %w", err)
	}

	return &mirror, nil
}

func (r *MongoRepository) InsertLog(ctx context.Context, entry *models.ActivityLogEntry) error {
	if _, err := r.logs.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}
