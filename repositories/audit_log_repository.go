package repositories

import (
	"context"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditLogRepository implements AuditLogRepository
type MongoAuditLogRepository struct {
	collection *mongo.Collection
}

func NewAuditLogRepository(db *mongo.Database) *MongoAuditLogRepository {
	return &MongoAuditLogRepository{collection: db.Collection(config.AuditLogsCollection)}
}

func (r *MongoAuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	entry.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// List returns entries newest first
func (r *MongoAuditLogRepository) List(ctx context.Context, f AuditLogFilter) ([]models.AuditLog, error) {
	filter := bson.M{}
	if f.ItemID != nil {
		filter["itemId"] = *f.ItemID
	}
	if f.Action != "" {
		filter["action"] = f.Action
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(500)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.AuditLog{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
