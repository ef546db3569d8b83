package repositories

import (
	"context"
	"time"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReportRepository implements ReportRepository
type MongoReportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{collection: db.Collection(config.ReportsCollection)}
}

func (r *MongoReportRepository) Create(ctx context.Context, report *models.LostItemReport) error {
	now := time.Now().UTC()
	report.ID = primitive.NewObjectID()
	report.CreatedAt = now
	report.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, report)
	return translate(err)
}

func (r *MongoReportRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LostItemReport, error) {
	var report models.LostItemReport
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report); err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (r *MongoReportRepository) List(ctx context.Context, f ReportFilter) ([]models.LostItemReport, error) {
	filter := bson.M{}
	if f.CustomerEmail != "" {
		filter["customerEmail"] = f.CustomerEmail
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.LostItemReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *MongoReportRepository) Update(ctx context.Context, report *models.LostItemReport) error {
	report.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"customerEmail":   report.CustomerEmail,
		"itemDescription": report.ItemDescription,
		"status":          report.Status,
		"updatedAt":       report.UpdatedAt,
	}}
	return checkMatched(r.collection.UpdateOne(ctx, bson.M{"_id": report.ID}, update))
}

func (r *MongoReportRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return checkDeleted(r.collection.DeleteOne(ctx, bson.M{"_id": id}))
}
