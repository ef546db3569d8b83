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

// MongoClaimRepository implements ClaimRepository
type MongoClaimRepository struct {
	collection *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *MongoClaimRepository {
	return &MongoClaimRepository{collection: db.Collection(config.ClaimsCollection)}
}

func (r *MongoClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	now := time.Now().UTC()
	claim.ID = primitive.NewObjectID()
	claim.CreatedAt = now
	claim.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, claim)
	return translate(err)
}

func (r *MongoClaimRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	var claim models.Claim
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&claim); err != nil {
		return nil, translate(err)
	}
	return &claim, nil
}

func (r *MongoClaimRepository) List(ctx context.Context, f ClaimFilter) ([]models.Claim, error) {
	filter := bson.M{}
	if f.CustomerEmail != "" {
		filter["customerEmail"] = f.CustomerEmail
	}
	if f.ItemID != nil {
		filter["item"] = *f.ItemID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	claims := []models.Claim{}
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *MongoClaimRepository) Update(ctx context.Context, claim *models.Claim) error {
	claim.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"customerEmail":   claim.CustomerEmail,
		"shippingAddress": claim.ShippingAddress,
		"paymentStatus":   claim.PaymentStatus,
		"updatedAt":       claim.UpdatedAt,
	}}
	return checkMatched(r.collection.UpdateOne(ctx, bson.M{"_id": claim.ID}, update))
}

func (r *MongoClaimRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return checkDeleted(r.collection.DeleteOne(ctx, bson.M{"_id": id}))
}
