package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLostItemRepository implements LostItemRepository
type MongoLostItemRepository struct {
	collection *mongo.Collection
}

func NewLostItemRepository(db *mongo.Database) *MongoLostItemRepository {
	return &MongoLostItemRepository{collection: db.Collection(config.LostItemsCollection)}
}

func (r *MongoLostItemRepository) Create(ctx context.Context, item *models.LostItem) error {
	now := time.Now().UTC()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, item)
	return translate(err)
}

func (r *MongoLostItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LostItem, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoLostItemRepository) FindByToken(ctx context.Context, token string) (*models.LostItem, error) {
	return r.findOne(ctx, bson.M{"claimToken": token})
}

func (r *MongoLostItemRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.LostItem, error) {
	items := []models.LostItem{}
	if len(ids) == 0 {
		return items, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoLostItemRepository) findOne(ctx context.Context, filter bson.M) (*models.LostItem, error) {
	var item models.LostItem
	if err := r.collection.FindOne(ctx, filter).Decode(&item); err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// List returns matching items, newest first
func (r *MongoLostItemRepository) List(ctx context.Context, f LostItemFilter) ([]models.LostItem, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.FlightID != nil {
		filter["flight"] = *f.FlightID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.LostItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoLostItemRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, changes LostItemChanges) (*models.LostItem, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if changes.ItemName != nil {
		set["itemName"] = *changes.ItemName
	}
	if changes.ItemDescription != nil {
		set["itemDescription"] = *changes.ItemDescription
	}
	if changes.ItemImageURL != nil {
		set["itemImageUrl"] = *changes.ItemImageURL
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (r *MongoLostItemRepository) TransitionFromUnclaimed(ctx context.Context, id primitive.ObjectID, u models.StatusUpdate) (*models.LostItem, error) {
	at := u.At.UTC()
	set := bson.M{
		"status":    u.Status,
		"updatedAt": at,
	}
	switch u.Status {
	case models.StatusClaimed:
		set["claimedAt"] = at
	case models.StatusShipped:
		set["shippedAt"] = at
		if u.ShippingDetails != nil {
			set["shippingDetails"] = u.ShippingDetails
		}
	}

	filter := bson.M{"_id": id, "status": models.StatusUnclaimed}
	item, err := r.findOneAndUpdate(ctx, filter, bson.M{"$set": set})
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing item from one that already moved on
		if _, findErr := r.FindByID(ctx, id); findErr == nil {
			return nil, ErrConflict
		}
	}
	return item, err
}

func (r *MongoLostItemRepository) Reset(ctx context.Context, id primitive.ObjectID) (*models.LostItem, error) {
	update := bson.M{
		"$set": bson.M{
			"status":    models.StatusUnclaimed,
			"updatedAt": time.Now().UTC(),
		},
		"$unset": bson.M{
			"claimedAt":       "",
			"shippedAt":       "",
			"shippingDetails": "",
		},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (r *MongoLostItemRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.LostItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.LostItem
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *MongoLostItemRepository) ExistsByFlight(ctx context.Context, flightID primitive.ObjectID) (bool, error) {
	return r.exists(ctx, bson.M{"flight": flightID})
}

func (r *MongoLostItemRepository) ExistsBySeat(ctx context.Context, seatID primitive.ObjectID) (bool, error) {
	return r.exists(ctx, bson.M{"seat": seatID})
}

func (r *MongoLostItemRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoLostItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return checkDeleted(r.collection.DeleteOne(ctx, bson.M{"_id": id}))
}

func (r *MongoLostItemRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
