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

// MongoSeatRepository implements SeatRepository
type MongoSeatRepository struct {
	collection *mongo.Collection
}

func NewSeatRepository(db *mongo.Database) *MongoSeatRepository {
	return &MongoSeatRepository{collection: db.Collection(config.SeatsCollection)}
}

// Create inserts a seat. Returns ErrDuplicate if the flight already has it.
func (r *MongoSeatRepository) Create(ctx context.Context, seat *models.Seat) error {
	now := time.Now().UTC()
	seat.ID = primitive.NewObjectID()
	seat.CreatedAt = now
	seat.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, seat)
	return translate(err)
}

func (r *MongoSeatRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Seat, error) {
	var seat models.Seat
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&seat); err != nil {
		return nil, translate(err)
	}
	return &seat, nil
}

func (r *MongoSeatRepository) FindByFlightAndNumber(ctx context.Context, flightID primitive.ObjectID, seatNumber string) (*models.Seat, error) {
	var seat models.Seat
	filter := bson.M{"flight": flightID, "seatNumber": seatNumber}
	if err := r.collection.FindOne(ctx, filter).Decode(&seat); err != nil {
		return nil, translate(err)
	}
	return &seat, nil
}

func (r *MongoSeatRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Seat, error) {
	seats := []models.Seat{}
	if len(ids) == 0 {
		return seats, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// ListByFlight lists seats ordered by seat number. A nil flightID lists all.
func (r *MongoSeatRepository) ListByFlight(ctx context.Context, flightID *primitive.ObjectID) ([]models.Seat, error) {
	filter := bson.M{}
	if flightID != nil {
		filter["flight"] = *flightID
	}

	opts := options.Find().SetSort(bson.D{{Key: "seatNumber", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	seats := []models.Seat{}
	if err := cursor.All(ctx, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *MongoSeatRepository) Update(ctx context.Context, seat *models.Seat) error {
	seat.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"seatNumber": seat.SeatNumber,
		"updatedAt":  seat.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if seat.CustomerEmail == "" {
		update["$unset"] = bson.M{"customerEmail": ""}
	} else {
		set["customerEmail"] = seat.CustomerEmail
	}
	return checkMatched(r.collection.UpdateOne(ctx, bson.M{"_id": seat.ID}, update))
}

func (r *MongoSeatRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return checkDeleted(r.collection.DeleteOne(ctx, bson.M{"_id": id}))
}

func (r *MongoSeatRepository) DeleteByFlight(ctx context.Context, flightID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"flight": flightID})
	return err
}

func (r *MongoSeatRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
