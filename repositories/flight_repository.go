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

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

func NewFlightRepository(db *mongo.Database) *MongoFlightRepository {
	return &MongoFlightRepository{collection: db.Collection(config.FlightsCollection)}
}

func (r *MongoFlightRepository) Create(ctx context.Context, flight *models.Flight) error {
	now := time.Now().UTC()
	flight.ID = primitive.NewObjectID()
	flight.CreatedAt = now
	flight.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, flight)
	return translate(err)
}

func (r *MongoFlightRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Flight, error) {
	var flight models.Flight
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&flight); err != nil {
		return nil, translate(err)
	}
	return &flight, nil
}

func (r *MongoFlightRepository) FindByNumber(ctx context.Context, flightNumber string) (*models.Flight, error) {
	var flight models.Flight
	if err := r.collection.FindOne(ctx, bson.M{"flightNumber": flightNumber}).Decode(&flight); err != nil {
		return nil, translate(err)
	}
	return &flight, nil
}

func (r *MongoFlightRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Flight, error) {
	flights := []models.Flight{}
	if len(ids) == 0 {
		return flights, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// List returns flights sorted by departure, newest first
func (r *MongoFlightRepository) List(ctx context.Context, flightNumber string) ([]models.Flight, error) {
	filter := bson.M{}
	if flightNumber != "" {
		filter["flightNumber"] = flightNumber
	}

	opts := options.Find().SetSort(bson.D{{Key: "departureTime", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	flights := []models.Flight{}
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *MongoFlightRepository) Update(ctx context.Context, flight *models.Flight) error {
	flight.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"flightNumber":    flight.FlightNumber,
		"originCode":      flight.OriginCode,
		"destinationCode": flight.DestinationCode,
		"departureTime":   flight.DepartureTime,
		"arrivalTime":     flight.ArrivalTime,
		"updatedAt":       flight.UpdatedAt,
	}}
	return checkMatched(r.collection.UpdateOne(ctx, bson.M{"_id": flight.ID}, update))
}

func (r *MongoFlightRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return checkDeleted(r.collection.DeleteOne(ctx, bson.M{"_id": id}))
}

func (r *MongoFlightRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
