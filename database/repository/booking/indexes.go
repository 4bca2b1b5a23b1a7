package bookingRepo

import (
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the query indexes plus the partial unique index that
// serializes concurrent identical slot requests at the storage layer: two
// requests that both pass conflict validation cannot both commit an active
// booking for the same (stylist, date, start time).
func (r *MongoBookingRepo) ensureIndexes() {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "stylist_id", Value: 1}, {Key: "service_date", Value: 1}}},
		{Keys: bson.D{{Key: "booking_status", Value: 1}}},
		{Keys: bson.D{{Key: "payment_status", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "stylist_id", Value: 1},
				{Key: "service_date", Value: 1},
				{Key: "service_start_time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
	}
	if _, err := r.bookingColl.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		log.Printf("warning: failed to create booking indexes: %v", err)
	}

	itemIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		{Keys: bson.D{{Key: "service_id", Value: 1}}},
	}
	if _, err := r.itemColl.Indexes().CreateMany(ctx, itemIndexes); err != nil {
		log.Printf("warning: failed to create booked_services indexes: %v", err)
	}

	txnIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		{Keys: bson.D{{Key: "order_id", Value: 1}}},
		{Keys: bson.D{{Key: "transaction_type", Value: 1}, {Key: "transaction_status", Value: 1}}},
	}
	if _, err := r.txnColl.Indexes().CreateMany(ctx, txnIndexes); err != nil {
		log.Printf("warning: failed to create transaction indexes: %v", err)
	}
}
