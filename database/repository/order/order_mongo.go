package orderRepo

import (
	"context"
	"fmt"
	"time"

	"locart/config"
	"locart/database"
	"locart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderRepository is the slice of the e-commerce order store the payment
// reconciliation listener touches.
type OrderRepository interface {
	GetOrderByID(id string) (*models.Order, error)
	SetPaymentState(orderID, paymentStatus, orderStatus, paymentIntentID string) error
}

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	orderColl *mongo.Collection
}

// NewMongoOrderRepo constructs a new instance of MongoOrderRepo.
func NewMongoOrderRepo() OrderRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoOrderRepo{orderColl: db.Collection("orders")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetOrderByID retrieves an order document by ID.
func (r *MongoOrderRepo) GetOrderByID(id string) (*models.Order, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var order models.Order
	if err := r.orderColl.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching order with id %s: %w", id, err)
	}
	return &order, nil
}

// SetPaymentState updates the payment and order status from a gateway event.
// Re-applying the same state is harmless, keeping webhook re-delivery safe.
func (r *MongoOrderRepo) SetPaymentState(orderID, paymentStatus, orderStatus, paymentIntentID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"payment_status": paymentStatus,
		"order_status":   orderStatus,
		"updated_at":     time.Now(),
	}
	if paymentIntentID != "" {
		set["stripe_payment_intent_id"] = paymentIntentID
	}

	result, err := r.orderColl.UpdateOne(ctx, bson.M{"id": orderID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to set payment state for order %s: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order with id %s not found", orderID)
	}
	return nil
}
