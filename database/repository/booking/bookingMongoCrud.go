package bookingRepo

import (
	"fmt"
	"time"

	"locart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetBookingByID retrieves a booking document by ID.
func (r *MongoBookingRepo) GetBookingByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": id}
	if err := r.bookingColl.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// UpdateBooking modifies an existing booking document.
func (r *MongoBookingRepo) UpdateBooking(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	booking.Active = booking.BookingStatus != models.BookingStatusCancelled
	filter := bson.M{"id": booking.ID}
	update := bson.M{"$set": booking}

	result, err := r.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", booking.ID)
	}
	return nil
}

// SetPaymentState updates the payment state of a booking. Re-applying the
// same state is a no-op in effect, which keeps webhook re-delivery safe.
func (r *MongoBookingRepo) SetPaymentState(bookingID, paymentStatus, paymentIntentID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"payment_status": paymentStatus,
		"updated_at":     time.Now(),
	}
	if paymentIntentID != "" {
		set["stripe_payment_intent"] = paymentIntentID
	}

	result, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to set payment state for booking %s: %w", bookingID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", bookingID)
	}
	return nil
}

// FindByIDs fetches all bookings matching the given ids.
func (r *MongoBookingRepo) FindByIDs(ids []string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.bookingColl.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// MarkCompleted transitions all given bookings to completed and returns the
// number of modified documents.
func (r *MongoBookingRepo) MarkCompleted(ids []string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.bookingColl.UpdateMany(ctx,
		bson.M{"id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{
			"booking_status": models.BookingStatusCompleted,
			"updated_at":     time.Now(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("error marking bookings completed: %w", err)
	}
	return result.ModifiedCount, nil
}

// GetLineItems fetches all booked services of a booking.
func (r *MongoBookingRepo) GetLineItems(bookingID string) ([]models.BookedService, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.itemColl.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("error fetching booked services for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	var items []models.BookedService
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("error decoding booked services: %w", err)
	}
	return items, nil
}

// GetBookingIDsByServiceIDs resolves the bookings that contain any of the
// given services, used by the list filter.
func (r *MongoBookingRepo) GetBookingIDsByServiceIDs(serviceIDs []string) ([]string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.itemColl.Find(ctx, bson.M{"service_id": bson.M{"$in": serviceIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching booked services by service ids: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.BookedService
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("error decoding booked services: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	var ids []string
	for _, it := range items {
		if _, ok := seen[it.BookingID]; ok {
			continue
		}
		seen[it.BookingID] = struct{}{}
		ids = append(ids, it.BookingID)
	}
	return ids, nil
}

// GetTransactionByBookingID fetches the most recent transaction of a booking.
func (r *MongoBookingRepo) GetTransactionByBookingID(bookingID string) (*models.Transaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var txn models.Transaction
	opts := optionsFindOneSortedByCreatedAtDesc()
	if err := r.txnColl.FindOne(ctx, bson.M{"booking_id": bookingID}, opts).Decode(&txn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching transaction for booking %s: %w", bookingID, err)
	}
	return &txn, nil
}
