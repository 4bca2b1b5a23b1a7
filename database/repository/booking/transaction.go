package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"locart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withTransaction runs fn inside a Mongo session transaction; on any error
// the whole unit is aborted and no partial state becomes visible.
func (r *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// CreateBookingUnit persists a booking, its line items and the payment
// transaction as one atomic unit. The partial unique index on active
// (stylist, date, start time) makes the insert fail here if a concurrent
// request won the same slot after both passed validation.
func (r *MongoBookingRepo) CreateBookingUnit(
	ctx context.Context,
	booking *models.Booking,
	items []models.BookedService,
	txn *models.Transaction,
) error {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Active = booking.BookingStatus != models.BookingStatusCancelled

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		for i := range items {
			items[i].CreatedAt = now
			items[i].UpdatedAt = now
			if _, err := r.itemColl.InsertOne(sc, items[i]); err != nil {
				return fmt.Errorf("insert booked service failed: %w", err)
			}
		}
		if txn != nil {
			txn.CreatedAt = now
			txn.UpdatedAt = now
			if _, err := r.txnColl.InsertOne(sc, txn); err != nil {
				return fmt.Errorf("insert transaction failed: %w", err)
			}
		}
		return nil
	})
}

// RefundBookingUnit cancels the booking, marks every line item refunded with
// the given amount and records the refund transaction, all atomically.
func (r *MongoBookingRepo) RefundBookingUnit(
	ctx context.Context,
	booking *models.Booking,
	refundAmount float64,
	txn *models.Transaction,
) error {
	now := time.Now()
	booking.UpdatedAt = now
	booking.Active = false

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := r.bookingColl.UpdateOne(sc, bson.M{"id": booking.ID}, bson.M{"$set": booking})
		if err != nil {
			return fmt.Errorf("update booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("booking with id %s not found", booking.ID)
		}

		_, err = r.itemColl.UpdateMany(sc,
			bson.M{"booking_id": booking.ID},
			bson.M{"$set": bson.M{
				"refund_status":  models.RefundStatusRefunded,
				"refund_amount":  refundAmount,
				"service_status": models.ServiceStatusRefunded,
				"updated_at":     now,
			}},
		)
		if err != nil {
			return fmt.Errorf("update booked services failed: %w", err)
		}

		txn.CreatedAt = now
		txn.UpdatedAt = now
		if _, err := r.txnColl.InsertOne(sc, txn); err != nil {
			return fmt.Errorf("insert refund transaction failed: %w", err)
		}
		return nil
	})
}

// UpdateStatusBulk sets the target status on every store-mode booking of the
// id set inside one transaction and reports the ids it skipped. Partial
// success is the intended outcome, not a failure.
func (r *MongoBookingRepo) UpdateStatusBulk(
	ctx context.Context,
	ids []string,
	status, reason string,
) (updated []string, skipped []string, err error) {
	bookings, err := r.FindByIDs(ids)
	if err != nil {
		return nil, nil, err
	}
	if len(bookings) == 0 {
		return nil, nil, fmt.Errorf("no bookings found for the provided ids")
	}

	now := time.Now()
	err = r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		for _, b := range bookings {
			if b.BookingMode != models.BookingModeStore {
				skipped = append(skipped, b.ID)
				continue
			}
			set := bson.M{
				"booking_status": status,
				"active":         status != models.BookingStatusCancelled,
				"updated_at":     now,
			}
			if reason != "" {
				set["cancellation_reason"] = reason
				set["cancelled_at"] = now
			}
			if _, err := r.bookingColl.UpdateOne(sc, bson.M{"id": b.ID}, bson.M{"$set": set}); err != nil {
				return fmt.Errorf("update booking %s failed: %w", b.ID, err)
			}
			updated = append(updated, b.ID)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, skipped, nil
}
