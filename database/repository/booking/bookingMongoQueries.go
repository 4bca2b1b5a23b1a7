package bookingRepo

import (
	"fmt"
	"time"

	"locart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func optionsFindOneSortedByCreatedAtDesc() *options.FindOneOptions {
	return options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

// FindConflict returns the first active booking whose interval overlaps the
// proposed [StartTime, EndTime) window on the same stylist/date, or nil.
// Two intervals conflict iff aStart < bEnd && aEnd > bStart; times are
// zero-padded "15:04" strings, so the comparison is done in the query.
func (r *MongoBookingRepo) FindConflict(q ConflictQuery) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"stylist_id":         q.StylistID,
		"service_date":       q.ServiceDate,
		"service_start_time": bson.M{"$lt": q.EndTime},
		"service_end_time":   bson.M{"$gt": q.StartTime},
		"booking_status":     bson.M{"$nin": bson.A{models.BookingStatusCancelled}},
	}
	if q.ExcludeBookingID != "" {
		filter["id"] = bson.M{"$ne": q.ExcludeBookingID}
	}

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding conflicting booking: %w", err)
	}
	return &booking, nil
}

// ListByStylistAndDate fetches a stylist's bookings on a date, optionally
// restricted to the given statuses.
func (r *MongoBookingRepo) ListByStylistAndDate(stylistID, date string, statuses []string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"stylist_id":   stylistID,
		"service_date": date,
	}
	if len(statuses) > 0 {
		filter["booking_status"] = bson.M{"$in": statuses}
	}

	cursor, err := r.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for stylist %s on %s: %w", stylistID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListBookings applies the list filter with pagination, newest first.
func (r *MongoBookingRepo) ListBookings(f models.BookingFilter) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if len(f.Statuses) > 0 {
		filter["booking_status"] = bson.M{"$in": f.Statuses}
	}
	if f.StartDate != "" || f.EndDate != "" {
		dateRange := bson.M{}
		if f.StartDate != "" {
			dateRange["$gte"] = f.StartDate
		}
		if f.EndDate != "" {
			dateRange["$lte"] = f.EndDate
		}
		filter["service_date"] = dateRange
	}
	if f.MinAmount > 0 || f.MaxAmount > 0 {
		amountRange := bson.M{}
		if f.MinAmount > 0 {
			amountRange["$gte"] = f.MinAmount
		}
		if f.MaxAmount > 0 {
			amountRange["$lte"] = f.MaxAmount
		}
		filter["grand_total"] = amountRange
	}
	if f.StartTime != "" || f.EndTime != "" {
		timeRange := bson.M{}
		if f.StartTime != "" {
			timeRange["$gte"] = f.StartTime
		}
		if f.EndTime != "" {
			timeRange["$lte"] = f.EndTime
		}
		filter["service_start_time"] = timeRange
	}
	if len(f.StylistIDs) > 0 {
		filter["stylist_id"] = bson.M{"$in": f.StylistIDs}
	}
	if len(f.ServiceIDs) > 0 {
		bookingIDs, err := r.GetBookingIDsByServiceIDs(f.ServiceIDs)
		if err != nil {
			return nil, 0, err
		}
		filter["id"] = bson.M{"$in": bookingIDs}
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 {
		perPage = 10
	}

	total, err := r.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, total, nil
}

// SumCompletedPayments aggregates the completed payment transactions of a
// booking; refunds must never exceed this amount.
func (r *MongoBookingRepo) SumCompletedPayments(bookingID string) (float64, error) {
	return r.sumTransactions(bookingID, models.TransactionTypePayment)
}

// SumRefunds aggregates the completed refund transactions of a booking.
func (r *MongoBookingRepo) SumRefunds(bookingID string) (float64, error) {
	refunds, err := r.sumTransactions(bookingID, models.TransactionTypeRefund)
	if err != nil {
		return 0, err
	}
	partial, err := r.sumTransactions(bookingID, models.TransactionTypePartialRefund)
	if err != nil {
		return 0, err
	}
	return refunds + partial, nil
}

func (r *MongoBookingRepo) sumTransactions(bookingID, txnType string) (float64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"booking_id":         bookingID,
			"transaction_type":   txnType,
			"transaction_status": models.TransactionStatusCompleted,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.txnColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating %s transactions for booking %s: %w", txnType, bookingID, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding transaction aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
