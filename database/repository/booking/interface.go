package bookingRepo

import (
	"context"

	"locart/models"
)

// ConflictQuery describes a proposed [start,end) interval on a stylist's
// calendar. ExcludeBookingID removes the booking being edited from its own
// conflict check.
type ConflictQuery struct {
	StylistID        string
	ServiceDate      string
	StartTime        string // "15:04"
	EndTime          string // "15:04"
	ExcludeBookingID string
}

// BookingRepository persists bookings, their line items and transactions.
// The Create/Refund/BulkStatus methods are atomic units: all writes inside
// them become visible together or not at all.
type BookingRepository interface {
	// Atomic units.
	CreateBookingUnit(ctx context.Context, booking *models.Booking, items []models.BookedService, txn *models.Transaction) error
	RefundBookingUnit(ctx context.Context, booking *models.Booking, refundAmount float64, txn *models.Transaction) error
	UpdateStatusBulk(ctx context.Context, ids []string, status, reason string) (updated []string, skipped []string, err error)

	// Bookings.
	GetBookingByID(id string) (*models.Booking, error)
	UpdateBooking(booking *models.Booking) error
	SetPaymentState(bookingID, paymentStatus, paymentIntentID string) error
	FindConflict(q ConflictQuery) (*models.Booking, error)
	ListByStylistAndDate(stylistID, date string, statuses []string) ([]models.Booking, error)
	ListBookings(filter models.BookingFilter) ([]models.Booking, int64, error)
	FindByIDs(ids []string) ([]models.Booking, error)
	MarkCompleted(ids []string) (int64, error)

	// Line items.
	GetLineItems(bookingID string) ([]models.BookedService, error)
	GetBookingIDsByServiceIDs(serviceIDs []string) ([]string, error)

	// Transactions.
	GetTransactionByBookingID(bookingID string) (*models.Transaction, error)
	SumCompletedPayments(bookingID string) (float64, error)
	SumRefunds(bookingID string) (float64, error)
}
