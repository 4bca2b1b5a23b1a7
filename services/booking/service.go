package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "locart/database/repository/booking"
	catalogRepo "locart/database/repository/catalog"
	"locart/models"
	"locart/services/notification"
	"locart/services/payment"
	"locart/services/scheduling"
)

// Service is the booking engine surface consumed by the HTTP handlers.
type Service interface {
	// Creation.
	CreateBooking(ctx context.Context, in *models.CreateBookingInput) (*models.BookingCreated, error)
	CreateOnlineBooking(ctx context.Context, userID string, in *models.CreateOnlineBookingInput) (*models.OnlineBookingCreated, error)
	VerifyPayment(sessionID string) (*models.Booking, error)

	// Lifecycle.
	UpdateBooking(ctx context.Context, id string, in *models.UpdateBookingInput) (*models.Booking, error)
	BulkUpdateStatus(ctx context.Context, in *models.BulkStatusInput) (*models.BulkStatusResult, error)
	MarkCompleted(ids []string) (*models.MarkCompletedResult, error)
	RefundBooking(ctx context.Context, id string, in *models.RefundBookingInput) error
	CancelOwnBooking(ctx context.Context, id, userID string) (*models.CancelResult, error)
	RefundSummary(id string) (*models.RefundSummary, error)

	// Reads.
	ListBookings(filter models.BookingFilter) ([]models.BookingListItem, *models.Pagination, error)
	GetBookingDetail(id string) (*models.BookingDetail, error)

	// Calendar export.
	ExportCalendar(id string) (filename string, ics []byte, err error)
}

// DefaultBookingService wires the repositories, the scheduling engine, the
// payment gateway and the notifier into the booking engine.
type DefaultBookingService struct {
	bookings  bookingRepo.BookingRepository
	catalog   catalogRepo.CatalogRepository
	conflicts *scheduling.ConflictValidator
	gateway   payment.Gateway
	notifier  notification.Notifier
}

func NewBookingService(
	bookings bookingRepo.BookingRepository,
	catalog catalogRepo.CatalogRepository,
	conflicts *scheduling.ConflictValidator,
	gateway payment.Gateway,
	notifier notification.Notifier,
) *DefaultBookingService {
	return &DefaultBookingService{
		bookings:  bookings,
		catalog:   catalog,
		conflicts: conflicts,
		gateway:   gateway,
		notifier:  notifier,
	}
}

// newBookingNumber produces the human-facing invoice reference.
func newBookingNumber() string {
	return fmt.Sprintf("BK-%d", time.Now().UnixMilli())
}

func normalizeStatus(s, fallback string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	return s
}

// loadBooking fetches a booking and maps absence to a not-found error.
func (s *DefaultBookingService) loadBooking(id string) (*models.Booking, error) {
	b, err := s.bookings.GetBookingByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	if b == nil {
		return nil, notFoundError("booking not found")
	}
	return b, nil
}

func (s *DefaultBookingService) stylistSummary(stylist *models.Stylist) models.StylistSummary {
	summary := models.StylistSummary{ID: stylist.ID}
	if user, err := s.catalog.GetUserByID(stylist.UserID); err == nil && user != nil {
		summary.Name = user.Name
	}
	return summary
}
