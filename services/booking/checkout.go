package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"locart/config"
	"locart/models"
	"locart/services/payment"
	"locart/services/scheduling"
	"locart/utils"
)

// CreateOnlineBooking is the customer self-service checkout path. Pricing is
// computed server-side from the service base price plus the configured tax
// percentage, optionally reduced to the partial-payment percentage. The
// booking persists with payment_status pending, then a hosted checkout
// session opens carrying the booking id in its metadata so the reconciliation
// listener can correlate the async payment event back.
func (s *DefaultBookingService) CreateOnlineBooking(ctx context.Context, userID string, in *models.CreateOnlineBookingInput) (*models.OnlineBookingCreated, error) {
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if in.ServiceID == "" || in.StylistID == "" || in.ServiceDate == "" || in.ServiceStartTime == "" {
		return nil, validationError("service_id, stylist_id, service_date and service_start_time are required")
	}

	user, err := s.catalog.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, notFoundError("user not found")
	}
	svc, err := s.catalog.GetServiceByID(in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service %s: %w", in.ServiceID, err)
	}
	if svc == nil {
		return nil, notFoundError("service not found")
	}
	stylist, err := s.catalog.GetStylistByID(in.StylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylist %s: %w", in.StylistID, err)
	}
	if stylist == nil {
		return nil, notFoundError("stylist not found")
	}

	endTime, err := scheduling.AddMinutes(in.ServiceStartTime, svc.Duration)
	if err != nil {
		return nil, validationError(err.Error())
	}
	conflict, err := s.conflicts.Check(in.StylistID, in.ServiceDate, in.ServiceStartTime, svc.Duration, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflictError("time slot is not available", conflict.Message())
	}

	subtotal := svc.BasePrice
	taxes := subtotal * cfg.TaxPercentage / 100
	grandTotal := subtotal + taxes

	payable := grandTotal
	isPartial := in.IsPartialPayment && cfg.PartialAmountPercentage > 0
	if isPartial {
		payable = grandTotal * cfg.PartialAmountPercentage / 100
	}

	booking := &models.Booking{
		ID:            uuid.NewString(),
		BookingNumber: newBookingNumber(),
		UserID:        user.ID,
		StylistID:     stylist.ID,
		SalonID:       stylist.SalonID,

		Subtotal:      subtotal,
		TotalTaxes:    taxes,
		GrandTotal:    grandTotal,
		PayableAmount: payable,

		IsPartialPayment:  isPartial,
		PartialPercentage: cfg.PartialAmountPercentage,

		ServiceDate:      in.ServiceDate,
		ServiceStartTime: in.ServiceStartTime,
		ServiceEndTime:   endTime,
		TotalDuration:    svc.Duration,
		StylistDuration:  svc.Duration,

		BookingMode:   models.BookingModeOnline,
		BookingStatus: models.BookingStatusUpcoming,
		PaymentStatus: models.PaymentStatusPending,
	}

	item := models.BookedService{
		ID:            uuid.NewString(),
		BookingID:     booking.ID,
		ServiceID:     svc.ID,
		StylistID:     stylist.ID,
		Quantity:      1,
		UnitPrice:     svc.BasePrice,
		Total:         grandTotal,
		Taxes:         taxes,
		Duration:      svc.Duration,
		RefundStatus:  models.RefundStatusNone,
		ServiceStatus: models.ServiceStatusPending,
	}

	txn := &models.Transaction{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		BookingID:         booking.ID,
		TransactionType:   models.TransactionTypePayment,
		PaymentMethod:     "card",
		PaymentProcessor:  "stripe",
		Amount:            payable,
		NetAmount:         payable,
		Currency:          cfg.Currency,
		TransactionStatus: models.TransactionStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
	}

	if err := s.bookings.CreateBookingUnit(ctx, booking, []models.BookedService{item}, txn); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, conflictError("time slot is not available", "the slot was taken by a concurrent booking")
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	sessionID, checkoutURL, err := s.gateway.CreateCheckoutSession(payment.CheckoutParams{
		BookingID:     booking.ID,
		CustomerEmail: user.EmailAddress,
		Description:   fmt.Sprintf("%s with stylist on %s at %s", svc.ServiceName, in.ServiceDate, in.ServiceStartTime),
		Amount:        payable,
	})
	if err != nil {
		// The booking stays pending; the customer can retry payment or the
		// slot frees up on cancellation.
		logger.Error("checkout session creation failed",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return nil, serverError("failed to start checkout")
	}

	booking.StripeSessionID = sessionID
	if err := s.bookings.UpdateBooking(booking); err != nil {
		logger.Warn("failed to store checkout session id",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}

	logger.Info("online booking created",
		zap.String("bookingID", booking.ID),
		zap.String("sessionID", sessionID),
		zap.Float64("payable", payable))

	return &models.OnlineBookingCreated{
		BookingID:     booking.ID,
		CheckoutURL:   checkoutURL,
		PayableAmount: payable,
	}, nil
}

// VerifyPayment resolves a checkout session back to its booking and, when the
// session reports the payment complete, flips the booking's payment state.
// It backstops the webhook channel for customers returning on the success URL.
func (s *DefaultBookingService) VerifyPayment(sessionID string) (*models.Booking, error) {
	if sessionID == "" {
		return nil, validationError("session_id is required")
	}

	sess, err := s.gateway.RetrieveSession(sessionID)
	if err != nil {
		return nil, serverError("failed to verify payment")
	}
	bookingID := sess.Metadata["bookingId"]
	if bookingID == "" {
		return nil, notFoundError("session is not linked to a booking")
	}

	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}

	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid && booking.PaymentStatus != models.PaymentStatusPaid {
		intentID := ""
		if sess.PaymentIntent != nil {
			intentID = sess.PaymentIntent.ID
		}
		if err := s.bookings.SetPaymentState(booking.ID, models.PaymentStatusPaid, intentID); err != nil {
			return nil, fmt.Errorf("failed to record payment for booking %s: %w", booking.ID, err)
		}
		booking.PaymentStatus = models.PaymentStatusPaid
		booking.StripePaymentIntent = intentID
	}
	return booking, nil
}
