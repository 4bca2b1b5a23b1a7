package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"locart/config"
	"locart/models"
	"locart/utils"
)

// RefundBooking is the merchant-side refund: cancel the booking, stamp the
// cancellation audit fields, mark every line item refunded with the confirmed
// amount, and write a refund transaction. All writes are one atomic unit.
//
// The cumulative refund may never exceed what was actually collected: the
// confirmed amount is checked against completed payments minus prior refunds.
func (s *DefaultBookingService) RefundBooking(ctx context.Context, id string, in *models.RefundBookingInput) error {
	if in.ConfirmAmount <= 0 {
		return validationError("confirm_amount must be positive")
	}

	booking, err := s.loadBooking(id)
	if err != nil {
		return err
	}
	if booking.BookingStatus == models.BookingStatusCancelled {
		return conflictError("booking is already cancelled", "")
	}

	paid, err := s.bookings.SumCompletedPayments(id)
	if err != nil {
		return fmt.Errorf("failed to sum payments for booking %s: %w", id, err)
	}
	refunded, err := s.bookings.SumRefunds(id)
	if err != nil {
		return fmt.Errorf("failed to sum refunds for booking %s: %w", id, err)
	}
	if in.ConfirmAmount > paid-refunded {
		return validationError(fmt.Sprintf(
			"confirm_amount %.2f exceeds refundable balance %.2f", in.ConfirmAmount, paid-refunded))
	}

	now := time.Now()
	booking.BookingStatus = models.BookingStatusCancelled
	booking.PaymentStatus = models.PaymentStatusRefunded
	booking.CancelledAt = &now
	booking.CancellationReason = in.Remarks
	booking.CancelledBy = "merchant"

	txn := &models.Transaction{
		ID:                uuid.NewString(),
		UserID:            booking.UserID,
		BookingID:         booking.ID,
		TransactionType:   models.TransactionTypeRefund,
		PaymentMethod:     "refund",
		Amount:            in.ConfirmAmount,
		NetAmount:         in.ConfirmAmount,
		Currency:          config.AppConfig.Currency,
		TransactionStatus: models.TransactionStatusCompleted,
		PaymentStatus:     models.PaymentStatusRefunded,
		Remarks:           in.Remarks,
		ProcessedAt:       &now,
	}

	if err := s.bookings.RefundBookingUnit(ctx, booking, in.ConfirmAmount, txn); err != nil {
		return fmt.Errorf("failed to refund booking %s: %w", id, err)
	}

	s.notifier.Notify(booking.UserID, "Booking refunded",
		fmt.Sprintf("Your appointment on %s was cancelled and %.2f was refunded.", booking.ServiceDate, in.ConfirmAmount),
		"refund")

	utils.GetLogger().Info("booking refunded",
		zap.String("bookingID", id),
		zap.Float64("amount", in.ConfirmAmount))
	return nil
}

// CancelOwnBooking is the customer self-service cancellation for online
// bookings. It runs gateway-first: the refund is issued against the
// booking's succeeded payment intent before any local state changes, so a
// gateway failure leaves the booking untouched.
func (s *DefaultBookingService) CancelOwnBooking(ctx context.Context, id, userID string) (*models.CancelResult, error) {
	booking, err := s.loadBooking(id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, forbiddenError("booking belongs to another user")
	}
	if booking.BookingStatus != models.BookingStatusUpcoming {
		return nil, conflictError("booking can no longer be cancelled",
			fmt.Sprintf("booking is %s", booking.BookingStatus))
	}
	if booking.StripePaymentIntent == "" {
		return nil, forbiddenError("booking has no completed payment to refund")
	}

	intent, err := s.gateway.RetrieveIntent(booking.StripePaymentIntent)
	if err != nil {
		return nil, serverError("failed to verify payment state")
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, forbiddenError("payment has not succeeded; nothing to refund")
	}

	ref, err := s.gateway.CreateRefund(booking.StripePaymentIntent, booking.PayableAmount)
	if err != nil {
		return nil, serverError("refund failed; booking left unchanged")
	}

	now := time.Now()
	booking.BookingStatus = models.BookingStatusCancelled
	booking.PaymentStatus = models.PaymentStatusRefunded
	booking.CancelledAt = &now
	booking.CancellationReason = "cancelled by customer"
	booking.CancelledBy = userID

	txn := &models.Transaction{
		ID:                     uuid.NewString(),
		UserID:                 booking.UserID,
		BookingID:              booking.ID,
		TransactionType:        models.TransactionTypeRefund,
		PaymentMethod:          "card",
		PaymentProcessor:       "stripe",
		ProcessorTransactionID: ref.ID,
		Amount:                 booking.PayableAmount,
		NetAmount:              booking.PayableAmount,
		Currency:               config.AppConfig.Currency,
		TransactionStatus:      models.TransactionStatusCompleted,
		PaymentStatus:          models.PaymentStatusRefunded,
		ProcessedAt:            &now,
	}

	if err := s.bookings.RefundBookingUnit(ctx, booking, booking.PayableAmount, txn); err != nil {
		// The gateway refund already went through; the local record must be
		// reconciled by hand if this write fails.
		utils.GetLogger().Error("refund issued but local update failed",
			zap.String("bookingID", id), zap.String("refundID", ref.ID), zap.Error(err))
		return nil, fmt.Errorf("refund issued but booking update failed: %w", err)
	}

	s.notifier.Notify(booking.UserID, "Booking cancelled",
		fmt.Sprintf("Your appointment on %s at %s was cancelled and refunded.", booking.ServiceDate, booking.ServiceStartTime),
		"booking")

	return &models.CancelResult{RefundID: ref.ID, RefundStatus: string(ref.Status)}, nil
}

// RefundSummary reports the read-side refund state of one booking: the sum of
// line-item refund amounts, and Completed only when every line item has been
// refunded.
func (s *DefaultBookingService) RefundSummary(id string) (*models.RefundSummary, error) {
	booking, err := s.loadBooking(id)
	if err != nil {
		return nil, err
	}
	items, err := s.bookings.GetLineItems(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items for booking %s: %w", id, err)
	}

	var refundable float64
	var names []string
	allRefunded := len(items) > 0
	for _, it := range items {
		refundable += it.RefundAmount
		if it.RefundStatus != models.RefundStatusRefunded {
			allRefunded = false
		}
		if svc, err := s.catalog.GetServiceByID(it.ServiceID); err == nil && svc != nil {
			names = append(names, svc.ServiceName)
		}
	}

	status := "Pending"
	if allRefunded {
		status = "Completed"
	}

	summary := &models.RefundSummary{
		BookingID:        booking.ID,
		Services:         names,
		BookedOn:         booking.CreatedAt,
		Status:           booking.BookingStatus,
		RefundableAmount: refundable,
		RefundStatus:     status,
	}
	if dt, err := time.Parse("2006-01-02 15:04", booking.ServiceDate+" "+booking.ServiceStartTime); err == nil {
		summary.DateTime = dt
	}
	if stylist, err := s.catalog.GetStylistByID(booking.StylistID); err == nil && stylist != nil {
		summary.Stylist = s.stylistSummary(stylist).Name
	}
	if txn, err := s.bookings.GetTransactionByBookingID(id); err == nil && txn != nil {
		summary.AmountPaid = txn.Amount
		summary.PaymentMethod = txn.PaymentMethod
	}
	return summary, nil
}
