package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	bookingRepo "locart/database/repository/booking"
	orderRepo "locart/database/repository/order"
	"locart/models"
	"locart/utils"
)

// Listener applies asynchronous payment gateway events to local payment
// state. Bookings and orders arrive over separate webhook channels with
// distinct signing secrets; signature verification happens in the handler
// before an event reaches the listener.
//
// Processing is idempotent: redelivery of a succeeded event re-applies the
// same paid state. An event without a usable id, or referencing an unknown
// record, is logged and swallowed so the gateway still gets its ack and does
// not storm redeliveries.
type Listener struct {
	bookings bookingRepo.BookingRepository
	orders   orderRepo.OrderRepository
}

func NewListener(bookings bookingRepo.BookingRepository, orders orderRepo.OrderRepository) *Listener {
	return &Listener{bookings: bookings, orders: orders}
}

// HandleBookingEvent processes one event from the bookings channel.
func (l *Listener) HandleBookingEvent(event stripe.Event) error {
	logger := utils.GetLogger()

	intent, err := parseIntent(event)
	if err != nil {
		logger.Warn("bookings webhook: unparseable event",
			zap.String("eventType", string(event.Type)), zap.Error(err))
		return nil
	}
	bookingID := intent.Metadata["bookingId"]
	if bookingID == "" {
		logger.Warn("bookings webhook: event without bookingId metadata",
			zap.String("intentID", intent.ID), zap.String("eventType", string(event.Type)))
		return nil
	}

	booking, err := l.bookings.GetBookingByID(bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		logger.Warn("bookings webhook: unknown booking",
			zap.String("bookingID", bookingID), zap.String("intentID", intent.ID))
		return nil
	}

	switch event.Type {
	case "payment_intent.succeeded":
		if err := l.bookings.SetPaymentState(bookingID, models.PaymentStatusPaid, intent.ID); err != nil {
			return fmt.Errorf("failed to mark booking %s paid: %w", bookingID, err)
		}
		logger.Info("booking payment reconciled",
			zap.String("bookingID", bookingID), zap.String("intentID", intent.ID))

	case "payment_intent.payment_failed":
		if err := l.bookings.SetPaymentState(bookingID, models.PaymentStatusFailed, intent.ID); err != nil {
			return fmt.Errorf("failed to mark booking %s failed: %w", bookingID, err)
		}
		logger.Info("booking payment failed",
			zap.String("bookingID", bookingID), zap.String("intentID", intent.ID))

	default:
		logger.Debug("bookings webhook: ignored event type",
			zap.String("eventType", string(event.Type)))
	}
	return nil
}

// HandleOrderEvent processes one event from the orders channel. It mirrors
// the bookings flow: paid confirms the order, failed cancels it.
func (l *Listener) HandleOrderEvent(event stripe.Event) error {
	logger := utils.GetLogger()

	intent, err := parseIntent(event)
	if err != nil {
		logger.Warn("orders webhook: unparseable event",
			zap.String("eventType", string(event.Type)), zap.Error(err))
		return nil
	}
	orderID := intent.Metadata["orderId"]
	if orderID == "" {
		logger.Warn("orders webhook: event without orderId metadata",
			zap.String("intentID", intent.ID), zap.String("eventType", string(event.Type)))
		return nil
	}

	order, err := l.orders.GetOrderByID(orderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", orderID, err)
	}
	if order == nil {
		logger.Warn("orders webhook: unknown order",
			zap.String("orderID", orderID), zap.String("intentID", intent.ID))
		return nil
	}

	switch event.Type {
	case "payment_intent.succeeded":
		if err := l.orders.SetPaymentState(orderID, models.PaymentStatusPaid, models.OrderStatusConfirmed, intent.ID); err != nil {
			return fmt.Errorf("failed to mark order %s paid: %w", orderID, err)
		}
		logger.Info("order payment reconciled",
			zap.String("orderID", orderID), zap.String("intentID", intent.ID))

	case "payment_intent.payment_failed":
		if err := l.orders.SetPaymentState(orderID, models.PaymentStatusFailed, models.OrderStatusCancelled, intent.ID); err != nil {
			return fmt.Errorf("failed to mark order %s failed: %w", orderID, err)
		}
		logger.Info("order payment failed",
			zap.String("orderID", orderID), zap.String("intentID", intent.ID))

	default:
		logger.Debug("orders webhook: ignored event type",
			zap.String("eventType", string(event.Type)))
	}
	return nil
}

func parseIntent(event stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse payment intent payload: %w", err)
	}
	return &intent, nil
}
