package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	bookingRepo "locart/database/repository/booking"
	"locart/models"
)

type fakeBookingRepo struct {
	bookingRepo.BookingRepository

	bookings map[string]*models.Booking
	states   []string
}

func (f *fakeBookingRepo) GetBookingByID(id string) (*models.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) SetPaymentState(bookingID, paymentStatus, paymentIntentID string) error {
	f.states = append(f.states, bookingID+":"+paymentStatus+":"+paymentIntentID)
	if b, ok := f.bookings[bookingID]; ok {
		b.PaymentStatus = paymentStatus
		b.StripePaymentIntent = paymentIntentID
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*models.Order
	states []string
}

func (f *fakeOrderRepo) GetOrderByID(id string) (*models.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) SetPaymentState(orderID, paymentStatus, orderStatus, paymentIntentID string) error {
	f.states = append(f.states, orderID+":"+paymentStatus+":"+orderStatus)
	return nil
}

func intentEvent(t *testing.T, eventType string, metadata map[string]string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"id":       "pi_1",
		"metadata": metadata,
	})
	require.NoError(t, err)
	return stripe.Event{
		ID:   "evt_1",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestBookingPaymentSucceeded(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"b-1": {ID: "b-1", PaymentStatus: models.PaymentStatusPending},
	}}
	listener := NewListener(repo, &fakeOrderRepo{})

	event := intentEvent(t, "payment_intent.succeeded", map[string]string{"bookingId": "b-1"})
	require.NoError(t, listener.HandleBookingEvent(event))

	assert.Equal(t, []string{"b-1:paid:pi_1"}, repo.states)
}

func TestBookingPaymentSucceededIdempotentReplay(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"b-1": {ID: "b-1", PaymentStatus: models.PaymentStatusPending},
	}}
	listener := NewListener(repo, &fakeOrderRepo{})

	event := intentEvent(t, "payment_intent.succeeded", map[string]string{"bookingId": "b-1"})
	require.NoError(t, listener.HandleBookingEvent(event))
	require.NoError(t, listener.HandleBookingEvent(event))

	// Last-write-wins: the booking ends up paid either way.
	assert.Equal(t, models.PaymentStatusPaid, repo.bookings["b-1"].PaymentStatus)
	assert.Len(t, repo.states, 2)
}

func TestBookingPaymentFailed(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"b-1": {ID: "b-1", PaymentStatus: models.PaymentStatusPending},
	}}
	listener := NewListener(repo, &fakeOrderRepo{})

	event := intentEvent(t, "payment_intent.payment_failed", map[string]string{"bookingId": "b-1"})
	require.NoError(t, listener.HandleBookingEvent(event))

	assert.Equal(t, models.PaymentStatusFailed, repo.bookings["b-1"].PaymentStatus)
}

func TestBookingEventMissingIDSwallowed(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*models.Booking{}}
	listener := NewListener(repo, &fakeOrderRepo{})

	event := intentEvent(t, "payment_intent.succeeded", map[string]string{})
	require.NoError(t, listener.HandleBookingEvent(event))
	assert.Empty(t, repo.states)
}

func TestBookingEventUnknownBookingSwallowed(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*models.Booking{}}
	listener := NewListener(repo, &fakeOrderRepo{})

	event := intentEvent(t, "payment_intent.succeeded", map[string]string{"bookingId": "ghost"})
	require.NoError(t, listener.HandleBookingEvent(event))
	assert.Empty(t, repo.states)
}

func TestBookingEventIgnoredType(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"b-1": {ID: "b-1"},
	}}
	listener := NewListener(repo, &fakeOrderRepo{})

	event := intentEvent(t, "payment_intent.created", map[string]string{"bookingId": "b-1"})
	require.NoError(t, listener.HandleBookingEvent(event))
	assert.Empty(t, repo.states)
}

func TestOrderPaymentSucceededConfirmsOrder(t *testing.T) {
	orders := &fakeOrderRepo{orders: map[string]*models.Order{
		"o-1": {ID: "o-1"},
	}}
	listener := NewListener(&fakeBookingRepo{}, orders)

	event := intentEvent(t, "payment_intent.succeeded", map[string]string{"orderId": "o-1"})
	require.NoError(t, listener.HandleOrderEvent(event))

	assert.Equal(t, []string{"o-1:paid:confirmed"}, orders.states)
}

func TestOrderPaymentFailedCancelsOrder(t *testing.T) {
	orders := &fakeOrderRepo{orders: map[string]*models.Order{
		"o-1": {ID: "o-1"},
	}}
	listener := NewListener(&fakeBookingRepo{}, orders)

	event := intentEvent(t, "payment_intent.payment_failed", map[string]string{"orderId": "o-1"})
	require.NoError(t, listener.HandleOrderEvent(event))

	assert.Equal(t, []string{"o-1:failed:cancelled"}, orders.states)
}
