package models

import "time"

// Booking modes. Store bookings are entered by salon staff; online bookings
// come from the customer self-service checkout.
const (
	BookingModeStore  = "store"
	BookingModeOnline = "online"
)

// Booking statuses. Completed and cancelled are terminal; pending, processing
// and confirmed count as "not yet completed, not cancelled" in aggregates.
const (
	BookingStatusUpcoming   = "upcoming"
	BookingStatusOngoing    = "ongoing"
	BookingStatusPending    = "pending"
	BookingStatusProcessing = "processing"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Payment statuses, tracked independently from the booking lifecycle.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Booking represents one scheduled salon appointment.
//
// Service date is a "2006-01-02" calendar date; start and end times are
// zero-padded "15:04" wall-clock strings on that date, so lexicographic
// comparison matches chronological order.
type Booking struct {
	ID            string `bson:"id" json:"id"`
	BookingNumber string `bson:"booking_number" json:"booking_number"`
	UserID        string `bson:"user_id" json:"user_id"`
	StylistID     string `bson:"stylist_id" json:"stylist_id"`
	SalonID       string `bson:"salon_id,omitempty" json:"salon_id,omitempty"`

	Subtotal      float64 `bson:"subtotal" json:"subtotal"`
	TotalDiscount float64 `bson:"total_discount" json:"total_discount"`
	TotalTaxes    float64 `bson:"total_taxes" json:"total_taxes"`
	GrandTotal    float64 `bson:"grand_total" json:"grand_total"`
	PayableAmount float64 `bson:"payable_amount" json:"payable_amount"`

	IsPartialPayment  bool    `bson:"is_partial_payment" json:"is_partial_payment"`
	PartialPercentage float64 `bson:"partial_percentage" json:"partial_percentage"`

	ServiceDate      string `bson:"service_date" json:"service_date"`
	ServiceStartTime string `bson:"service_start_time" json:"service_start_time"`
	ServiceEndTime   string `bson:"service_end_time" json:"service_end_time"`
	TotalDuration    int    `bson:"total_duration" json:"total_duration"`   // minutes
	StylistDuration  int    `bson:"stylist_duration" json:"stylist_duration"` // minutes

	BookingMode   string `bson:"booking_mode" json:"booking_mode"`
	BookingStatus string `bson:"booking_status" json:"booking_status"`
	PaymentStatus string `bson:"payment_status" json:"payment_status"`
	Notes         string `bson:"notes,omitempty" json:"notes,omitempty"`

	// Active mirrors booking_status != cancelled. It backs the partial unique
	// index on (stylist_id, service_date, service_start_time) that closes the
	// check-then-act window between conflict validation and commit.
	Active bool `bson:"active" json:"-"`

	StripeSessionID     string `bson:"stripe_session_id,omitempty" json:"stripe_session_id,omitempty"`
	StripePaymentIntent string `bson:"stripe_payment_intent,omitempty" json:"stripe_payment_intent,omitempty"`

	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CancelledBy        string     `bson:"cancelled_by,omitempty" json:"cancelled_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the booking has reached a terminal status.
func (b *Booking) IsTerminal() bool {
	return b.BookingStatus == BookingStatusCompleted || b.BookingStatus == BookingStatusCancelled
}

// ActiveBookingStatuses lists every status other than cancelled; bookings in
// any of these states occupy their stylist's calendar.
func ActiveBookingStatuses() []string {
	return []string{
		BookingStatusUpcoming,
		BookingStatusOngoing,
		BookingStatusPending,
		BookingStatusProcessing,
		BookingStatusConfirmed,
		BookingStatusCompleted,
	}
}
