package models

// Client type discriminators for store-mode booking creation.
const (
	ClientTypeExisting = "existing"
	ClientTypeNew      = "new"
)

// ClientInput describes the customer of a store-mode booking: either a
// reference to an existing user or the details of a new one.
type ClientInput struct {
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// CreateBookingInput is the store-mode booking creation payload.
type CreateBookingInput struct {
	Client        *ClientInput `json:"client"`
	ServiceID     string       `json:"service_id"`
	StylistID     string       `json:"stylist_id"`
	Date          string       `json:"date"`      // "2006-01-02"
	TimeSlot      string       `json:"time_slot"` // "15:04"
	Amount        float64      `json:"amount"`
	Discount      float64      `json:"discount"`
	PayableAmount float64      `json:"payable_amount"`
	PaymentStatus string       `json:"payment_status"`
	PaymentMethod string       `json:"payment_method"`
	BookingStatus string       `json:"booking_status"`
	BookingNote   string       `json:"booking_note,omitempty"`
}

// CreateOnlineBookingInput is the customer self-service checkout payload.
// Pricing is computed server-side from the service base price and configured
// tax/partial percentages, never taken from the caller.
type CreateOnlineBookingInput struct {
	ServiceID        string `json:"service_id"`
	StylistID        string `json:"stylist_id"`
	ServiceDate      string `json:"service_date"`
	ServiceStartTime string `json:"service_start_time"`
	IsPartialPayment bool   `json:"is_partial_payment"`
}

// UpdateBookingInput carries the editable fields of a store-mode booking.
// Nil pointers leave the corresponding field untouched.
type UpdateBookingInput struct {
	TimeSlot        *string `json:"time_slot,omitempty"`
	BookingStatus   *string `json:"booking_status,omitempty"`
	BookingNote     *string `json:"booking_note,omitempty"`
	StylistDuration *int    `json:"stylist_duration,omitempty"`
	PaymentStatus   *string `json:"payment_status,omitempty"`
}

// BulkStatusInput updates many store-mode bookings to one target status.
type BulkStatusInput struct {
	BookingIDs []string `json:"booking_ids"`
	Status     string   `json:"status"`
	Reason     string   `json:"reason,omitempty"`
}

// RefundBookingInput confirms a merchant-side refund amount.
type RefundBookingInput struct {
	ConfirmAmount float64 `json:"confirm_amount"`
	Remarks       string  `json:"remarks,omitempty"`
}

// BookingFilter narrows the booking list surface.
type BookingFilter struct {
	Statuses   []string
	StartDate  string
	EndDate    string
	MinAmount  float64
	MaxAmount  float64
	StartTime  string
	EndTime    string
	StylistIDs []string
	ServiceIDs []string
	Page       int
	PerPage    int
}
