package models

import "time"

// ClientSummary is the denormalized customer view embedded in booking responses.
type ClientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ServiceSummary is the denormalized service view embedded in booking responses.
type ServiceSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price,omitempty"`
	Duration int     `json:"duration"`
}

// StylistSummary is the denormalized stylist view embedded in booking responses.
type StylistSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaymentSummary is the amount breakdown returned on booking creation.
type PaymentSummary struct {
	Amount        float64 `json:"amount"`
	Discount      float64 `json:"discount"`
	PayableAmount float64 `json:"payable_amount"`
	Method        string  `json:"method,omitempty"`
	Status        string  `json:"status"`
}

// BookingCreated is the denormalized summary returned by the orchestrator.
type BookingCreated struct {
	BookingID     string         `json:"booking_id"`
	BookingStatus string         `json:"booking_status"`
	Client        ClientSummary  `json:"client"`
	Service       ServiceSummary `json:"service"`
	Stylist       StylistSummary `json:"stylist"`
	Payment       PaymentSummary `json:"payment"`
}

// OnlineBookingCreated is returned by the self-service checkout path.
type OnlineBookingCreated struct {
	BookingID     string  `json:"booking_id"`
	CheckoutURL   string  `json:"checkout_url"`
	PayableAmount float64 `json:"payable_amount"`
}

// BookingDetail is the full denormalized read view of a single booking.
type BookingDetail struct {
	BookingID   string           `json:"booking_id"`
	InvoiceID   string           `json:"invoice_id"`
	Date        string           `json:"date"`
	Time        string           `json:"time"`
	BookedOn    time.Time        `json:"booked_on"`
	Status      string           `json:"status"`
	BookingMode string           `json:"booking_mode"`
	Client      *ClientSummary   `json:"client,omitempty"`
	Stylist     *StylistSummary  `json:"stylist,omitempty"`
	Services    []ServiceSummary `json:"services"`
	Payment     PaymentDetail    `json:"payment"`
	Invoice     InvoiceDetail    `json:"invoice"`
}

// PaymentDetail is the payment block of a booking detail view.
type PaymentDetail struct {
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	AmountPaid    float64 `json:"amount_paid"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
}

// InvoiceDetail is the invoice block of a booking detail view.
type InvoiceDetail struct {
	ServiceCharges  float64 `json:"service_charges"`
	Taxes           float64 `json:"taxes"`
	LoyaltyDiscount float64 `json:"loyalty_discount"`
	TotalPayable    float64 `json:"total_payable"`
}

// BookingListItem is one row of the filtered booking list.
type BookingListItem struct {
	BookingID     string           `json:"booking_id"`
	Date          string           `json:"date"`
	Time          string           `json:"time"`
	Client        *ClientSummary   `json:"client,omitempty"`
	Stylist       *StylistSummary  `json:"stylist,omitempty"`
	Services      []ServiceSummary `json:"services"`
	Amount        float64          `json:"amount"`
	Discount      float64          `json:"discount"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	BookingMode   string           `json:"booking_mode"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// BulkStatusResult enumerates the applied and skipped ids of a partial-success
// bulk update.
type BulkStatusResult struct {
	UpdatedBookings []string `json:"updated_bookings"`
	SkippedBookings []string `json:"skipped_bookings"`
}

// MarkCompletedResult reports bulk completion counts.
type MarkCompletedResult struct {
	TotalRequested int `json:"total_requested"`
	TotalFound     int `json:"total_found"`
	TotalUpdated   int `json:"total_updated"`
	TotalSkipped   int `json:"total_skipped"`
}

// RefundSummary is the read-side refund state of a booking.
type RefundSummary struct {
	BookingID        string    `json:"booking_id"`
	DateTime         time.Time `json:"date_time"`
	Services         []string  `json:"services"`
	Stylist          string    `json:"stylist,omitempty"`
	BookedOn         time.Time `json:"booked_on"`
	Status           string    `json:"status"`
	AmountPaid       float64   `json:"amount_paid"`
	PaymentMethod    string    `json:"payment_method"`
	RefundableAmount float64   `json:"refundable_amount"`
	RefundStatus     string    `json:"refund_status"` // "Completed" or "Pending"
}

// CancelResult is returned on a successful self-service cancellation.
type CancelResult struct {
	RefundID     string `json:"refund_id"`
	RefundStatus string `json:"refund_status"`
}
