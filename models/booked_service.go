package models

import "time"

// Refund statuses for a booked service line item.
const (
	RefundStatusNone      = "none"
	RefundStatusRequested = "requested"
	RefundStatusApproved  = "approved"
	RefundStatusRejected  = "rejected"
	RefundStatusRefunded  = "refunded"
)

// Line item service statuses, tracked independently from the parent booking's
// lifecycle so history survives a booking-level cancellation.
const (
	ServiceStatusPending    = "pending"
	ServiceStatusInProgress = "in_progress"
	ServiceStatusCompleted  = "completed"
	ServiceStatusCancelled  = "cancelled"
	ServiceStatusRefunded   = "refunded"
)

// BookedService is one service rendered within a booking.
type BookedService struct {
	ID        string `bson:"id" json:"id"`
	BookingID string `bson:"booking_id" json:"booking_id"`
	ServiceID string `bson:"service_id" json:"service_id"`
	StylistID string `bson:"stylist_id" json:"stylist_id"`

	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
	Total     float64 `bson:"total" json:"total"`
	Discount  float64 `bson:"discount" json:"discount"`
	Taxes     float64 `bson:"taxes" json:"taxes"`
	Duration  int     `bson:"duration" json:"duration"` // minutes

	RefundStatus  string  `bson:"refund_status" json:"refund_status"`
	RefundAmount  float64 `bson:"refund_amount" json:"refund_amount"`
	ServiceStatus string  `bson:"service_status" json:"service_status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
