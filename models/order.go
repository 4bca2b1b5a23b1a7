package models

import "time"

// Order statuses touched by payment reconciliation. The wider e-commerce
// order lifecycle is managed elsewhere; the engine only flips payment state
// from gateway events.
const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// Order is the e-commerce counterpart of a booking for the purposes of the
// reconciliation listener. Orders arrive over their own webhook channel with
// a distinct signing secret.
type Order struct {
	ID          string  `bson:"id" json:"id"`
	UserID      string  `bson:"user_id" json:"user_id"`
	GrandTotal  float64 `bson:"grand_total" json:"grand_total"`
	OrderStatus string  `bson:"order_status" json:"order_status"`

	PaymentStatus         string `bson:"payment_status" json:"payment_status"`
	StripePaymentIntentID string `bson:"stripe_payment_intent_id,omitempty" json:"stripe_payment_intent_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
