package models

import "time"

// Transaction types.
const (
	TransactionTypePayment       = "payment"
	TransactionTypeRefund        = "refund"
	TransactionTypePartialRefund = "partial_refund"
)

// Transaction statuses.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
	TransactionStatusRefunded  = "refunded"
)

// Transaction records one monetary event (payment or refund) tied to a
// booking or an e-commerce order. Amounts are plain decimal values in the
// configured currency; conversion to minor units happens only at the
// gateway boundary.
type Transaction struct {
	ID        string `bson:"id" json:"id"`
	UserID    string `bson:"user_id" json:"user_id"`
	BookingID string `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	OrderID   string `bson:"order_id,omitempty" json:"order_id,omitempty"`

	TransactionType string `bson:"transaction_type" json:"transaction_type"`
	PaymentMethod   string `bson:"payment_method" json:"payment_method"`

	PaymentProcessor       string `bson:"payment_processor,omitempty" json:"payment_processor,omitempty"`
	ProcessorTransactionID string `bson:"processor_transaction_id,omitempty" json:"processor_transaction_id,omitempty"`
	ProcessorChargeID      string `bson:"processor_charge_id,omitempty" json:"processor_charge_id,omitempty"`

	Amount    float64 `bson:"amount" json:"amount"`
	NetAmount float64 `bson:"net_amount" json:"net_amount"`
	Currency  string  `bson:"currency" json:"currency"`

	TransactionStatus string `bson:"transaction_status" json:"transaction_status"`
	PaymentStatus     string `bson:"payment_status" json:"payment_status"`

	Remarks string `bson:"remarks,omitempty" json:"remarks,omitempty"`

	ProcessedAt *time.Time `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
	SettledAt   *time.Time `bson:"settled_at,omitempty" json:"settled_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
