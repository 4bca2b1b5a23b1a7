package models

import "time"

// Service is a salon catalog entry: what can be booked, at what base price,
// for how long.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	ServiceName string  `bson:"service_name" json:"service_name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice   float64 `bson:"base_price" json:"base_price"`
	Duration    int     `bson:"duration" json:"duration"` // minutes
	SalonID     string  `bson:"salon_id,omitempty" json:"salon_id,omitempty"`
	Status      string  `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
