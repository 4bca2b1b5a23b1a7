package models

import "time"

// Holiday marks a salon-wide non-bookable date; the availability calculator
// returns no slots for any stylist of the salon on such a date.
type Holiday struct {
	ID          string `bson:"id" json:"id"`
	Date        string `bson:"date" json:"date"` // "2006-01-02"
	Day         string `bson:"day" json:"day"`   // weekday name
	Occasion    string `bson:"occasion" json:"occasion"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	SalonID     string `bson:"salon_id" json:"salon_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
