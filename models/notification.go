package models

import "time"

// Notification is a fire-and-forget record surfaced to the user's inbox.
// Delivery failures never roll back the booking operation that emitted them.
type Notification struct {
	ID      string `bson:"id" json:"id"`
	UserID  string `bson:"user_id" json:"user_id"`
	Title   string `bson:"title" json:"title"`
	Message string `bson:"message" json:"message"`
	Type    string `bson:"type" json:"type"`
	Read    bool   `bson:"read" json:"read"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
