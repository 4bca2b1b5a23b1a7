package models

import "time"

// User is a platform account: customer, merchant staff or stylist. Identity
// and authentication beyond the booking boundary live elsewhere; the engine
// only resolves and creates customer records.
type User struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	EmailAddress string `bson:"email_address" json:"email_address"`
	PhoneNumber  string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	DialingCode  string `bson:"dialing_code,omitempty" json:"dialing_code,omitempty"`

	PasswordHash string `bson:"password,omitempty" json:"-"`

	Status     string `bson:"status" json:"status"`
	IsVerified bool   `bson:"is_verified" json:"is_verified"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
