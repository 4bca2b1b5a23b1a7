package models

import "time"

// Role names are a closed set; capability checks in the middleware layer key
// off these values.
const (
	RoleCustomer = "customer"
	RoleMerchant = "merchant"
	RoleStylist  = "stylist"
)

// Role groups users under a named role.
type Role struct {
	ID          string   `bson:"id" json:"id"`
	RoleName    string   `bson:"role_name" json:"role_name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Users       []string `bson:"users" json:"users"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
