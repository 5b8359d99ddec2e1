package model

import "time"

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	RoleCaterer  Role = "CATERER"
)

// User represents an account on the platform. Caterer-specific fields are
// empty for customers and admins. Cart and Favorites are the user's persisted
// client state, synced from the presentation layer.
type User struct {
	ID                  string     `json:"id" bson:"-"`
	Name                string     `json:"name" bson:"name"`
	Email               string     `json:"email" bson:"email"`
	Password            string     `json:"password,omitempty" bson:"password"`
	Role                Role       `json:"role" bson:"role"`
	BusinessName        string     `json:"businessName,omitempty" bson:"businessName,omitempty"`
	BusinessDescription string     `json:"businessDescription,omitempty" bson:"businessDescription,omitempty"`
	Phone               string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Favorites           []string   `json:"favorites" bson:"favorites"`
	Cart                []CartItem `json:"cart" bson:"cart"`
	CreatedAt           time.Time  `json:"createdAt" bson:"createdAt"`
}

// Sanitized returns a copy of the user with the password removed. Every user
// record that leaves the service boundary goes through this.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
