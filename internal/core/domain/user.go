package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// UserStatus tracks a pending role-elevation request.
type UserStatus string

const (
	UserStatusNone      UserStatus = "none"
	UserStatusRequested UserStatus = "Requested"
	UserStatusVerified  UserStatus = "Verified"
)

// User is identified by email; it is created on first login and never deleted.
type User struct {
	ID        string     `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string     `json:"email" bson:"email"`
	Name      string     `json:"name,omitempty" bson:"name,omitempty"`
	Image     string     `json:"image,omitempty" bson:"image,omitempty"`
	Role      string     `json:"role" bson:"role"`
	Status    UserStatus `json:"status,omitempty" bson:"status,omitempty"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
}

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}
