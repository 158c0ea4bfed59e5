package models

// Role is the sole authorization signal carried by a user record.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCustomer     Role = "customer"
	RoleDriver       Role = "driver"
	RoleVehicleOwner Role = "vehicle_owner"
	RoleTechnician   Role = "technician"
)

// Roles lists every role the backend issues, in display order.
var Roles = []Role{RoleAdmin, RoleCustomer, RoleDriver, RoleVehicleOwner, RoleTechnician}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User mirrors the backend's user document.
type User struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       Role      `json:"role"`
	ProfilePic string    `json:"profilePic,omitempty"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  Timestamp `json:"createdAt"`
}

// DisplayName falls back to the email when the name is blank.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
