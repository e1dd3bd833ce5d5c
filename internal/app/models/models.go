package models

// RoleType defines the user role type carried by the auth context
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleOfficer RoleType = "OFFICER"
	RoleAdmin   RoleType = "ADMIN"
)

// Valid reports whether r is a known role
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// AuthContext is the identity resolved by the token layer for a request
type AuthContext struct {
	UserID int64
	Role   RoleType
}
