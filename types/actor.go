package types

import "fastfast-logistics/models/user"

// Actor is the authenticated caller, passed explicitly into services.
type Actor struct {
	UserID uint
	UUID   string
	Email  string
	Role   user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

func (a Actor) IsRider() bool {
	return a.Role == user.RoleRider
}
