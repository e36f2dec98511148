package models

// AuthContext is the identity of the caller, resolved once per request by the
// auth middleware and passed down by value. It is never mutated after
// construction; anything beyond the id and global privileges (for example
// league ownership) has to be re-resolved per call.
type AuthContext struct {
	UserID     int
	Name       string
	Privileges UserPrivileges
}

func (a AuthContext) IsAdmin() bool {
	return a.Privileges == PrivilegesAdmin
}
