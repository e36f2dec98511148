package models

import "time"

// UserPrivileges corresponds to the user_privileges ENUM in the database.
type UserPrivileges string

const (
	PrivilegesUser  UserPrivileges = "USER"
	PrivilegesAdmin UserPrivileges = "ADMIN"
)

type User struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Privileges   UserPrivileges `json:"privileges"`
	PasswordHash *string        `json:"-"`
	AvatarKey    *string        `json:"-"`
	AvatarURL    *string        `json:"avatar_url,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Privileges == PrivilegesAdmin
}
