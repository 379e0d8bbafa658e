package domain

import "time"

// Role is the coarse capability class of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// User models a registered customer or store administrator.
//
// IsSuperuser is an orthogonal capability: it grants access to the
// administration area regardless of Role, but it does not turn an admin into
// a client.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	IsSuperuser  bool       `json:"is_superuser"`
	Birthdate    *time.Time `json:"birthdate,omitempty"`
	Address      string     `json:"address,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CanAdminister reports whether the user may reach administration pages.
func (u *User) CanAdminister() bool {
	return u != nil && (u.Role == RoleAdmin || u.IsSuperuser)
}
