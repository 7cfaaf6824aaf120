package models

import "encoding/json"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	var aux struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.alias)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// IsAdmin reports whether the profile carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthData is what the backend returns on login and registration.
type AuthData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// UserInput is the admin/profile update payload. Empty fields are omitted.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	Avatar   *Upload
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role   string
	Search string
}

// UserList is one page of users in the admin view.
type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}
