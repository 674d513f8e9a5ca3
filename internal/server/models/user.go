// Package models defines the server-side domain records shared by storage,
// services and the HTTP layer.
package models

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullname"`
	PasswordHash string `json:"-"`
}

// PublicUser is the projection of a User returned to clients.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

// Public strips credentials from u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName}
}
