package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID             string
	Email          string
	Username       string
	Password       string
	Name           string
	ProfilePicture string // object key, empty when unset
	IsPrivate      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserView is the public projection of a user: what other users may see.
type UserView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// View builds the public projection. ProfilePicture still holds the raw
// object key; services swap it for a signed URL before it leaves the process.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Username: u.Username, ProfilePicture: u.ProfilePicture}
}
