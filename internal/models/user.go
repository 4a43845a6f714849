package models

import "time"

// User represents an account in the system. Teachers receive and answer
// questions; admins are shown as such but have no extra routes.
type User struct {
	ID           int64
	Name         string
	PasswordHash string
	Teacher      bool
	Admin        bool
	CreatedAt    time.Time
}

// Role returns a display label for the user
func (u *User) Role() string {
	switch {
	case u.Admin && u.Teacher:
		return "Admin, Teacher"
	case u.Admin:
		return "Admin"
	case u.Teacher:
		return "Teacher"
	default:
		return "Student"
	}
}
