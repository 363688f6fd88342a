package store

import (
	"errors"

	"github.com/doodlesbykumbi/autocrud/pkg/model"
)

// ErrUserNotFound is returned when no user has the given email or id
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when creating a user whose email is taken
var ErrUserExists = errors.New("user already exists")

// UsersStore abstracts user storage operations
type UsersStore interface {
	// GetUserByEmail looks up a user by normalized email.
	GetUserByEmail(email string) (*model.User, error)

	// CreateUser inserts a user. Returns ErrUserExists on a duplicate email.
	CreateUser(user *model.User) error

	// UpdatePasswordHash replaces the password hash of a user.
	UpdatePasswordHash(email string, hash string) error

	// CountUsers returns the number of users.
	CountUsers() (int64, error)
}
