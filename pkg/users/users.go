// Package users manages login accounts: demo seeding, creation and password
// resets on top of store.UsersStore.
package users

import (
	"errors"
	"fmt"
	"log"

	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// SeedUser is a user created by Seed.
type SeedUser struct {
	Email string
	Role  string
}

// DefaultSeedUsers are created on an empty users table.
var DefaultSeedUsers = []SeedUser{
	{Email: "admin@example.com", Role: "Admin"},
	{Email: "manager@example.com", Role: "Manager"},
	{Email: "viewer@example.com", Role: "Viewer"},
}

// Seed creates DefaultSeedUsers with password when no users exist yet.
// It returns the number of users created.
func Seed(users store.UsersStore, password []byte) (int, error) {
	count, err := users.CountUsers()
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, s := range DefaultSeedUsers {
		u, err := model.NewUser(s.Email, s.Role, password)
		if err != nil {
			return created, err
		}
		if err := users.CreateUser(u); err != nil {
			if errors.Is(err, store.ErrUserExists) {
				continue
			}
			return created, fmt.Errorf("failed to seed user %s: %w", s.Email, err)
		}
		log.Printf("Seeded user %s with role %s", u.Email, u.Role)
		created++
	}
	return created, nil
}

// Create adds a user with a hashed password.
func Create(users store.UsersStore, email, role string, password []byte) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}
	u, err := model.NewUser(email, role, password)
	if err != nil {
		return nil, err
	}
	if err := users.CreateUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResetPassword replaces the password of an existing user.
func ResetPassword(users store.UsersStore, email string, password []byte) error {
	email = model.NormalizeEmail(email)
	if _, err := users.GetUserByEmail(email); err != nil {
		return err
	}
	hash, err := model.HashPassword(password)
	if err != nil {
		return err
	}
	return users.UpdatePasswordHash(email, hash)
}
