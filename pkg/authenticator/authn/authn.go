package authn

import (
	"context"
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// Name is the registry name of the password authenticator
const Name = "password"

// dummyHash is compared against when the login is unknown so that unknown
// and known logins take the same time.
var dummyHash, _ = model.HashPassword([]byte("autocrud-timing-equalizer"))

// Authenticator implements email and password authentication
type Authenticator struct {
	users  store.UsersStore
	health store.HealthStore
}

// NewPasswordAuthenticator creates a new password authenticator
func NewPasswordAuthenticator(users store.UsersStore, health store.HealthStore) *Authenticator {
	return &Authenticator{
		users:  users,
		health: health,
	}
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return Name
}

// Authenticate checks the password against the stored bcrypt hash
func (a *Authenticator) Authenticate(ctx context.Context, input authenticator.AuthenticatorInput) (*model.User, error) {
	if input.Login == "" || len(input.Credentials) == 0 {
		return nil, authenticator.ErrInvalidCredentials
	}

	user, err := a.users.GetUserByEmail(input.Login)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			model.ComparePassword(dummyHash, input.Credentials)
			return nil, authenticator.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	if !user.CheckPassword(input.Credentials) {
		return nil, authenticator.ErrInvalidCredentials
	}
	return user, nil
}

// Status checks if the authenticator is healthy
func (a *Authenticator) Status(ctx context.Context) error {
	if a.health == nil {
		return nil
	}
	return a.health.CheckConnectivity()
}
