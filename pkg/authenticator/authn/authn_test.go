package authn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

type mockUsersStore struct {
	mock.Mock
}

func (m *mockUsersStore) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUsersStore) CreateUser(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUsersStore) UpdatePasswordHash(email string, hash string) error {
	return m.Called(email, hash).Error(0)
}

func (m *mockUsersStore) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type mockHealthStore struct {
	err error
}

func (m mockHealthStore) CheckConnectivity() error { return m.err }

func TestAuthenticator_Name(t *testing.T) {
	auth := NewPasswordAuthenticator(&mockUsersStore{}, nil)
	assert.Equal(t, "password", auth.Name())
}

func TestAuthenticator_Authenticate_Success(t *testing.T) {
	users := &mockUsersStore{}
	auth := NewPasswordAuthenticator(users, nil)

	user, err := model.NewUser("manager@example.com", "Manager", []byte("pass"))
	require.NoError(t, err)
	users.On("GetUserByEmail", "manager@example.com").Return(user, nil)

	got, err := auth.Authenticate(context.Background(), authenticator.AuthenticatorInput{
		Login:       "manager@example.com",
		Credentials: []byte("pass"),
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	users.AssertExpectations(t)
}

func TestAuthenticator_Authenticate_WrongPassword(t *testing.T) {
	users := &mockUsersStore{}
	auth := NewPasswordAuthenticator(users, nil)

	user, err := model.NewUser("viewer@example.com", "Viewer", []byte("pass"))
	require.NoError(t, err)
	users.On("GetUserByEmail", "viewer@example.com").Return(user, nil)

	_, err = auth.Authenticate(context.Background(), authenticator.AuthenticatorInput{
		Login:       "viewer@example.com",
		Credentials: []byte("wrong"),
	})
	assert.ErrorIs(t, err, authenticator.ErrInvalidCredentials)
}

func TestAuthenticator_Authenticate_UnknownUser(t *testing.T) {
	users := &mockUsersStore{}
	auth := NewPasswordAuthenticator(users, nil)

	users.On("GetUserByEmail", "ghost@example.com").Return(nil, store.ErrUserNotFound)

	_, err := auth.Authenticate(context.Background(), authenticator.AuthenticatorInput{
		Login:       "ghost@example.com",
		Credentials: []byte("pass"),
	})
	assert.ErrorIs(t, err, authenticator.ErrInvalidCredentials)
}

func TestAuthenticator_Authenticate_MissingInput(t *testing.T) {
	auth := NewPasswordAuthenticator(&mockUsersStore{}, nil)

	_, err := auth.Authenticate(context.Background(), authenticator.AuthenticatorInput{Login: "a@example.com"})
	assert.ErrorIs(t, err, authenticator.ErrInvalidCredentials)

	_, err = auth.Authenticate(context.Background(), authenticator.AuthenticatorInput{Credentials: []byte("x")})
	assert.ErrorIs(t, err, authenticator.ErrInvalidCredentials)
}

func TestAuthenticator_Authenticate_StoreError(t *testing.T) {
	users := &mockUsersStore{}
	auth := NewPasswordAuthenticator(users, nil)

	users.On("GetUserByEmail", "admin@example.com").Return(nil, errors.New("connection reset"))

	_, err := auth.Authenticate(context.Background(), authenticator.AuthenticatorInput{
		Login:       "admin@example.com",
		Credentials: []byte("pass"),
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, authenticator.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestAuthenticator_Status(t *testing.T) {
	assert.NoError(t, NewPasswordAuthenticator(&mockUsersStore{}, nil).Status(context.Background()))
	assert.NoError(t, NewPasswordAuthenticator(&mockUsersStore{}, mockHealthStore{}).Status(context.Background()))
	assert.Error(t, NewPasswordAuthenticator(&mockUsersStore{}, mockHealthStore{err: errors.New("down")}).Status(context.Background()))
}
