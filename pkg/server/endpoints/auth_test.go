package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/autocrud/pkg/identity"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
	"github.com/doodlesbykumbi/autocrud/pkg/token"
)

func loginSetup(t *testing.T) (*authenticator.Registry, *token.Issuer, *MockUsersStore) {
	t.Helper()
	users := new(MockUsersStore)
	health := new(MockHealthStore)
	health.On("CheckConnectivity").Return(nil)

	authenticators := authenticator.NewRegistry()
	authenticators.Register(authn.NewPasswordAuthenticator(users, health))
	require.NoError(t, authenticators.Enable(authn.Name))

	return authenticators, token.NewIssuer([]byte("test-secret"), time.Hour), users
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials return a token", func(t *testing.T) {
		authenticators, tokens, users := loginSetup(t)
		u, err := model.NewUser("manager@example.com", "Manager", []byte("pass"))
		require.NoError(t, err)
		users.On("GetUserByEmail", "manager@example.com").Return(u, nil)

		req := newRequest("POST", "/auth/login", `{"email":"Manager@example.com","password":"pass"}`, nil, nil)
		w := httptest.NewRecorder()
		handleLogin(authenticators, tokens)(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp LoginResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, u.ID, resp.User.ID)
		assert.Equal(t, "Manager", resp.User.Role)
		assert.Equal(t, "manager@example.com", resp.User.Email)
		assert.NotContains(t, w.Body.String(), u.PasswordHash)

		claims, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, "Manager", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		authenticators, tokens, users := loginSetup(t)
		u, err := model.NewUser("viewer@example.com", "Viewer", []byte("pass"))
		require.NoError(t, err)
		users.On("GetUserByEmail", "viewer@example.com").Return(u, nil)

		req := newRequest("POST", "/auth/login", `{"email":"viewer@example.com","password":"nope"}`, nil, nil)
		w := httptest.NewRecorder()
		handleLogin(authenticators, tokens)(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", errorOf(t, w))
	})

	t.Run("unknown user", func(t *testing.T) {
		authenticators, tokens, users := loginSetup(t)
		users.On("GetUserByEmail", "ghost@example.com").Return(nil, store.ErrUserNotFound)

		req := newRequest("POST", "/auth/login", `{"email":"ghost@example.com","password":"pass"}`, nil, nil)
		w := httptest.NewRecorder()
		handleLogin(authenticators, tokens)(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", errorOf(t, w))
	})

	t.Run("store failure", func(t *testing.T) {
		authenticators, tokens, users := loginSetup(t)
		users.On("GetUserByEmail", "admin@example.com").Return(nil, errors.New("db down"))

		req := newRequest("POST", "/auth/login", `{"email":"admin@example.com","password":"pass"}`, nil, nil)
		w := httptest.NewRecorder()
		handleLogin(authenticators, tokens)(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		authenticators, tokens, _ := loginSetup(t)
		w := httptest.NewRecorder()
		handleLogin(authenticators, tokens)(w, newRequest("POST", "/auth/login", `{`, nil, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWhoami(t *testing.T) {
	w := httptest.NewRecorder()
	handleWhoami()(w, newRequest("GET", "/auth/whoami", "", identity.Mock(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp WhoamiResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, "Admin", resp.Role)
	assert.True(t, resp.Mock)

	w = httptest.NewRecorder()
	handleWhoami()(w, newRequest("GET", "/auth/whoami", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
