package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/authenticator/authn"
)

func TestHandleStatus(t *testing.T) {
	t.Run("returns ok with version", func(t *testing.T) {
		t.Setenv("AUTOCRUD_VERSION_DISPLAY", "1.2.3")
		health := new(MockHealthStore)
		health.On("CheckConnectivity").Return(nil)

		w := httptest.NewRecorder()
		handleStatus(health)(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","version":"1.2.3"}`, w.Body.String())
	})

	t.Run("returns 503 when the database is down", func(t *testing.T) {
		health := new(MockHealthStore)
		health.On("CheckConnectivity").Return(errors.New("dial tcp: refused"))

		w := httptest.NewRecorder()
		handleStatus(health)(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "refused")
	})
}

func TestHandleAuthenticators(t *testing.T) {
	health := new(MockHealthStore)
	health.On("CheckConnectivity").Return(nil)
	authenticators := authenticator.NewRegistry()
	authenticators.Register(authn.NewPasswordAuthenticator(new(MockUsersStore), health))

	w := httptest.NewRecorder()
	handleAuthenticators(authenticators)(w, httptest.NewRequest("GET", "/authenticators", nil))
	assert.JSONEq(t, `{"installed":["password"],"enabled":[]}`, w.Body.String())

	w = httptest.NewRecorder()
	handleAuthenticatorStatus(authenticators)(w, newRequest("GET", "/authenticators/password/status", "", nil, map[string]string{"authenticator": "password"}))
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	require.NoError(t, authenticators.Enable(authn.Name))
	w = httptest.NewRecorder()
	handleAuthenticatorStatus(authenticators)(w, newRequest("GET", "/authenticators/password/status", "", nil, map[string]string{"authenticator": "password"}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
