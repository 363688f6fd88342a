package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/autocrud/pkg/config"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server"
)

// newMockServer creates a server over a mocked database with mocked stores
func newMockServer(t *testing.T, mockAuth bool) (*server.Server, *MockRecordsStore) {
	t.Helper()
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	cfg := &config.AutocrudConfig{
		ModelsDir:          t.TempDir(),
		TokenTTL:           3600,
		JWTSecret:          "test-secret",
		MockAuth:           mockAuth,
		DefaultRole:        "Viewer",
		APIListLimitMax:    100,
		CORSAllowedOrigins: []string{"*"},
	}
	s := server.NewServer(cfg, gormDB, "127.0.0.1", "0")

	records := new(MockRecordsStore)
	s.RecordsStore = records
	require.NoError(t, s.Registry.Register(productModel(), ""))

	RegisterAll(s)
	return s, records
}

func TestRouter_RecordRoutes(t *testing.T) {
	s, records := newMockServer(t, false)
	signed, _, err := s.Tokens.Issue("user-2", "Manager")
	require.NoError(t, err)

	records.On("ListRecords", "Product", mock.Anything).Return([]model.Record{}, nil)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/products", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, httptest.NewRequest("GET", "/api/products", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/products", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
	})

	t.Run("unpublished route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/widgets", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_MockAuth(t *testing.T) {
	s, _ := newMockServer(t, true)

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, httptest.NewRequest("POST", "/admin/models",
		strings.NewReader(`{"name":"Note","fields":[{"name":"body"}]}`)))

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, ok := s.Registry.Get("Note")
	assert.True(t, ok)
}

func TestRouter_AdminRequiresAdmin(t *testing.T) {
	s, _ := newMockServer(t, false)
	signed, _, err := s.Tokens.Issue("user-3", "Viewer")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/models", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
