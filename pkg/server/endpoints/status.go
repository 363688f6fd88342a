package endpoints

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/server"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// StatusResponse is returned by GET /
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Error   string `json:"error,omitempty"`
}

// AuthenticatorsResponse represents the response from /authenticators
type AuthenticatorsResponse struct {
	Installed []string `json:"installed"`
	Enabled   []string `json:"enabled"`
}

// AuthenticatorStatusResponse represents the response from authenticator status endpoint
type AuthenticatorStatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the status and info endpoints
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - Status (no auth required)
	s.Router.HandleFunc("/", handleStatus(s.HealthStore)).Methods("GET")

	// GET /authenticators - List authenticators (no auth required)
	s.Router.HandleFunc("/authenticators", handleAuthenticators(s.Authenticators)).Methods("GET")

	// GET /authenticators/{authenticator}/status
	s.Router.HandleFunc("/authenticators/{authenticator}/status", handleAuthenticatorStatus(s.Authenticators)).Methods("GET")
}

// Version reported by the status endpoint
func Version() string {
	if v := os.Getenv("AUTOCRUD_VERSION_DISPLAY"); v != "" {
		return v
	}
	return "0.1.0"
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:  "error",
				Version: Version(),
				Error:   "database connectivity check failed",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok", Version: Version()})
	}
}

func handleAuthenticators(authenticators *authenticator.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, AuthenticatorsResponse{
			Installed: authenticators.Installed(),
			Enabled:   authenticators.Enabled(),
		})
	}
}

func handleAuthenticatorStatus(authenticators *authenticator.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["authenticator"]

		auth, ok := authenticators.Get(name)
		if !ok {
			respondWithJSON(w, http.StatusNotImplemented, AuthenticatorStatusResponse{
				Status: "error",
				Error:  "authenticator is not enabled",
			})
			return
		}

		if err := auth.Status(r.Context()); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, AuthenticatorStatusResponse{
				Status: "error",
				Error:  "authenticator is not healthy",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, AuthenticatorStatusResponse{Status: "ok"})
	}
}
