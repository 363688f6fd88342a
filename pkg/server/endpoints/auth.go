package endpoints

import (
	"errors"
	"net/http"

	"github.com/doodlesbykumbi/autocrud/pkg/audit"
	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/autocrud/pkg/identity"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/rbac"
	"github.com/doodlesbykumbi/autocrud/pkg/server"
	"github.com/doodlesbykumbi/autocrud/pkg/server/middleware"
	"github.com/doodlesbykumbi/autocrud/pkg/token"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the user part of a login response
type LoginUser struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// WhoamiResponse describes the request principal
type WhoamiResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Mock      bool   `json:"mock,omitempty"`
	IssuedAt  int64  `json:"issuedAt,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
	ClientIP  string `json:"clientIp,omitempty"`
}

// RegisterAuthEndpoints registers login and principal introspection
func RegisterAuthEndpoints(s *server.Server) {
	authRouter := s.Router.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/login", handleLogin(s.Authenticators, s.Tokens)).Methods("POST")

	authRouter.Handle("/whoami", s.AuthMiddleware.Middleware(handleWhoami())).Methods("GET")
}

func handleLogin(authenticators *authenticator.Registry, tokens *token.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeInto(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, messageFor(err))
			return
		}
		email := model.NormalizeEmail(req.Email)
		clientIP := middleware.ClientIP(r)

		auth, ok := authenticators.Get(authn.Name)
		if !ok {
			respondWithError(w, http.StatusNotImplemented, "Password authentication is disabled")
			return
		}

		user, err := auth.Authenticate(r.Context(), authenticator.AuthenticatorInput{
			Login:       email,
			Credentials: []byte(req.Password),
			ClientIP:    clientIP,
		})
		if err != nil {
			audit.Log(audit.LoginEvent{
				Email:        email,
				ClientIP:     clientIP,
				Success:      false,
				ErrorMessage: authenticator.ErrInvalidCredentials.Error(),
			})
			if errors.Is(err, authenticator.ErrInvalidCredentials) {
				respondWithError(w, http.StatusUnauthorized, messageFor(err))
				return
			}
			respondWithInternalError(w, "Login failed", err)
			return
		}

		signed, _, err := tokens.Issue(user.ID, user.Role)
		if err != nil {
			respondWithInternalError(w, "Failed to issue token", err)
			return
		}

		audit.Log(audit.LoginEvent{
			Email:    user.Email,
			UserID:   user.ID,
			ClientIP: clientIP,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, LoginResponse{
			Token: signed,
			User:  LoginUser{ID: user.ID, Role: user.Role, Email: user.Email},
		})
	}
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, messageFor(rbac.ErrUnauthenticated))
			return
		}

		resp := WhoamiResponse{
			ID:       principal.ID,
			Role:     principal.Role,
			Mock:     principal.Mock,
			ClientIP: principal.ClientIP(),
		}
		if !principal.IssuedAt.IsZero() {
			resp.IssuedAt = principal.IssuedAt.Unix()
		}
		if !principal.ExpiresAt.IsZero() {
			resp.ExpiresAt = principal.ExpiresAt.Unix()
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}
