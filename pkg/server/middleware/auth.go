package middleware

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/doodlesbykumbi/autocrud/pkg/identity"
	"github.com/doodlesbykumbi/autocrud/pkg/token"
)

// TokenAuthenticator is middleware that resolves the request principal from
// a Bearer token
type TokenAuthenticator struct {
	Tokens   *token.Issuer
	MockAuth bool
}

// NewTokenAuthenticator creates a new token authenticator middleware.
// With mockAuth set, requests without an Authorization header run as the
// mock Admin principal.
func NewTokenAuthenticator(tokens *token.Issuer, mockAuth bool) *TokenAuthenticator {
	return &TokenAuthenticator{Tokens: tokens, MockAuth: mockAuth}
}

// Middleware returns an HTTP middleware that validates Bearer tokens.
//
// A request without an Authorization header passes through anonymously so
// that handlers can answer 401 themselves. A header that is present but not a
// valid, unexpired Bearer token is rejected here with 401.
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			if a.MockAuth {
				id := identity.Mock().WithRemoteIP(net.ParseIP(ClientIP(r)))
				r = r.WithContext(identity.Set(r.Context(), id))
			}
			next.ServeHTTP(w, r)
			return
		}

		scheme, tokenStr, found := strings.Cut(authHeader, " ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			unauthorized(w, "Malformed authorization header")
			return
		}

		claims, err := a.Tokens.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				unauthorized(w, "Token expired")
				return
			}
			unauthorized(w, "Invalid token")
			return
		}

		id := identity.FromClaims(claims).WithRemoteIP(net.ParseIP(ClientIP(r)))
		r = r.WithContext(identity.Set(r.Context(), id))

		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the address of the caller: the first X-Forwarded-For
// entry when present, otherwise the host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
