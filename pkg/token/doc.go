// Package token issues and verifies autocrud access tokens.
//
// Tokens are HS256 JWTs carrying the user id and role:
//
//	{"id": "...", "role": "Manager", "iat": ..., "exp": ..., "iss": "autocrud"}
//
// # Basic Usage
//
//	issuer := token.NewIssuer([]byte(secret), 8*time.Hour)
//	signed, claims, err := issuer.Issue(user.ID, user.Role)
//
//	claims, err := issuer.Verify(signed)
//	if errors.Is(err, token.ErrTokenExpired) {
//	    // ask the client to log in again
//	}
//
// There is no refresh and no revocation; a token is valid until it expires.
package token
