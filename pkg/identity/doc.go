// Package identity carries the authenticated principal of a request.
//
// The token package verifies the raw bearer token; this package turns the
// verified claims into an Identity (user id, role, timestamps) and adds
// request context such as the client IP.
//
// # Basic Usage
//
//	id := identity.FromClaims(claims).WithRemoteIP(clientIP)
//	ctx = identity.Set(ctx, id)
//
//	id, ok := identity.Get(ctx)
//	if !ok {
//	    // anonymous request
//	}
//
// A request without an identity in its context is anonymous.
package identity
