// Package authenticator defines the interface for autocrud authenticators.
//
// # Authenticator Interface
//
// All authenticators implement the Authenticator interface:
//
//	type Authenticator interface {
//	    Name() string
//	    Authenticate(ctx context.Context, input AuthenticatorInput) (*model.User, error)
//	    Status(ctx context.Context) error
//	}
//
// # Built-in Authenticators
//
//   - password: email and bcrypt password - see [github.com/doodlesbykumbi/autocrud/pkg/authenticator/authn]
//
// The server registers and enables the password authenticator at startup;
// POST /auth/login looks it up in the Registry.
package authenticator
