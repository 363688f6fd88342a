package rbac

import (
	"errors"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
	"github.com/doodlesbykumbi/autocrud/pkg/identity"
)

var (
	// ErrUnauthenticated is returned when there is no principal.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInsufficientPermission is returned when the role lacks the action.
	ErrInsufficientPermission = errors.New("insufficient permission")

	// ErrNotOwner is returned when a non-owner targets an owned record.
	ErrNotOwner = errors.New("not owner")
)

// Resource is a stored record whose ownership may be checked.
type Resource interface {
	Owner() string
}

// Evaluator decides whether a principal may perform an action on a model.
type Evaluator struct {
	defaultRole      string
	ownerScopedReads bool
}

// NewEvaluator creates an Evaluator. Principals without a role are treated as
// defaultRole. When ownerScopedReads is set the owner rule also covers reads.
func NewEvaluator(defaultRole string, ownerScopedReads bool) *Evaluator {
	if defaultRole == "" {
		defaultRole = "Viewer"
	}
	return &Evaluator{defaultRole: defaultRole, ownerScopedReads: ownerScopedReads}
}

// Role returns the effective role of a principal.
func (e *Evaluator) Role(principal *identity.Identity) string {
	if principal == nil || principal.Role == "" {
		return e.defaultRole
	}
	return principal.Role
}

// Authorize checks the role table and, when resource is not nil, ownership.
// It returns nil, ErrUnauthenticated, ErrInsufficientPermission or ErrNotOwner.
func (e *Evaluator) Authorize(principal *identity.Identity, def *definition.Model, action definition.Action, resource Resource) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	role := e.Role(principal)
	if role == identity.RoleAdmin {
		return nil
	}

	if !Allows(def.Permissions(role), action) {
		return ErrInsufficientPermission
	}

	if resource != nil && e.ownerChecked(action) && def.HasOwner() {
		owner := resource.Owner()
		if owner != "" && owner != principal.ID {
			return ErrNotOwner
		}
	}
	return nil
}

// ReadScope returns the owner id that list results must be restricted to, or
// "" for no restriction.
func (e *Evaluator) ReadScope(principal *identity.Identity, def *definition.Model) string {
	if !e.ownerScopedReads || principal == nil || !def.HasOwner() {
		return ""
	}
	if e.Role(principal) == identity.RoleAdmin {
		return ""
	}
	return principal.ID
}

func (e *Evaluator) ownerChecked(action definition.Action) bool {
	if action.Mutating() {
		return true
	}
	return e.ownerScopedReads && action == definition.ActionRead
}

// Allows reports whether a list of granted action names covers action.
// Unknown names grant nothing.
func Allows(granted []string, action definition.Action) bool {
	for _, name := range granted {
		a, err := definition.ActionString(name)
		if err != nil {
			continue
		}
		if a == action || a == definition.ActionAll {
			return true
		}
	}
	return false
}
