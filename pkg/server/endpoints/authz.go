package endpoints

import (
	"errors"
	"net/http"

	"github.com/doodlesbykumbi/autocrud/pkg/audit"
	"github.com/doodlesbykumbi/autocrud/pkg/definition"
	"github.com/doodlesbykumbi/autocrud/pkg/identity"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/rbac"
)

// authorize runs the evaluator for the request principal, audits the
// decision and writes 401/403 when it is denied. The record may be nil.
func authorize(
	w http.ResponseWriter,
	r *http.Request,
	eval *rbac.Evaluator,
	def *definition.Model,
	action definition.Action,
	record *model.Record,
) (*identity.Identity, bool) {
	principal, _ := identity.Get(r.Context())

	var resource rbac.Resource
	recordID := ""
	if record != nil {
		resource = record
		recordID = record.ID
	}

	err := eval.Authorize(principal, def, action, resource)

	if principal != nil {
		audit.Log(audit.CheckEvent{
			UserID:   principal.ID,
			Role:     eval.Role(principal),
			ClientIP: principal.ClientIP(),
			Model:    def.Name,
			RecordID: recordID,
			Action:   action.String(),
			Allowed:  err == nil,
			Reason:   errorMessage(err),
		})
	}

	if err != nil {
		respondWithError(w, authzStatus(err), messageFor(err))
		return nil, false
	}
	return principal, true
}

// requireAdmin admits only Admin principals
func requireAdmin(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	principal, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, messageFor(rbac.ErrUnauthenticated))
		return nil, false
	}
	if !principal.IsAdmin() {
		respondWithError(w, http.StatusForbidden, messageFor(rbac.ErrInsufficientPermission))
		return nil, false
	}
	return principal, true
}

func authzStatus(err error) int {
	if errors.Is(err, rbac.ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}
