package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/autocrud/pkg/audit"
	"github.com/doodlesbykumbi/autocrud/pkg/config"
	"github.com/doodlesbykumbi/autocrud/pkg/definition"
	"github.com/doodlesbykumbi/autocrud/pkg/identity"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/rbac"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
	"github.com/doodlesbykumbi/autocrud/pkg/server"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// MissingFieldsResponse is returned when a create omits required fields
type MissingFieldsResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

// RegisterRecordsEndpoints registers the generic record routes served for
// every published model
func RegisterRecordsEndpoints(s *server.Server) {
	reg := s.Registry
	eval := s.Evaluator
	records := s.RecordsStore
	cfg := s.Config

	apiRouter := s.Router.PathPrefix("/api").Subrouter()
	apiRouter.Use(s.AuthMiddleware.Middleware)

	apiRouter.HandleFunc("/{model}", handleCreateRecord(reg, eval, records)).Methods("POST")
	apiRouter.HandleFunc("/{model}", handleListRecords(reg, eval, records, cfg)).Methods("GET")
	apiRouter.HandleFunc("/{model}/{id}", handleGetRecord(reg, eval, records)).Methods("GET")
	apiRouter.HandleFunc("/{model}/{id}", handleUpdateRecord(reg, eval, records)).Methods("PUT")
	apiRouter.HandleFunc("/{model}/{id}", handleDeleteRecord(reg, eval, records)).Methods("DELETE")
}

// lookupModel resolves the {model} route variable to a published model
func lookupModel(w http.ResponseWriter, r *http.Request, reg *registry.Registry) (*definition.Model, bool) {
	def, ok := reg.Lookup(mux.Vars(r)["model"])
	if !ok {
		respondWithError(w, http.StatusNotFound, "Not found")
		return nil, false
	}
	return def, true
}

// loadRecord fetches the {id} record of def, answering 404 when it does not
// exist or belongs to another model
func loadRecord(w http.ResponseWriter, r *http.Request, records store.RecordsStore, def *definition.Model) (*model.Record, bool) {
	record, err := records.GetRecord(def.Name, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			respondWithError(w, http.StatusNotFound, "Not found")
			return nil, false
		}
		respondWithInternalError(w, "Failed to fetch record", err)
		return nil, false
	}
	if record.ModelName != def.Name {
		respondWithError(w, http.StatusNotFound, "Not found")
		return nil, false
	}
	return record, true
}

func handleCreateRecord(reg *registry.Registry, eval *rbac.Evaluator, records store.RecordsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, ok := lookupModel(w, r, reg)
		if !ok {
			return
		}
		principal, ok := authorize(w, r, eval, def, definition.ActionCreate, nil)
		if !ok {
			return
		}

		data, err := decodeObject(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, messageFor(err))
			return
		}

		if missing := missingFields(def, data); len(missing) > 0 {
			respondWithJSON(w, http.StatusBadRequest, MissingFieldsResponse{
				Error:   "Missing fields",
				Missing: missing,
			})
			return
		}

		var ownerID *string
		if def.HasOwner() {
			owner, ok := ownerValue(data[def.OwnerField])
			if !ok {
				respondWithError(w, http.StatusBadRequest, ownerTypeMessage(def))
				return
			}
			if owner == "" {
				owner = principal.ID
				data[def.OwnerField] = owner
			}
			ownerID = &owner
		}

		record, err := records.CreateRecord(def.Name, data, ownerID)
		logRecordEvent(principal, def, "create", record, err)
		if err != nil {
			respondWithInternalError(w, "Failed to create record", err)
			return
		}

		respondWithJSON(w, http.StatusOK, record)
	}
}

func handleListRecords(reg *registry.Registry, eval *rbac.Evaluator, records store.RecordsStore, cfg *config.AutocrudConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, ok := lookupModel(w, r, reg)
		if !ok {
			return
		}
		principal, ok := authorize(w, r, eval, def, definition.ActionRead, nil)
		if !ok {
			return
		}

		limit, err := queryInt(r, "limit")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		offset, err := queryInt(r, "offset")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid offset")
			return
		}

		list, err := records.ListRecords(def.Name, store.ListOptions{
			Limit:   cfg.ListLimit(limit),
			Offset:  offset,
			OwnerID: eval.ReadScope(principal, def),
		})
		if err != nil {
			respondWithInternalError(w, "Failed to list records", err)
			return
		}
		if list == nil {
			list = []model.Record{}
		}

		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetRecord(reg *registry.Registry, eval *rbac.Evaluator, records store.RecordsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, ok := lookupModel(w, r, reg)
		if !ok {
			return
		}
		if _, ok := authorize(w, r, eval, def, definition.ActionRead, nil); !ok {
			return
		}

		record, ok := loadRecord(w, r, records, def)
		if !ok {
			return
		}
		if _, ok := authorize(w, r, eval, def, definition.ActionRead, record); !ok {
			return
		}

		respondWithJSON(w, http.StatusOK, record)
	}
}

func handleUpdateRecord(reg *registry.Registry, eval *rbac.Evaluator, records store.RecordsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, ok := lookupModel(w, r, reg)
		if !ok {
			return
		}
		if _, ok := authorize(w, r, eval, def, definition.ActionUpdate, nil); !ok {
			return
		}

		existing, ok := loadRecord(w, r, records, def)
		if !ok {
			return
		}
		principal, ok := authorize(w, r, eval, def, definition.ActionUpdate, existing)
		if !ok {
			return
		}

		patch, err := decodeObject(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, messageFor(err))
			return
		}
		if v, present := patch[def.OwnerField]; def.HasOwner() && present {
			if owner, ok := ownerValue(v); !ok || owner == "" {
				respondWithError(w, http.StatusBadRequest, ownerTypeMessage(def))
				return
			}
		}

		record, err := records.UpdateRecord(def.Name, existing.ID, patch, def.OwnerField)
		logRecordEvent(principal, def, "update", existing, err)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithInternalError(w, "Failed to update record", err)
			return
		}

		respondWithJSON(w, http.StatusOK, record)
	}
}

func handleDeleteRecord(reg *registry.Registry, eval *rbac.Evaluator, records store.RecordsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, ok := lookupModel(w, r, reg)
		if !ok {
			return
		}
		if _, ok := authorize(w, r, eval, def, definition.ActionDelete, nil); !ok {
			return
		}

		existing, ok := loadRecord(w, r, records, def)
		if !ok {
			return
		}
		principal, ok := authorize(w, r, eval, def, definition.ActionDelete, existing)
		if !ok {
			return
		}

		err := records.DeleteRecord(def.Name, existing.ID)
		logRecordEvent(principal, def, "delete", existing, err)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithInternalError(w, "Failed to delete record", err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// missingFields lists required fields that are absent or null, in field order
func missingFields(def *definition.Model, data model.JSONMap) []string {
	var missing []string
	for _, name := range def.RequiredFields() {
		if v, ok := data[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// ownerValue reads a submitted owner id. Absent, null and empty values yield
// "". Owner ids are stored as text, so other JSON types are rejected.
func ownerValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	default:
		return "", false
	}
}

func ownerTypeMessage(def *definition.Model) string {
	return fmt.Sprintf("%s must be a non-empty string", def.OwnerField)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return n, nil
}

func logRecordEvent(principal *identity.Identity, def *definition.Model, operation string, record *model.Record, err error) {
	recordID := ""
	if record != nil {
		recordID = record.ID
	}
	audit.Log(audit.RecordEvent{
		UserID:       principal.ID,
		ClientIP:     principal.ClientIP(),
		Model:        def.Name,
		RecordID:     recordID,
		Operation:    operation,
		Success:      err == nil,
		ErrorMessage: errorMessage(err),
	})
}
