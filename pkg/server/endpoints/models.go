package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/autocrud/pkg/audit"
	"github.com/doodlesbykumbi/autocrud/pkg/definition"
	"github.com/doodlesbykumbi/autocrud/pkg/docs"
	"github.com/doodlesbykumbi/autocrud/pkg/identity"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
	"github.com/doodlesbykumbi/autocrud/pkg/server"
)

// InvalidModelResponse is returned when a definition fails validation
type InvalidModelResponse struct {
	Error   string                       `json:"error"`
	Details definition.ValidationErrors `json:"details"`
}

// CreateModelResponse is returned by POST /admin/models
type CreateModelResponse struct {
	OK    bool             `json:"ok"`
	Model definition.Model `json:"model"`
}

// PublishModelResponse is returned by POST /admin/models/{name}/publish
type PublishModelResponse struct {
	OK   bool   `json:"ok"`
	Path string `json:"path"`
}

// RegisterModelsEndpoints registers the admin model routes
func RegisterModelsEndpoints(s *server.Server) {
	reg := s.Registry
	publisher := s.Publisher

	adminRouter := s.Router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(s.AuthMiddleware.Middleware)

	adminRouter.HandleFunc("/models", handleCreateModel(reg)).Methods("POST")
	adminRouter.HandleFunc("/models", handleListModels(reg)).Methods("GET")
	adminRouter.HandleFunc("/models/{name}", handleGetModel(reg)).Methods("GET")
	adminRouter.HandleFunc("/models/{name}/publish", handlePublishModel(publisher)).Methods("POST")
	adminRouter.HandleFunc("/models/{name}/docs", handleModelDocs(reg)).Methods("GET")
}

func handleCreateModel(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		var def definition.Model
		if err := decodeInto(r, &def); err != nil {
			respondWithError(w, http.StatusBadRequest, messageFor(err))
			return
		}
		if def.Name == "" || def.Fields == nil {
			respondWithError(w, http.StatusBadRequest, "name and fields required")
			return
		}

		created, err := reg.Create(def)
		logModelEvent(principal, def, "create", err)
		if err != nil {
			var verrs definition.ValidationErrors
			switch {
			case errors.As(err, &verrs):
				respondWithJSON(w, http.StatusBadRequest, InvalidModelResponse{
					Error:   "Invalid model definition",
					Details: verrs,
				})
			case errors.Is(err, registry.ErrModelExists):
				respondWithError(w, http.StatusConflict, "Model already exists")
			default:
				respondWithInternalError(w, "Failed to create model", err)
			}
			return
		}

		respondWithJSON(w, http.StatusOK, CreateModelResponse{OK: true, Model: created})
	}
}

func handlePublishModel(publisher *registry.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		name := mux.Vars(r)["name"]

		path, err := publisher.Publish(r.Context(), name)

		def, found := publisher.Registry().Get(name)
		if !found {
			def = definition.Model{Name: name}
		}
		logModelEvent(principal, def, "publish", err)

		if err != nil {
			switch {
			case errors.Is(err, registry.ErrModelNotFound):
				respondWithError(w, http.StatusNotFound, messageFor(registry.ErrModelNotFound))
			case errors.Is(err, registry.ErrRouteConflict):
				respondWithError(w, http.StatusConflict, "Route already served by another model")
			default:
				respondWithInternalError(w, "Failed to publish model "+name, err)
			}
			return
		}

		respondWithJSON(w, http.StatusOK, PublishModelResponse{OK: true, Path: path})
	}
}

func handleListModels(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		respondWithJSON(w, http.StatusOK, reg.List())
	}
}

func handleGetModel(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		def, ok := reg.Get(mux.Vars(r)["name"])
		if !ok {
			respondWithError(w, http.StatusNotFound, messageFor(registry.ErrModelNotFound))
			return
		}
		respondWithJSON(w, http.StatusOK, def)
	}
}

func handleModelDocs(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		def, ok := reg.Get(mux.Vars(r)["name"])
		if !ok {
			respondWithError(w, http.StatusNotFound, messageFor(registry.ErrModelNotFound))
			return
		}

		page, err := docs.HTML(def)
		if err != nil {
			respondWithInternalError(w, "Failed to render docs", err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	}
}

func logModelEvent(principal *identity.Identity, def definition.Model, operation string, err error) {
	audit.Log(audit.ModelEvent{
		UserID:       principal.ID,
		ClientIP:     principal.ClientIP(),
		Model:        def.Name,
		TableName:    def.RouteName(),
		Operation:    operation,
		Success:      err == nil,
		ErrorMessage: errorMessage(err),
	})
}
