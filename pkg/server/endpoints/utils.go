package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/rbac"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid JSON body")

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithInternalError logs err and answers 500 without detail
func respondWithInternalError(w http.ResponseWriter, context string, err error) {
	log.Printf("%s: %v", context, err)
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeObject reads a JSON object body. Numbers are kept as json.Number.
func decodeObject(r *http.Request) (model.JSONMap, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()

	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		return nil, errInvalidBody
	}
	if body == nil {
		return nil, errInvalidBody
	}
	return model.JSONMap(body), nil
}

// decodeInto reads a JSON body into v
func decodeInto(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// responseMessages is the client-facing text of sentinel errors
var responseMessages = []struct {
	err     error
	message string
}{
	{rbac.ErrUnauthenticated, "Not authenticated"},
	{rbac.ErrInsufficientPermission, "Forbidden: insufficient permission"},
	{rbac.ErrNotOwner, "Forbidden: not owner"},
	{registry.ErrModelNotFound, "Model not found"},
	{authenticator.ErrInvalidCredentials, "Invalid credentials"},
	{errInvalidBody, "Invalid JSON body"},
}

// messageFor returns the response text for err
func messageFor(err error) string {
	for _, m := range responseMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return err.Error()
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
