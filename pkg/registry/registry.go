package registry

import (
	"errors"
	"strings"
	"sync"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
)

var (
	// ErrModelExists is returned when a model with the same name (ignoring case) exists
	ErrModelExists = errors.New("model already exists")

	// ErrModelNotFound is returned for an unknown model name
	ErrModelNotFound = errors.New("model not found")

	// ErrRouteConflict is returned when another published model serves the same route
	ErrRouteConflict = errors.New("route already served by another model")
)

// State is the lifecycle state of a model. Draft models are not served.
type State string

const (
	StateDraft     State = "draft"
	StatePublished State = "published"
)

type entry struct {
	model definition.Model
	state State
	path  string
}

// Registry holds every known model definition. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	models map[string]*entry
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{models: make(map[string]*entry)}
}

func key(name string) string {
	return strings.ToLower(name)
}

// Create validates def and stores it as a draft.
// Returns definition.ValidationErrors or ErrModelExists on failure.
func (r *Registry) Create(def definition.Model) (definition.Model, error) {
	if err := def.Validate(); err != nil {
		return definition.Model{}, err
	}
	def = def.Clone()
	def.Published = false

	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(def.Name)
	if _, ok := r.models[k]; ok {
		return definition.Model{}, ErrModelExists
	}
	r.models[k] = &entry{model: def, state: StateDraft}
	r.order = append(r.order, k)
	return def.Clone(), nil
}

// Get returns a copy of the named model. Published reflects its state.
func (r *Registry) Get(name string) (definition.Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.models[key(name)]
	if !ok {
		return definition.Model{}, false
	}
	return e.snapshot(), true
}

// Path returns the file a published model was written to.
func (r *Registry) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.models[key(name)]
	if !ok || e.state != StatePublished {
		return "", false
	}
	return e.path, true
}

// List returns every model in insertion order.
func (r *Registry) List() []definition.Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]definition.Model, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.models[k].snapshot())
	}
	return out
}

// Lookup returns the published model served at route.
func (r *Registry) Lookup(route string) (*definition.Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route = strings.ToLower(route)
	for _, k := range r.order {
		e := r.models[k]
		if e.state == StatePublished && e.model.RouteName() == route {
			m := e.snapshot()
			return &m, true
		}
	}
	return nil, false
}

// Register installs an already-published definition, replacing any entry
// with the same name.
func (r *Registry) Register(def definition.Model, path string) error {
	if err := def.Validate(); err != nil {
		return err
	}
	def = def.Clone()
	def.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.routeTakenLocked(def) {
		return ErrRouteConflict
	}
	r.putPublishedLocked(def, path)
	return nil
}

// RouteTaken reports whether a different published model serves def's route.
func (r *Registry) RouteTaken(def definition.Model) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.routeTakenLocked(def)
}

func (r *Registry) routeTakenLocked(def definition.Model) bool {
	route := def.RouteName()
	k := key(def.Name)
	for other, e := range r.models {
		if other != k && e.state == StatePublished && e.model.RouteName() == route {
			return true
		}
	}
	return false
}

func (r *Registry) putPublishedLocked(def definition.Model, path string) {
	k := key(def.Name)
	def.Published = true
	if e, ok := r.models[k]; ok {
		e.model = def
		e.state = StatePublished
		e.path = path
		return
	}
	r.models[k] = &entry{model: def, state: StatePublished, path: path}
	r.order = append(r.order, k)
}

func (e *entry) snapshot() definition.Model {
	m := e.model.Clone()
	m.Published = e.state == StatePublished
	return m
}
