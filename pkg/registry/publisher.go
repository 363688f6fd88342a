package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/provision"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// Publisher moves models from draft to published: it provisions the table,
// writes the definition file, persists the definition and marks the model
// published. Publishes are serialized.
type Publisher struct {
	mu          sync.Mutex
	registry    *Registry
	provisioner provision.Provisioner
	files       store.ModelFilesStore
	dir         *Dir
}

// NewPublisher creates a Publisher
func NewPublisher(registry *Registry, provisioner provision.Provisioner, files store.ModelFilesStore, dir *Dir) *Publisher {
	return &Publisher{
		registry:    registry,
		provisioner: provisioner,
		files:       files,
		dir:         dir,
	}
}

// Registry returns the registry the publisher updates
func (p *Publisher) Registry() *Registry {
	return p.registry
}

// Publish publishes the named model and returns the path of its file.
// Publishing an already published model repeats every step.
func (p *Publisher) Publish(ctx context.Context, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	def, ok := p.registry.Get(name)
	if !ok {
		return "", ErrModelNotFound
	}
	def.Normalize()
	def.Published = true

	if p.registry.RouteTaken(def) {
		return "", ErrRouteConflict
	}

	if err := p.provisioner.Provision(ctx, &def); err != nil {
		return "", err
	}

	path, err := p.dir.Write(def)
	if err != nil {
		return "", err
	}

	if err := p.persist(def, path); err != nil {
		return "", err
	}

	if err := p.registry.Register(def, path); err != nil {
		return "", err
	}
	return path, nil
}

// Install publishes a definition that already lives at path without
// rewriting the file. It is used for definitions dropped into the models
// directory and for `autocrudctl model load`.
func (p *Publisher) Install(ctx context.Context, def definition.Model, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := def.Validate(); err != nil {
		return err
	}
	def = def.Clone()
	def.Normalize()
	def.Published = true

	if p.registry.RouteTaken(def) {
		return ErrRouteConflict
	}
	if err := p.provisioner.Provision(ctx, &def); err != nil {
		return err
	}
	if err := p.persist(def, path); err != nil {
		return err
	}
	return p.registry.Register(def, path)
}

func (p *Publisher) persist(def definition.Model, path string) error {
	if p.files == nil {
		return nil
	}
	content, err := def.MarshalFile()
	if err != nil {
		return err
	}
	if err := p.files.UpsertModelFile(&model.ModelFile{
		Name:     def.Name,
		Content:  string(content),
		FilePath: path,
	}); err != nil {
		return fmt.Errorf("failed to persist model %s: %w", def.Name, err)
	}
	return nil
}
