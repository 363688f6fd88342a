package registry

import (
	"fmt"
	"log"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// Bootstrap fills the registry at startup: first from the models directory,
// then from persisted definitions whose names are not already present.
// Everything loaded is published. It returns the number of models registered.
func Bootstrap(reg *Registry, dir *Dir, files store.ModelFilesStore) (int, error) {
	loaded, err := dir.Load()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, l := range loaded {
		if err := reg.Register(l.Model, l.Path); err != nil {
			log.Printf("Skipping model %s from %s: %v", l.Model.Name, l.Path, err)
			continue
		}
		count++
	}

	if files == nil {
		return count, nil
	}

	persisted, err := files.ListModelFiles()
	if err != nil {
		return count, fmt.Errorf("failed to list persisted models: %w", err)
	}
	for _, f := range persisted {
		if _, ok := reg.Get(f.Name); ok {
			continue
		}
		def, err := definition.Parse([]byte(f.Content), definition.FormatJSON)
		if err != nil {
			log.Printf("Skipping persisted model %s: %v", f.Name, err)
			continue
		}
		if err := reg.Register(*def, f.FilePath); err != nil {
			log.Printf("Skipping persisted model %s: %v", f.Name, err)
			continue
		}
		count++
	}
	return count, nil
}
