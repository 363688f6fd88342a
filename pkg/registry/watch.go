package registry

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/doodlesbykumbi/autocrud/pkg/audit"
	"github.com/doodlesbykumbi/autocrud/pkg/definition"
)

// Watch installs definition files that are created or modified in dir until
// ctx is cancelled. Files are installed in place.
func Watch(ctx context.Context, dir *Dir, publisher *Publisher) error {
	if err := dir.Ensure(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir.Path()); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir.Path(), err)
	}

	log.Printf("Watching %s for model changes", dir.Path())

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if err := reload(ctx, publisher, event.Name); err != nil {
				log.Printf("Error loading model file %s: %v", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	_, ok := definition.FormatForPath(base)
	return ok
}

func reload(ctx context.Context, publisher *Publisher, path string) error {
	def, err := ReadFile(path)
	if err != nil {
		return err
	}
	err = publisher.Install(ctx, *def, path)
	audit.Log(audit.ModelEvent{
		UserID:       "watcher",
		Model:        def.Name,
		TableName:    def.RouteName(),
		Operation:    "load",
		Success:      err == nil,
		ErrorMessage: errorMessage(err),
	})
	if err != nil {
		return err
	}
	log.Printf("Model %s loaded from %s", def.Name, path)
	return nil
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
