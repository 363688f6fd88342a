package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/autocrud/pkg/config"
	"github.com/doodlesbykumbi/autocrud/pkg/db"
)

func loadConfig() (*config.AutocrudConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func connect() (*gorm.DB, error) {
	return db.Connect(db.Config{})
}

// readPassword reads one line from r. Trailing newlines are dropped.
func readPassword(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, fmt.Errorf("password must not be empty")
	}
	return []byte(line), nil
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
