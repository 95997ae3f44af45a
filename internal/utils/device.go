package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LoadOrCreateDeviceID returns the installation identity stored at path,
// creating it on first use. When the file cannot be written a fresh,
// non-persisted identity is returned together with the error.
func LoadOrCreateDeviceID(path string) (id string, created bool, err error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, false, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return uuid.NewString(), false, fmt.Errorf("failed to read device id: %w", err)
	}

	id = uuid.NewString()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return id, false, fmt.Errorf("failed to create device id directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(id), 0644); err != nil {
		return id, false, fmt.Errorf("failed to save device id: %w", err)
	}
	return id, true, nil
}
