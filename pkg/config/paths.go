package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the path to the marketplace config directory (~/.marketplace).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".marketplace"), nil
}

// DefaultPath returns the path to the config file for the given component name,
// e.g. "gateway.yaml". Absolute paths are returned as-is. The file is looked up
// in ./ first, then in ~/.marketplace/. If neither exists the home location is
// returned so error messages show where the file is expected.
func DefaultPath(component string) (string, error) {
	if filepath.IsAbs(component) {
		return component, nil
	}

	if _, err := os.Stat(component); err == nil {
		return component, nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, component), nil
}
