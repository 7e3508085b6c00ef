package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFile is the name of the embedded configuration shipped with the binary.
const DefaultFile = "default.yaml"

//go:embed default.yaml
var configFS embed.FS

// Read returns the raw bytes of name, preferring a file on disk and falling
// back to the embedded copy.
func Read(name string) ([]byte, error) {
	if name == "" {
		name = DefaultFile
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	data, err := configFS.ReadFile(filepath.ToSlash(filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	return data, nil
}

// Load reads name and overlays it on Default.
func Load(name string) (Config, error) {
	data, err := Read(name)
	if err != nil {
		return Default(), err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("config: load %s: %w", name, err)
	}
	return cfg, nil
}
