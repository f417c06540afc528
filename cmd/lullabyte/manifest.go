package main

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const manifestName = "lullabyte.yml"

// Manifest is the optional per-project configuration file.
type Manifest struct {
	Path  string `yaml:"-"`
	Name  string `yaml:"name"`
	Track string `yaml:"track"`
}

// findManifest walks from dir upward to the filesystem root looking for
// lullabyte.yml. A missing manifest returns (nil, nil).
func findManifest(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		candidate := filepath.Join(abs, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return loadManifest(candidate)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, nil
		}
		abs = parent
	}
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}
