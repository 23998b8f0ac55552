package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ManifestFileName = "icons.yaml"
	manifestVersion  = "1"
)

// Manifest records every generated component with the fingerprint of the
// source it was generated from.
type Manifest struct {
	Version    string            `yaml:"version"`
	UpdatedAt  time.Time         `yaml:"updated_at"`
	Components map[string]*Entry `yaml:"components"`
}

// Entry is one source document. Files are relative to the output directory.
type Entry struct {
	Component   string    `yaml:"component"`
	Fingerprint string    `yaml:"fingerprint"`
	Files       []string  `yaml:"files"`
	GeneratedAt time.Time `yaml:"generated_at"`
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{Version: manifestVersion, Components: map[string]*Entry{}}
}

// LoadManifest reads the manifest from dir. A missing file yields an empty
// manifest.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if m.Version != manifestVersion {
		// Unknown layout, regenerate everything.
		return NewManifest(), nil
	}
	if m.Components == nil {
		m.Components = map[string]*Entry{}
	}
	return &m, nil
}

// Save writes the manifest to dir.
func (m *Manifest) Save(dir string) error {
	m.UpdatedAt = time.Now().UTC()
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ManifestFileName), data, 0o644)
}

// Unchanged reports whether source was generated with fingerprint fp and
// all of its files still exist under dir.
func (m *Manifest) Unchanged(dir, source, fp string) bool {
	e, ok := m.Components[source]
	if !ok || e.Fingerprint != fp {
		return false
	}
	for _, f := range e.Files {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			return false
		}
	}
	return true
}
