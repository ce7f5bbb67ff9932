package llmprovider

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/backends.yaml
var backendsYAML []byte

// Backend metadata philosophy:
//
// backends.yaml carries DEFAULTS and HINTS, not enforcement. It names each
// backend's default model, the environment variables holding its credential,
// and the setup step reported when the backend is unavailable. Known model
// lists and temperature ranges only feed validation warnings; the backend API
// stays the source of truth for what it accepts.
//
// Library users can override the embedded file by calling
// LoadBackendSpecsFromFile() with their own YAML.

// BackendFile is the top-level layout of backends.yaml
type BackendFile struct {
	Version     string                  `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated string                  `yaml:"last_updated"` // ISO 8601 date
	Backends    map[string]*BackendSpec `yaml:"backends"`
}

// BackendSpec describes one backend
type BackendSpec struct {
	// Name is filled from the map key when the file is loaded
	Name string `yaml:"-"`

	DisplayName   string           `yaml:"display_name"`
	DefaultModel  string           `yaml:"default_model"`
	CredentialEnv []string         `yaml:"credential_env"` // Designated variable first, then fallbacks
	Setup         string           `yaml:"setup"`
	BaseURL       string           `yaml:"base_url"`
	Region        string           `yaml:"region"`
	MaxTokens     int              `yaml:"max_tokens"`
	KnownModels   []string         `yaml:"known_models"`
	Temperature   TemperatureRange `yaml:"temperature"`
}

// TemperatureRange is the range a backend accepts
type TemperatureRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// RequiresCredential returns true if the backend reads a credential variable
func (s *BackendSpec) RequiresCredential() bool {
	return len(s.CredentialEnv) > 0
}

// LookupCredential returns the first non-empty credential variable, in
// declaration order. It fails with *MissingCredentialError naming every
// variable when none is set.
func (s *BackendSpec) LookupCredential() (string, error) {
	for _, name := range s.CredentialEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", &MissingCredentialError{Provider: s.Name, EnvVars: s.CredentialEnv}
}

// CredentialSource returns the variable the credential would be read from,
// or "" when none is set.
func (s *BackendSpec) CredentialSource() string {
	for _, name := range s.CredentialEnv {
		if strings.TrimSpace(os.Getenv(name)) != "" {
			return name
		}
	}
	return ""
}

// IsKnownModel returns true if model appears in the known model list.
// An empty list means the backend accepts arbitrary model ids.
func (s *BackendSpec) IsKnownModel(model string) bool {
	if len(s.KnownModels) == 0 || model == s.DefaultModel {
		return true
	}
	for _, m := range s.KnownModels {
		if m == model {
			return true
		}
	}
	return false
}

// BackendCatalog manages backend metadata
type BackendCatalog struct {
	specs map[string]*BackendSpec
	mu    sync.RWMutex
}

var (
	globalCatalog     *BackendCatalog
	globalCatalogOnce sync.Once
)

// GetBackendCatalog returns the global backend catalog (singleton)
func GetBackendCatalog() *BackendCatalog {
	globalCatalogOnce.Do(func() {
		globalCatalog = &BackendCatalog{
			specs: make(map[string]*BackendSpec),
		}
		// The embedded file ships with the binary; failing to parse it is a build defect.
		if err := globalCatalog.loadYAML(backendsYAML); err != nil {
			panic(fmt.Sprintf("llmprovider: embedded backends.yaml: %v", err))
		}
	})
	return globalCatalog
}

// loadYAML parses data and merges its backends into the catalog
func (c *BackendCatalog) loadYAML(data []byte) error {
	var file BackendFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse backends YAML: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for name, spec := range file.Backends {
		if spec == nil {
			continue
		}
		key := strings.ToLower(name)
		spec.Name = key
		c.specs[key] = spec
	}
	return nil
}

// LoadBackendSpecsFromFile merges backend metadata from a custom YAML file.
// Entries in the file replace embedded entries of the same name.
func LoadBackendSpecsFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backends file: %w", err)
	}
	return GetBackendCatalog().loadYAML(data)
}

// Get returns the spec for a backend
func (c *BackendCatalog) Get(id ProviderID) (*BackendSpec, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	spec, ok := c.specs[strings.ToLower(id.String())]
	if !ok {
		return nil, fmt.Errorf("no backend metadata for %s", id)
	}
	return spec, nil
}

// MustGet returns the spec for a backend, or an empty spec named id when the
// catalog has no entry (adapters then run without defaults).
func (c *BackendCatalog) MustGet(id ProviderID) *BackendSpec {
	spec, err := c.Get(id)
	if err != nil {
		return &BackendSpec{Name: id.String()}
	}
	return spec
}

// List returns all backend names in the catalog, sorted
func (c *BackendCatalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.specs))
	for name := range c.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetBackendSpec is a convenience function that reads from the global catalog
func GetBackendSpec(id ProviderID) *BackendSpec {
	return GetBackendCatalog().MustGet(id)
}
