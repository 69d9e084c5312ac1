package presets

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"showroom/internal/domain/models/catalog"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ScenePreset is a named lighting/material starting point offered by the
// editor. Presets are curated, not user data, so they ship embedded.
type ScenePreset struct {
	ID          string            `yaml:"id" json:"id"`
	DisplayName string            `yaml:"display_name" json:"display_name"`
	Description string            `yaml:"description" json:"description,omitempty"`
	Materials   catalog.Materials `yaml:"materials" json:"materials"`
	Lighting    catalog.Lighting  `yaml:"lighting" json:"lighting"`
}

type presetFile struct {
	Presets []ScenePreset `yaml:"presets"`
}

// Registry holds the embedded scene presets
type Registry struct {
	presets []ScenePreset
	byID    map[string]*ScenePreset
	mu      sync.RWMutex
}

// NewRegistry creates a new preset registry and loads the embedded YAML file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/scene_presets.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read scene presets: %w", err)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene presets: %w", err)
	}

	r := &Registry{
		presets: file.Presets,
		byID:    make(map[string]*ScenePreset, len(file.Presets)),
	}
	for i := range r.presets {
		r.byID[r.presets[i].ID] = &r.presets[i]
	}

	return r, nil
}

// List returns all presets in file order
func (r *Registry) List() []ScenePreset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.presets
}

// Get returns one preset by id
func (r *Registry) Get(id string) (*ScenePreset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	preset, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s", id)
	}
	return preset, nil
}
