package presets

import (
	"testing"
)

func TestRegistryLoadsEmbeddedPresets(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	presets := registry.List()
	if len(presets) == 0 {
		t.Fatal("no presets loaded")
	}

	for _, preset := range presets {
		if preset.ID == "" {
			t.Error("preset with empty id")
		}
		if preset.DisplayName == "" {
			t.Errorf("preset %s has no display name", preset.ID)
		}
		if preset.Materials.Metalness < 0 || preset.Materials.Metalness > 1 {
			t.Errorf("preset %s metalness out of range: %v", preset.ID, preset.Materials.Metalness)
		}
		if preset.Materials.Roughness < 0 || preset.Materials.Roughness > 1 {
			t.Errorf("preset %s roughness out of range: %v", preset.ID, preset.Materials.Roughness)
		}
	}
}

func TestRegistryGet(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}

	preset, err := registry.Get("studio")
	if err != nil {
		t.Fatalf("Get(studio) error = %v", err)
	}
	if preset.DisplayName != "Studio" {
		t.Errorf("DisplayName = %q, want Studio", preset.DisplayName)
	}

	if _, err := registry.Get("nope"); err == nil {
		t.Fatal("Get(nope) expected error")
	}
}
