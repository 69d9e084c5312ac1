package catalog

import (
	"context"
	"errors"
	"testing"

	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
)

func TestCreateConfigurationDefaults(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	product := env.mustCreateProduct(t, "chair", nil)

	cfg, err := env.configs.CreateConfiguration(ctx, &catalogSvc.CreateConfigurationRequest{
		ProductID: product.ID,
		Name:      "default",
		OwnerID:   "user-1",
	})
	if err != nil {
		t.Fatalf("CreateConfiguration() error = %v", err)
	}

	if cfg.Transform != catalog.DefaultTransform() {
		t.Errorf("Transform = %+v, want editor defaults", cfg.Transform)
	}
	if cfg.Materials != catalog.DefaultMaterials() {
		t.Errorf("Materials = %+v, want editor defaults", cfg.Materials)
	}
	if cfg.Lighting != catalog.DefaultLighting() {
		t.Errorf("Lighting = %+v, want editor defaults", cfg.Lighting)
	}
	if cfg.ShareToken == nil || *cfg.ShareToken == "" {
		t.Error("share token not generated at creation")
	}
	if cfg.IsPublic {
		t.Error("fresh configuration must start private")
	}
}

func TestCreateConfigurationRejectsOutOfRangeMaterials(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	product := env.mustCreateProduct(t, "chair", nil)

	_, err := env.configs.CreateConfiguration(ctx, &catalogSvc.CreateConfigurationRequest{
		ProductID: product.ID,
		Name:      "bad",
		Materials: &catalog.Materials{Color: "#fff", Metalness: 1.5, Roughness: 0.5},
		OwnerID:   "user-1",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("CreateConfiguration() error = %v, want ErrValidation", err)
	}
}

func TestUpdateConfigurationPartialSave(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	product := env.mustCreateProduct(t, "chair", nil)

	custom := &catalog.Transform{
		Position: catalog.Vec3{1, 2, 3},
		Rotation: catalog.Vec3{0, 0.5, 0},
		Scale:    catalog.Vec3{2, 2, 2},
	}
	cfg, err := env.configs.CreateConfiguration(ctx, &catalogSvc.CreateConfigurationRequest{
		ProductID: product.ID,
		Name:      "posed",
		Transform: custom,
		OwnerID:   "user-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Materials-only save: the stored transform must survive untouched
	updated, err := env.configs.UpdateConfiguration(ctx, cfg.ID, &catalogSvc.UpdateConfigurationRequest{
		Materials: &catalog.Materials{Color: "#112233", Metalness: 0.9, Roughness: 0.1},
		OwnerID:   "user-1",
	})
	if err != nil {
		t.Fatalf("UpdateConfiguration() error = %v", err)
	}

	if updated.Transform != *custom {
		t.Errorf("Transform = %+v, materials-only save clobbered it", updated.Transform)
	}
	if updated.Materials.Color != "#112233" {
		t.Errorf("Materials.Color = %q, want #112233", updated.Materials.Color)
	}
}

func TestDuplicateConfiguration(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	product := env.mustCreateProduct(t, "chair", nil)

	src, err := env.configs.CreateConfiguration(ctx, &catalogSvc.CreateConfigurationRequest{
		ProductID: product.ID,
		Name:      "showfloor",
		OwnerID:   "user-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.configs.SetVisibility(ctx, "user-1", src.ID, true); err != nil {
		t.Fatal(err)
	}

	clone, err := env.configs.DuplicateConfiguration(ctx, "user-1", src.ID)
	if err != nil {
		t.Fatalf("DuplicateConfiguration() error = %v", err)
	}

	if clone.ID == src.ID {
		t.Error("clone kept the source id")
	}
	if clone.Name != "showfloor (copy)" {
		t.Errorf("Name = %q, want \"showfloor (copy)\"", clone.Name)
	}
	if clone.ShareToken == nil || src.ShareToken == nil || *clone.ShareToken == *src.ShareToken {
		t.Error("clone must carry a fresh share token")
	}
	if clone.IsPublic {
		t.Error("clone must start private even when the source is public")
	}
}

func TestShareTokenResolution(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	product := env.mustCreateProduct(t, "chair", nil)

	cfg, err := env.configs.CreateConfiguration(ctx, &catalogSvc.CreateConfigurationRequest{
		ProductID: product.ID,
		Name:      "default",
		OwnerID:   "user-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Private: token resolves to nothing
	if _, err := env.configs.ResolveShareToken(ctx, *cfg.ShareToken); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ResolveShareToken() on private config error = %v, want ErrNotFound", err)
	}

	if _, err := env.configs.SetVisibility(ctx, "user-1", cfg.ID, true); err != nil {
		t.Fatal(err)
	}

	shared, err := env.configs.ResolveShareToken(ctx, *cfg.ShareToken)
	if err != nil {
		t.Fatalf("ResolveShareToken() error = %v", err)
	}
	if shared.Configuration.ID != cfg.ID {
		t.Errorf("resolved configuration %s, want %s", shared.Configuration.ID, cfg.ID)
	}
	if shared.Product == nil || shared.Product.ID != product.ID {
		t.Errorf("resolved product = %v, want %s", shared.Product, product.ID)
	}

	// Revoke and the token goes dark again
	if _, err := env.configs.SetVisibility(ctx, "user-1", cfg.ID, false); err != nil {
		t.Fatal(err)
	}
	if _, err := env.configs.ResolveShareToken(ctx, *cfg.ShareToken); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ResolveShareToken() after revoke error = %v, want ErrNotFound", err)
	}
}

func TestListConfigurationsNewestFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	product := env.mustCreateProduct(t, "chair", nil)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := env.configs.CreateConfiguration(ctx, &catalogSvc.CreateConfigurationRequest{
			ProductID: product.ID,
			Name:      name,
			OwnerID:   "user-1",
		}); err != nil {
			t.Fatal(err)
		}
	}

	configs, err := env.configs.ListByProduct(ctx, "user-1", product.ID)
	if err != nil {
		t.Fatalf("ListByProduct() error = %v", err)
	}
	if len(configs) != 3 {
		t.Fatalf("ListByProduct() = %d entries, want 3", len(configs))
	}
	if configs[0].Name != "third" {
		t.Errorf("configs[0].Name = %q, want the newest snapshot first", configs[0].Name)
	}
}
