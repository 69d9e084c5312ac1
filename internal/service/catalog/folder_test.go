package catalog

import (
	"context"
	"errors"
	"testing"

	"showroom/internal/cache"
	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
	"showroom/internal/httputil"
)

type testEnv struct {
	folderRepo  *memFolderRepo
	productRepo *memProductRepo
	configRepo  *memConfigRepo
	blobs       *memBlobStore
	queries     *cache.QueryCache
	folders     catalogSvc.FolderService
	products    catalogSvc.ProductService
	configs     catalogSvc.ConfigurationService
	bulk        catalogSvc.BulkService
}

func newTestEnv() *testEnv {
	folderRepo := newMemFolderRepo()
	productRepo := newMemProductRepo()
	configRepo := newMemConfigRepo(productRepo)
	blobs := newMemBlobStore()
	queries := cache.NewQueryCache()
	dispatcher := testDispatcher(queries)
	logger := testLogger()

	products := NewProductService(productRepo, configRepo, folderRepo, blobs, dispatcher, queries, logger)
	folders := NewFolderService(folderRepo, products, nil, dispatcher, queries, logger)
	configs := NewConfigurationService(configRepo, productRepo, dispatcher, queries, logger)
	bulk := NewBulkService(folders, products, configs, folderRepo, "https://view.test/viewer", logger)

	return &testEnv{
		folderRepo:  folderRepo,
		productRepo: productRepo,
		configRepo:  configRepo,
		blobs:       blobs,
		queries:     queries,
		folders:     folders,
		products:    products,
		configs:     configs,
		bulk:        bulk,
	}
}

func (e *testEnv) mustCreateFolder(t *testing.T, name string, parentID *string) *catalog.Folder {
	t.Helper()
	f, err := e.folders.CreateFolder(context.Background(), &catalogSvc.CreateFolderRequest{
		Name:     name,
		ParentID: parentID,
		OwnerID:  "user-1",
	})
	if err != nil {
		t.Fatalf("CreateFolder(%s) error = %v", name, err)
	}
	return f
}

func (e *testEnv) mustCreateProduct(t *testing.T, name string, folderID *string) *catalog.Product {
	t.Helper()
	p, err := e.products.CreateProduct(context.Background(), &catalogSvc.CreateProductRequest{
		Name:      name,
		FolderID:  folderID,
		AssetPath: "https://blobs.test/user-1/" + name + ".glb",
		OwnerID:   "user-1",
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s) error = %v", name, err)
	}
	return p
}

func TestCreateFolderValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *catalogSvc.CreateFolderRequest
		wantErr error
	}{
		{
			name:    "empty name",
			req:     &catalogSvc.CreateFolderRequest{Name: "", OwnerID: "user-1"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing owner",
			req:     &catalogSvc.CreateFolderRequest{Name: "ok"},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "unknown parent",
			req:     &catalogSvc.CreateFolderRequest{Name: "ok", ParentID: strPtr("ghost"), OwnerID: "user-1"},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.CreateFolder(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateFolder() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMoveFolderIntoOwnSubtreeRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a := env.mustCreateFolder(t, "A", nil)
	b := env.mustCreateFolder(t, "B", &a.ID)
	c := env.mustCreateFolder(t, "C", &b.ID)

	tests := []struct {
		name     string
		folderID string
		targetID string
	}{
		{name: "into itself", folderID: a.ID, targetID: a.ID},
		{name: "into child", folderID: a.ID, targetID: b.ID},
		{name: "into grandchild", folderID: a.ID, targetID: c.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.MoveFolder(ctx, "user-1", tt.folderID, &tt.targetID)
			if !errors.Is(err, domain.ErrCycle) {
				t.Errorf("MoveFolder() error = %v, want ErrCycle", err)
			}
		})
	}

	// Rejection dispatched nothing: a is still at root
	got, err := env.folders.GetFolder(ctx, "user-1", a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ParentID != nil {
		t.Errorf("folder moved despite rejection, ParentID = %v", got.ParentID)
	}
}

func TestMoveFolderToRoot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a := env.mustCreateFolder(t, "A", nil)
	b := env.mustCreateFolder(t, "B", &a.ID)

	moved, err := env.folders.MoveFolder(ctx, "user-1", b.ID, nil)
	if err != nil {
		t.Fatalf("MoveFolder() error = %v", err)
	}
	if moved.ParentID != nil {
		t.Errorf("ParentID = %v, want nil", moved.ParentID)
	}
}

func TestMoveFolderIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a := env.mustCreateFolder(t, "A", nil)
	b := env.mustCreateFolder(t, "B", nil)

	for i := 0; i < 2; i++ {
		moved, err := env.folders.MoveFolder(ctx, "user-1", b.ID, &a.ID)
		if err != nil {
			t.Fatalf("MoveFolder() pass %d error = %v", i, err)
		}
		if moved.ParentID == nil || *moved.ParentID != a.ID {
			t.Fatalf("pass %d: ParentID = %v, want %s", i, moved.ParentID, a.ID)
		}
	}
}

func TestUpdateFolderRenameKeepsParent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a := env.mustCreateFolder(t, "A", nil)
	b := env.mustCreateFolder(t, "B", &a.ID)

	name := "renamed"
	updated, err := env.folders.UpdateFolder(ctx, b.ID, &catalogSvc.UpdateFolderRequest{
		Name:    &name,
		OwnerID: "user-1",
	})
	if err != nil {
		t.Fatalf("UpdateFolder() error = %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("Name = %q, want renamed", updated.Name)
	}
	if updated.ParentID == nil || *updated.ParentID != a.ID {
		t.Errorf("rename changed the parent: %v", updated.ParentID)
	}
}

func TestUpdateFolderMoveToRootViaNull(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a := env.mustCreateFolder(t, "A", nil)
	b := env.mustCreateFolder(t, "B", &a.ID)

	updated, err := env.folders.UpdateFolder(ctx, b.ID, &catalogSvc.UpdateFolderRequest{
		ParentID: httputil.OptionalString{Present: true, Value: nil},
		OwnerID:  "user-1",
	})
	if err != nil {
		t.Fatalf("UpdateFolder() error = %v", err)
	}
	if updated.ParentID != nil {
		t.Errorf("ParentID = %v, want nil (root)", updated.ParentID)
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a := env.mustCreateFolder(t, "A", nil)
	b := env.mustCreateFolder(t, "B", &a.ID)
	product := env.mustCreateProduct(t, "chair", &b.ID)

	if _, err := env.configs.CreateConfiguration(ctx, &catalogSvc.CreateConfigurationRequest{
		ProductID: product.ID,
		Name:      "default",
		OwnerID:   "user-1",
	}); err != nil {
		t.Fatal(err)
	}

	if err := env.folders.DeleteFolder(ctx, "user-1", a.ID); err != nil {
		t.Fatalf("DeleteFolder() error = %v", err)
	}

	if _, err := env.folders.GetFolder(ctx, "user-1", b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("nested folder survived the cascade: %v", err)
	}
	if _, err := env.products.GetProduct(ctx, "user-1", product.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("nested product survived the cascade: %v", err)
	}
	if len(env.blobs.deleted) != 1 {
		t.Errorf("asset blob not cleaned up, deleted = %v", env.blobs.deleted)
	}
}

func TestFolderOwnershipIsolation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a := env.mustCreateFolder(t, "A", nil)

	if _, err := env.folders.GetFolder(ctx, "user-2", a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign owner read a folder: %v", err)
	}
	if err := env.folders.DeleteFolder(ctx, "user-2", a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign owner deleted a folder: %v", err)
	}
}
