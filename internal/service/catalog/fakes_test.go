package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"showroom/internal/cache"
	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
	"showroom/internal/storage"
)

// In-memory repositories backing the service tests. They enforce the same
// ownership and not-found semantics as the postgres implementations.

type memFolderRepo struct {
	mu      sync.Mutex
	folders map[string]catalog.Folder
	clock   int64
}

func newMemFolderRepo() *memFolderRepo {
	return &memFolderRepo{folders: make(map[string]catalog.Folder)}
}

func (r *memFolderRepo) tick() time.Time {
	r.clock++
	return time.Unix(r.clock, 0)
}

func (r *memFolderRepo) Create(ctx context.Context, folder *catalog.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder.CreatedAt = r.tick()
	folder.UpdatedAt = folder.CreatedAt
	r.folders[folder.ID] = *folder
	return nil
}

func (r *memFolderRepo) GetByID(ctx context.Context, id, ownerID string) (*catalog.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	out := folder
	return &out, nil
}

func (r *memFolderRepo) Update(ctx context.Context, folder *catalog.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.folders[folder.ID]
	if !ok || existing.OwnerID != folder.OwnerID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	folder.UpdatedAt = r.tick()
	r.folders[folder.ID] = *folder
	return nil
}

func (r *memFolderRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	return nil
}

func (r *memFolderRepo) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]catalog.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Folder
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID && sameParent(folder.ParentID, parentID) {
			out = append(out, folder)
		}
	}
	sortFoldersNewestFirst(out)
	return out, nil
}

func (r *memFolderRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]catalog.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Folder
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID {
			out = append(out, folder)
		}
	}
	sortFoldersNewestFirst(out)
	return out, nil
}

func sortFoldersNewestFirst(folders []catalog.Folder) {
	sort.Slice(folders, func(i, j int) bool {
		return folders[i].CreatedAt.After(folders[j].CreatedAt)
	})
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]catalog.Product
	clock    int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]catalog.Product)}
}

func (r *memProductRepo) tick() time.Time {
	r.clock++
	return time.Unix(r.clock, 0)
}

func (r *memProductRepo) Create(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.CreatedAt = r.tick()
	product.UpdatedAt = product.CreatedAt
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id, ownerID string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.OwnerID != ownerID {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	out := product
	return &out, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok || existing.OwnerID != product.OwnerID {
		return fmt.Errorf("product %s: %w", product.ID, domain.ErrNotFound)
	}
	product.UpdatedAt = r.tick()
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.OwnerID != ownerID {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) ListByFolder(ctx context.Context, folderID *string, ownerID string) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, product := range r.products {
		if product.OwnerID == ownerID && sameParent(product.FolderID, folderID) {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type memConfigRepo struct {
	mu       sync.Mutex
	configs  map[string]catalog.Configuration
	products *memProductRepo
	clock    int64
}

func newMemConfigRepo(products *memProductRepo) *memConfigRepo {
	return &memConfigRepo{
		configs:  make(map[string]catalog.Configuration),
		products: products,
	}
}

func (r *memConfigRepo) tick() time.Time {
	r.clock++
	return time.Unix(r.clock, 0)
}

func (r *memConfigRepo) Create(ctx context.Context, config *catalog.Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	config.CreatedAt = r.tick()
	config.UpdatedAt = config.CreatedAt
	r.configs[config.ID] = *config
	return nil
}

func (r *memConfigRepo) GetByID(ctx context.Context, id, ownerID string) (*catalog.Configuration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	config, ok := r.configs[id]
	if !ok || config.OwnerID != ownerID {
		return nil, fmt.Errorf("configuration %s: %w", id, domain.ErrNotFound)
	}
	out := config
	return &out, nil
}

func (r *memConfigRepo) Update(ctx context.Context, config *catalog.Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.configs[config.ID]
	if !ok || existing.OwnerID != config.OwnerID {
		return fmt.Errorf("configuration %s: %w", config.ID, domain.ErrNotFound)
	}
	config.UpdatedAt = r.tick()
	r.configs[config.ID] = *config
	return nil
}

func (r *memConfigRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	config, ok := r.configs[id]
	if !ok || config.OwnerID != ownerID {
		return fmt.Errorf("configuration %s: %w", id, domain.ErrNotFound)
	}
	delete(r.configs, id)
	return nil
}

func (r *memConfigRepo) ListByProduct(ctx context.Context, productID, ownerID string) ([]catalog.Configuration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Configuration
	for _, config := range r.configs {
		if config.OwnerID == ownerID && config.ProductID == productID {
			out = append(out, config)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memConfigRepo) DeleteAllByProduct(ctx context.Context, productID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, config := range r.configs {
		if config.OwnerID == ownerID && config.ProductID == productID {
			delete(r.configs, id)
		}
	}
	return nil
}

func (r *memConfigRepo) GetByShareToken(ctx context.Context, token string) (*catalog.SharedConfiguration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, config := range r.configs {
		if config.ShareToken != nil && *config.ShareToken == token && config.IsPublic {
			shared := &catalog.SharedConfiguration{Configuration: config}
			if r.products != nil {
				if product, err := r.products.GetByID(ctx, config.ProductID, config.OwnerID); err == nil {
					shared.Product = product
				}
			}
			return shared, nil
		}
	}
	return nil, fmt.Errorf("share token: %w", domain.ErrNotFound)
}

// memBlobStore records uploads and deletes for asset-cleanup assertions
type memBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: make(map[string][]byte)}
}

func (s *memBlobStore) Upload(ctx context.Context, key string, payload io.Reader, size int64, onProgress storage.ProgressFunc) (string, error) {
	data, err := io.ReadAll(payload)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://blobs.test/" + key, nil
}

func (s *memBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memBlobStore) KeyFromURL(url string) string {
	const prefix = "https://blobs.test/"
	if len(url) > len(prefix) && url[:len(prefix)] == prefix {
		return url[len(prefix):]
	}
	return ""
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDispatcher(queries *cache.QueryCache) *cache.Dispatcher {
	logger := testLogger()
	return cache.NewDispatcher(queries, &cache.LogNotifier{Logger: logger}, logger)
}

func strPtr(s string) *string { return &s }
