package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"showroom/internal/cache"
	"showroom/internal/config"
	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
	catalogRepo "showroom/internal/domain/repositories/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
	"showroom/internal/storage"
)

// productService implements the ProductService interface
type productService struct {
	productRepo catalogRepo.ProductRepository
	configRepo  catalogRepo.ConfigurationRepository
	folderRepo  catalogRepo.FolderRepository
	blobs       storage.BlobStore
	dispatcher  *cache.Dispatcher
	queries     *cache.QueryCache
	logger      *slog.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalogRepo.ProductRepository,
	configRepo catalogRepo.ConfigurationRepository,
	folderRepo catalogRepo.FolderRepository,
	blobs storage.BlobStore,
	dispatcher *cache.Dispatcher,
	queries *cache.QueryCache,
	logger *slog.Logger,
) catalogSvc.ProductService {
	return &productService{
		productRepo: productRepo,
		configRepo:  configRepo,
		folderRepo:  folderRepo,
		blobs:       blobs,
		dispatcher:  dispatcher,
		queries:     queries,
		logger:      logger,
	}
}

// CreateProduct creates a product record pointing at an uploaded asset
func (s *productService) CreateProduct(ctx context.Context, req *catalogSvc.CreateProductRequest) (*catalog.Product, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("product creation requires a session: %w", domain.ErrUnauthorized)
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxProductNameLength)),
		validation.Field(&req.AssetPath, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.OwnerID); err != nil {
			return nil, fmt.Errorf("target folder: %w", err)
		}
	}

	now := time.Now()
	product := &catalog.Product{
		ID:           uuid.New().String(),
		FolderID:     req.FolderID,
		Name:         req.Name,
		Description:  req.Description,
		AssetPath:    req.AssetPath,
		ThumbnailURL: req.ThumbnailURL,
		OwnerID:      req.OwnerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.dispatcher.Dispatch(ctx, "product created", []string{
		cache.ProductListKey(req.OwnerID, req.FolderID),
	}, func(ctx context.Context) error {
		return s.productRepo.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves one product
func (s *productService) GetProduct(ctx context.Context, ownerID, productID string) (*catalog.Product, error) {
	return s.productRepo.GetByID(ctx, productID, ownerID)
}

// UpdateProduct partially updates a product
func (s *productService) UpdateProduct(ctx context.Context, productID string, req *catalogSvc.UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	oldFolder := product.FolderID

	if req.Name != nil {
		if err := validation.Validate(*req.Name,
			validation.Required, validation.Length(1, config.MaxProductNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %s", domain.ErrValidation, err.Error())
		}
		product.Name = *req.Name
	}
	if req.Description.Present {
		product.Description = req.Description.Value
	}
	if req.ThumbnailURL.Present {
		product.ThumbnailURL = req.ThumbnailURL.Value
	}
	if req.FolderID.Present {
		if req.FolderID.Value != nil {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID.Value, req.OwnerID); err != nil {
				return nil, fmt.Errorf("target folder: %w", err)
			}
		}
		product.FolderID = req.FolderID.Value
	}
	product.UpdatedAt = time.Now()

	err = s.dispatcher.Dispatch(ctx, "product updated", []string{
		cache.ProductListKey(req.OwnerID, oldFolder),
		cache.ProductListKey(req.OwnerID, product.FolderID),
	}, func(ctx context.Context) error {
		return s.productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// MoveProduct updates the product's folder; targetID nil means root
func (s *productService) MoveProduct(ctx context.Context, ownerID, productID string, targetID *string) (*catalog.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID, ownerID)
	if err != nil {
		return nil, err
	}

	if sameParent(product.FolderID, targetID) {
		return product, nil
	}

	if targetID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *targetID, ownerID); err != nil {
			return nil, fmt.Errorf("target folder: %w", err)
		}
	}

	oldFolder := product.FolderID
	product.FolderID = targetID
	product.UpdatedAt = time.Now()

	err = s.dispatcher.Dispatch(ctx, "product moved", []string{
		cache.ProductListKey(ownerID, oldFolder),
		cache.ProductListKey(ownerID, targetID),
	}, func(ctx context.Context) error {
		return s.productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes the record, its configurations, and best-effort the
// stored asset blob. The blob delete runs after the rows are gone: a leaked
// object costs storage, a dangling record costs correctness.
func (s *productService) DeleteProduct(ctx context.Context, ownerID, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID, ownerID)
	if err != nil {
		return err
	}

	err = s.dispatcher.Dispatch(ctx, "product deleted", []string{
		cache.ProductListKey(ownerID, product.FolderID),
		cache.ConfigListKey(ownerID, productID),
	}, func(ctx context.Context) error {
		if err := s.configRepo.DeleteAllByProduct(ctx, productID, ownerID); err != nil {
			return err
		}
		return s.productRepo.Delete(ctx, productID, ownerID)
	})
	if err != nil {
		return err
	}

	if s.blobs != nil {
		if key := s.blobs.KeyFromURL(product.AssetPath); key != "" {
			if err := s.blobs.Delete(ctx, key); err != nil {
				s.logger.Warn("asset cleanup failed, object leaked",
					"product_id", productID, "key", key, "error", err)
			}
		}
	}

	return nil
}

// ListByFolder lists the products directly inside a folder (nil = root)
func (s *productService) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]catalog.Product, error) {
	key := cache.ProductListKey(ownerID, folderID)
	if cached, ok := s.queries.Get(key); ok {
		if products, ok := cached.([]catalog.Product); ok {
			return products, nil
		}
	}

	products, err := s.productRepo.ListByFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	s.queries.Set(key, products)
	return products, nil
}
