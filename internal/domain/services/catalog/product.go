package catalog

import (
	"context"

	"showroom/internal/domain/models/catalog"
	"showroom/internal/httputil"
)

// CreateProductRequest is the payload for creating a product record.
// The GLB asset is uploaded beforehand; AssetPath is the returned public URL.
type CreateProductRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	FolderID     *string `json:"folder_id"`
	AssetPath    string  `json:"glb_file_path"`
	ThumbnailURL *string `json:"thumbnail_url"`
	OwnerID      string  `json:"-"`
}

// UpdateProductRequest is the payload for partially updating a product.
// FolderID uses tri-state semantics: absent = keep, null = move to root.
type UpdateProductRequest struct {
	Name         *string                 `json:"name"`
	Description  httputil.OptionalString `json:"description"`
	FolderID     httputil.OptionalString `json:"folder_id"`
	ThumbnailURL httputil.OptionalString `json:"thumbnail_url"`
	OwnerID      string                  `json:"-"`
}

// ProductService defines product business operations
type ProductService interface {
	// CreateProduct creates a product record pointing at an uploaded asset
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*catalog.Product, error)

	// GetProduct retrieves one product
	GetProduct(ctx context.Context, ownerID, productID string) (*catalog.Product, error)

	// UpdateProduct partially updates a product
	UpdateProduct(ctx context.Context, productID string, req *UpdateProductRequest) (*catalog.Product, error)

	// DeleteProduct deletes the record, its configurations, and best-effort
	// the stored asset blob
	DeleteProduct(ctx context.Context, ownerID, productID string) error

	// MoveProduct updates the product's folder; targetID nil means root.
	// Idempotent: moving to the current folder is a successful no-op.
	MoveProduct(ctx context.Context, ownerID, productID string, targetID *string) (*catalog.Product, error)

	// ListByFolder lists the products directly inside a folder (nil = root)
	ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]catalog.Product, error)
}
