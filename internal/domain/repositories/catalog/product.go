package catalog

import (
	"context"

	"showroom/internal/domain/models/catalog"
)

// ProductRepository defines data access operations for products
type ProductRepository interface {
	// Create creates a new product record
	Create(ctx context.Context, product *catalog.Product) error

	// GetByID retrieves a product owned by ownerID
	GetByID(ctx context.Context, id, ownerID string) (*catalog.Product, error)

	// Update updates a product
	Update(ctx context.Context, product *catalog.Product) error

	// Delete deletes a product record
	Delete(ctx context.Context, id, ownerID string) error

	// ListByFolder lists products in a folder; folderID nil means root
	ListByFolder(ctx context.Context, folderID *string, ownerID string) ([]catalog.Product, error)
}
