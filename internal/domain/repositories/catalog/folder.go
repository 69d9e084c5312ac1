package catalog

import (
	"context"

	"showroom/internal/domain/models/catalog"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *catalog.Folder) error

	// GetByID retrieves a folder owned by ownerID
	GetByID(ctx context.Context, id, ownerID string) (*catalog.Folder, error)

	// Update updates a folder (rename and/or re-parent)
	Update(ctx context.Context, folder *catalog.Folder) error

	// Delete deletes a folder
	Delete(ctx context.Context, id, ownerID string) error

	// ListChildren lists immediate child folders; parentID nil means root
	ListChildren(ctx context.Context, parentID *string, ownerID string) ([]catalog.Folder, error)

	// GetAllByOwner retrieves the owner's full folder set (flat list)
	GetAllByOwner(ctx context.Context, ownerID string) ([]catalog.Folder, error)
}
