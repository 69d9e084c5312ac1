package catalog

import (
	"context"

	"showroom/internal/domain/models/catalog"
)

// TreeService resolves the current-folder view: breadcrumb, child folders
// and products
type TreeService interface {
	// View resolves the listing for currentFolderID (nil = root). A stale
	// id that no longer exists resolves to the root view instead of failing.
	View(ctx context.Context, ownerID string, currentFolderID *string) (*catalog.FolderView, error)
}
