package catalog

import (
	"context"

	"showroom/internal/domain/models/catalog"
	"showroom/internal/httputil"
)

// CreateFolderRequest is the payload for creating a folder
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"` // nil = root level
	OwnerID  string  `json:"-"`         // from auth context, never the body
}

// UpdateFolderRequest is the payload for renaming and/or moving a folder.
// ParentID uses tri-state semantics: absent = keep, null = move to root,
// value = move under that folder.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name"`
	ParentID httputil.OptionalString `json:"parent_id"`
	OwnerID  string                  `json:"-"`
}

// FolderService defines folder business operations
type FolderService interface {
	// CreateFolder creates a folder under the given parent
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*catalog.Folder, error)

	// GetFolder retrieves one folder
	GetFolder(ctx context.Context, ownerID, folderID string) (*catalog.Folder, error)

	// UpdateFolder renames and/or moves a folder; moves are cycle-guarded
	UpdateFolder(ctx context.Context, folderID string, req *UpdateFolderRequest) (*catalog.Folder, error)

	// DeleteFolder deletes a folder and cascades to all contained folders and products
	DeleteFolder(ctx context.Context, ownerID, folderID string) error

	// MoveFolder re-parents a folder; targetID nil means root. Cycle-guarded.
	MoveFolder(ctx context.Context, ownerID, folderID string, targetID *string) (*catalog.Folder, error)
}
