package catalog

import (
	"time"
)

type Product struct {
	ID           string    `json:"id" db:"id"`
	FolderID     *string   `json:"folder_id" db:"folder_id"` // NULL = root level
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description" db:"description"`
	AssetPath    string    `json:"glb_file_path" db:"glb_file_path"` // public URL of the uploaded GLB
	ThumbnailURL *string   `json:"thumbnail_url" db:"thumbnail_url"`
	OwnerID      string    `json:"user_id" db:"user_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
