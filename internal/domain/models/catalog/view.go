package catalog

// ItemKind distinguishes folder and product cards in mixed listings,
// selections and drag gestures.
type ItemKind string

const (
	KindFolder  ItemKind = "folder"
	KindProduct ItemKind = "product"
)

// ItemRef identifies one entity in a mixed folder/product listing.
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   string   `json:"id"`
}

// FolderView is the payload for one folder listing: the folder itself
// (nil at root), its ancestor chain root-first, and its direct children.
type FolderView struct {
	Folder     *Folder   `json:"folder"`
	Breadcrumb []Folder  `json:"breadcrumb"`
	Folders    []Folder  `json:"folders"`
	Products   []Product `json:"products"`
}
