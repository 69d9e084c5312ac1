package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"showroom/internal/cache"
	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
	catalogRepo "showroom/internal/domain/repositories/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
)

// Breadcrumb computes the ordered ancestor chain for currentID, root-first
// and ending with the current folder itself. The walk is bounded by
// |folders|: exceeding that bound means the stored hierarchy contains a
// cycle, reported as domain.ErrCorruptHierarchy instead of looping forever.
//
// An unknown currentID yields an empty chain (stale references resolve to
// the root view, they don't fail the render).
func Breadcrumb(folders []catalog.Folder, currentID string) ([]catalog.Folder, error) {
	byID := make(map[string]*catalog.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	current, ok := byID[currentID]
	if !ok {
		return nil, nil
	}

	var chain []catalog.Folder
	for steps := 0; ; steps++ {
		if steps > len(folders) {
			return nil, fmt.Errorf("ancestor walk from folder %s exceeded %d steps: %w",
				currentID, len(folders), domain.ErrCorruptHierarchy)
		}

		chain = append([]catalog.Folder{*current}, chain...)

		if current.ParentID == nil {
			return chain, nil
		}

		parent, ok := byID[*current.ParentID]
		if !ok {
			// Dangling parent reference: treat the highest reachable
			// folder as the chain root.
			return chain, nil
		}
		current = parent
	}
}

// IsDescendant reports whether candidateID sits inside the subtree rooted at
// ancestorID, by walking candidate's parent chain. Bounded like Breadcrumb.
func IsDescendant(folders []catalog.Folder, ancestorID, candidateID string) (bool, error) {
	byID := make(map[string]*catalog.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	current, ok := byID[candidateID]
	if !ok {
		return false, nil
	}

	for steps := 0; ; steps++ {
		if steps > len(folders) {
			return false, fmt.Errorf("ancestor walk from folder %s exceeded %d steps: %w",
				candidateID, len(folders), domain.ErrCorruptHierarchy)
		}

		if current.ID == ancestorID {
			return true, nil
		}
		if current.ParentID == nil {
			return false, nil
		}

		parent, ok := byID[*current.ParentID]
		if !ok {
			return false, nil
		}
		current = parent
	}
}

// Partition splits the flat folder set into direct children of currentID
// (nil = root) and everything else.
func Partition(folders []catalog.Folder, currentID *string) (children, rest []catalog.Folder) {
	for _, folder := range folders {
		if sameParent(folder.ParentID, currentID) {
			children = append(children, folder)
		} else {
			rest = append(rest, folder)
		}
	}
	return children, rest
}

func sameParent(parentID, currentID *string) bool {
	if parentID == nil || currentID == nil {
		return parentID == nil && currentID == nil
	}
	return *parentID == *currentID
}

// treeService implements the TreeService interface
type treeService struct {
	folderRepo  catalogRepo.FolderRepository
	productRepo catalogRepo.ProductRepository
	queries     *cache.QueryCache
	logger      *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo catalogRepo.FolderRepository,
	productRepo catalogRepo.ProductRepository,
	queries *cache.QueryCache,
	logger *slog.Logger,
) catalogSvc.TreeService {
	return &treeService{
		folderRepo:  folderRepo,
		productRepo: productRepo,
		queries:     queries,
		logger:      logger,
	}
}

// View resolves the current-folder listing: breadcrumb, child folders and
// products. Listings are served from the query cache when a previous render
// populated it and no mutation has invalidated the keys since.
func (s *treeService) View(ctx context.Context, ownerID string, currentFolderID *string) (*catalog.FolderView, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("listing requires a session: %w", domain.ErrUnauthorized)
	}

	allFolders, err := s.folderSet(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	view := &catalog.FolderView{}

	if currentFolderID != nil {
		chain, err := Breadcrumb(allFolders, *currentFolderID)
		if err != nil {
			return nil, err
		}
		if chain == nil {
			// Stale folder id (deleted by another session): fall back to
			// the root view instead of failing the render.
			s.logger.Debug("stale folder id, resolving to root", "folder_id", *currentFolderID)
			currentFolderID = nil
		} else {
			view.Breadcrumb = chain
			current := chain[len(chain)-1]
			view.Folder = &current
		}
	}

	children, _ := Partition(allFolders, currentFolderID)
	view.Folders = children

	products, err := s.products(ctx, ownerID, currentFolderID)
	if err != nil {
		return nil, err
	}
	view.Products = products

	return view, nil
}

func (s *treeService) folderSet(ctx context.Context, ownerID string) ([]catalog.Folder, error) {
	key := cache.FolderSetKey(ownerID)
	if cached, ok := s.queries.Get(key); ok {
		if folders, ok := cached.([]catalog.Folder); ok {
			return folders, nil
		}
	}

	folders, err := s.folderRepo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.queries.Set(key, folders)
	return folders, nil
}

func (s *treeService) products(ctx context.Context, ownerID string, folderID *string) ([]catalog.Product, error) {
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
