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
	"showroom/internal/domain/repositories"
	catalogRepo "showroom/internal/domain/repositories/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
)

// folderService implements the FolderService interface
type folderService struct {
	folderRepo catalogRepo.FolderRepository
	products   catalogSvc.ProductService
	txManager  repositories.TransactionManager
	dispatcher *cache.Dispatcher
	queries    *cache.QueryCache
	logger     *slog.Logger
}

// NewFolderService creates a new folder service. Product deletion during a
// cascade is delegated to the product service so asset and configuration
// cleanup stay in one place. txManager may be nil (tests); the cascade then
// runs without a wrapping transaction.
func NewFolderService(
	folderRepo catalogRepo.FolderRepository,
	products catalogSvc.ProductService,
	txManager repositories.TransactionManager,
	dispatcher *cache.Dispatcher,
	queries *cache.QueryCache,
	logger *slog.Logger,
) catalogSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		products:   products,
		txManager:  txManager,
		dispatcher: dispatcher,
		queries:    queries,
		logger:     logger,
	}
}

// CreateFolder creates a folder under the given parent
func (s *folderService) CreateFolder(ctx context.Context, req *catalogSvc.CreateFolderRequest) (*catalog.Folder, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("folder creation requires a session: %w", domain.ErrUnauthorized)
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxFolderNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.OwnerID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	now := time.Now()
	folder := &catalog.Folder{
		ID:        uuid.New().String(),
		ParentID:  req.ParentID,
		Name:      req.Name,
		OwnerID:   req.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.dispatcher.Dispatch(ctx, "folder created", []string{
		cache.FolderListKey(req.OwnerID, req.ParentID),
		cache.FolderSetKey(req.OwnerID),
	}, func(ctx context.Context) error {
		return s.folderRepo.Create(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	return folder, nil
}

// GetFolder retrieves one folder
func (s *folderService) GetFolder(ctx context.Context, ownerID, folderID string) (*catalog.Folder, error) {
	return s.folderRepo.GetByID(ctx, folderID, ownerID)
}

// UpdateFolder renames and/or moves a folder
func (s *folderService) UpdateFolder(ctx context.Context, folderID string, req *catalogSvc.UpdateFolderRequest) (*catalog.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	oldParent := folder.ParentID

	if req.Name != nil {
		if err := validation.Validate(*req.Name,
			validation.Required, validation.Length(1, config.MaxFolderNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %s", domain.ErrValidation, err.Error())
		}
		folder.Name = *req.Name
	}

	if req.ParentID.Present {
		newParent := req.ParentID.Value
		if err := s.guardMove(ctx, req.OwnerID, folderID, newParent); err != nil {
			return nil, err
		}
		folder.ParentID = newParent
	}
	folder.UpdatedAt = time.Now()

	err = s.dispatcher.Dispatch(ctx, "folder updated", []string{
		cache.FolderListKey(req.OwnerID, oldParent),
		cache.FolderListKey(req.OwnerID, folder.ParentID),
		cache.FolderSetKey(req.OwnerID),
	}, func(ctx context.Context) error {
		return s.folderRepo.Update(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	return folder, nil
}

// MoveFolder re-parents a folder; targetID nil means root
func (s *folderService) MoveFolder(ctx context.Context, ownerID, folderID string, targetID *string) (*catalog.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	if sameParent(folder.ParentID, targetID) {
		// Already there: moving again yields the same end state without
		// issuing another mutation.
		return folder, nil
	}

	if err := s.guardMove(ctx, ownerID, folderID, targetID); err != nil {
		return nil, err
	}

	oldParent := folder.ParentID
	folder.ParentID = targetID
	folder.UpdatedAt = time.Now()

	err = s.dispatcher.Dispatch(ctx, "folder moved", []string{
		cache.FolderListKey(ownerID, oldParent),
		cache.FolderListKey(ownerID, targetID),
		cache.FolderSetKey(ownerID),
	}, func(ctx context.Context) error {
		return s.folderRepo.Update(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	return folder, nil
}

// guardMove rejects re-parenting that would detach the subtree into itself:
// a folder may not become a child of itself or of any of its descendants.
func (s *folderService) guardMove(ctx context.Context, ownerID, folderID string, targetID *string) error {
	if targetID == nil {
		return nil
	}
	if *targetID == folderID {
		return fmt.Errorf("folder %s cannot be its own parent: %w", folderID, domain.ErrCycle)
	}

	allFolders, err := s.folderRepo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	found := false
	for _, f := range allFolders {
		if f.ID == *targetID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("target folder %s: %w", *targetID, domain.ErrNotFound)
	}

	inside, err := IsDescendant(allFolders, folderID, *targetID)
	if err != nil {
		return err
	}
	if inside {
		return fmt.Errorf("folder %s cannot move into its own subtree: %w", folderID, domain.ErrCycle)
	}
	return nil
}

// DeleteFolder deletes a folder and everything inside it. The cascade walks
// the subtree bottom-up so no orphaned child survives a partial failure
// higher in the tree.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return err
	}

	return s.dispatcher.Dispatch(ctx, "folder deleted", []string{
		cache.FolderListKey(ownerID, folder.ParentID),
		cache.FolderSetKey(ownerID),
		"products:" + ownerID,
		"configs:" + ownerID,
	}, func(ctx context.Context) error {
		if s.txManager == nil {
			return s.deleteSubtree(ctx, ownerID, folderID)
		}
		return s.txManager.ExecTx(ctx, func(ctx context.Context) error {
			return s.deleteSubtree(ctx, ownerID, folderID)
		})
	})
}

func (s *folderService) deleteSubtree(ctx context.Context, ownerID, folderID string) error {
	children, err := s.folderRepo.ListChildren(ctx, &folderID, ownerID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.deleteSubtree(ctx, ownerID, child.ID); err != nil {
			return err
		}
	}

	products, err := s.products.ListByFolder(ctx, ownerID, &folderID)
	if err != nil {
		return err
	}
	for _, product := range products {
		if err := s.products.DeleteProduct(ctx, ownerID, product.ID); err != nil {
			return err
		}
	}

	return s.folderRepo.Delete(ctx, folderID, ownerID)
}
