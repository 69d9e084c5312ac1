package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
	catalogRepo "showroom/internal/domain/repositories/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
)

// bulkService implements the BulkService interface. Constituent mutations go
// through the single-entity services so each one carries its own validation
// and cache invalidation; this layer adds fan-out, the pre-dispatch cycle
// check for moves, and per-item outcome collection.
type bulkService struct {
	folders       catalogSvc.FolderService
	products      catalogSvc.ProductService
	configs       catalogSvc.ConfigurationService
	folderRepo    catalogRepo.FolderRepository
	viewerBaseURL string
	logger        *slog.Logger
}

// NewBulkService creates a new bulk operation service
func NewBulkService(
	folders catalogSvc.FolderService,
	products catalogSvc.ProductService,
	configs catalogSvc.ConfigurationService,
	folderRepo catalogRepo.FolderRepository,
	viewerBaseURL string,
	logger *slog.Logger,
) catalogSvc.BulkService {
	return &bulkService{
		folders:       folders,
		products:      products,
		configs:       configs,
		folderRepo:    folderRepo,
		viewerBaseURL: viewerBaseURL,
		logger:        logger,
	}
}

// Move moves every selected entity into targetID (nil = root). The cycle
// check runs against the whole selection before any mutation is issued: a
// target inside a selected folder's subtree rejects the entire batch with
// zero mutations applied.
func (s *bulkService) Move(ctx context.Context, ownerID string, selection []catalog.ItemRef, targetID *string) (*catalogSvc.BulkResult, error) {
	if len(selection) == 0 {
		return &catalogSvc.BulkResult{}, nil
	}

	if targetID != nil {
		if err := s.guardBulkMove(ctx, ownerID, selection, *targetID); err != nil {
			return nil, err
		}
	}

	return s.fanOut(ctx, selection, func(ctx context.Context, item catalog.ItemRef) (string, error) {
		switch item.Kind {
		case catalog.KindFolder:
			_, err := s.folders.MoveFolder(ctx, ownerID, item.ID, targetID)
			return "", err
		case catalog.KindProduct:
			_, err := s.products.MoveProduct(ctx, ownerID, item.ID, targetID)
			return "", err
		default:
			return "", fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, item.Kind)
		}
	}), nil
}

func (s *bulkService) guardBulkMove(ctx context.Context, ownerID string, selection []catalog.ItemRef, targetID string) error {
	var selectedFolders []string
	for _, item := range selection {
		if item.Kind == catalog.KindFolder {
			if item.ID == targetID {
				return fmt.Errorf("target folder %s is part of the selection: %w", targetID, domain.ErrCycle)
			}
			selectedFolders = append(selectedFolders, item.ID)
		}
	}
	if len(selectedFolders) == 0 {
		return nil
	}

	allFolders, err := s.folderRepo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, folderID := range selectedFolders {
		inside, err := IsDescendant(allFolders, folderID, targetID)
		if err != nil {
			return err
		}
		if inside {
			return fmt.Errorf("target folder %s is inside selected folder %s: %w", targetID, folderID, domain.ErrCycle)
		}
	}
	return nil
}

// Delete deletes every selected entity. Items already gone (deleted by a
// nested cascade or another session) settle as individual not-found failures
// without aborting their siblings.
func (s *bulkService) Delete(ctx context.Context, ownerID string, selection []catalog.ItemRef) (*catalogSvc.BulkResult, error) {
	return s.fanOut(ctx, selection, func(ctx context.Context, item catalog.ItemRef) (string, error) {
		switch item.Kind {
		case catalog.KindFolder:
			return "", s.folders.DeleteFolder(ctx, ownerID, item.ID)
		case catalog.KindProduct:
			return "", s.products.DeleteProduct(ctx, ownerID, item.ID)
		default:
			return "", fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, item.Kind)
		}
	}), nil
}

// Share collects a share link per selected product, using each product's most
// recent configuration. Folders in the selection are skipped. Links are
// built whether or not the configuration is public; visibility stays the
// owner's call.
func (s *bulkService) Share(ctx context.Context, ownerID string, selection []catalog.ItemRef) (*catalogSvc.BulkResult, error) {
	var products []catalog.ItemRef
	for _, item := range selection {
		if item.Kind == catalog.KindProduct {
			products = append(products, item)
		}
	}

	return s.fanOut(ctx, products, func(ctx context.Context, item catalog.ItemRef) (string, error) {
		configs, err := s.configs.ListByProduct(ctx, ownerID, item.ID)
		if err != nil {
			return "", err
		}
		if len(configs) == 0 {
			return "", fmt.Errorf("product has no saved configuration: %w", domain.ErrNotFound)
		}
		newest := configs[0]
		if newest.ShareToken == nil {
			return "", fmt.Errorf("configuration %s has no share token: %w", newest.ID, domain.ErrNotFound)
		}
		return s.viewerBaseURL + "/" + *newest.ShareToken, nil
	}), nil
}

// fanOut runs fn once per item concurrently and collects per-item outcomes.
// Result order follows the input selection order.
func (s *bulkService) fanOut(ctx context.Context, selection []catalog.ItemRef, fn func(ctx context.Context, item catalog.ItemRef) (string, error)) *catalogSvc.BulkResult {
	outcomes := make([]catalogSvc.BulkItemResult, len(selection))

	var wg sync.WaitGroup
	for i, item := range selection {
		wg.Add(1)
		go func(i int, item catalog.ItemRef) {
			defer wg.Done()
			shareURL, err := fn(ctx, item)
			outcome := catalogSvc.BulkItemResult{Item: item, ShareURL: shareURL}
			if err != nil {
				outcome.Error = err.Error()
			}
			outcomes[i] = outcome
		}(i, item)
	}
	wg.Wait()

	result := &catalogSvc.BulkResult{}
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			result.Failed = append(result.Failed, outcome)
		} else {
			result.Succeeded = append(result.Succeeded, outcome)
		}
	}
	return result
}
