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
	catalogRepo "showroom/internal/domain/repositories/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
)

// configurationService implements the ConfigurationService interface
type configurationService struct {
	configRepo  catalogRepo.ConfigurationRepository
	productRepo catalogRepo.ProductRepository
	dispatcher  *cache.Dispatcher
	queries     *cache.QueryCache
	logger      *slog.Logger
}

// NewConfigurationService creates a new configuration service
func NewConfigurationService(
	configRepo catalogRepo.ConfigurationRepository,
	productRepo catalogRepo.ProductRepository,
	dispatcher *cache.Dispatcher,
	queries *cache.QueryCache,
	logger *slog.Logger,
) catalogSvc.ConfigurationService {
	return &configurationService{
		configRepo:  configRepo,
		productRepo: productRepo,
		dispatcher:  dispatcher,
		queries:     queries,
		logger:      logger,
	}
}

func validateMaterials(m *catalog.Materials) error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Metalness, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&m.Roughness, validation.Min(0.0), validation.Max(1.0)),
	)
}

// CreateConfiguration saves a snapshot and generates its share token.
// Omitted sections fall back to the editor defaults, so a snapshot saved
// right after load captures exactly what the viewer showed.
func (s *configurationService) CreateConfiguration(ctx context.Context, req *catalogSvc.CreateConfigurationRequest) (*catalog.Configuration, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("saving a configuration requires a session: %w", domain.ErrUnauthorized)
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProductID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxConfigNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	if _, err := s.productRepo.GetByID(ctx, req.ProductID, req.OwnerID); err != nil {
		return nil, fmt.Errorf("product: %w", err)
	}

	now := time.Now()
	cfg := &catalog.Configuration{
		ID:          uuid.New().String(),
		ProductID:   req.ProductID,
		Name:        req.Name,
		VariantName: req.VariantName,
		Transform:   catalog.DefaultTransform(),
		Materials:   catalog.DefaultMaterials(),
		Lighting:    catalog.DefaultLighting(),
		ShareToken:  newShareToken(),
		IsPublic:    false,
		OwnerID:     req.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Transform != nil {
		cfg.Transform = *req.Transform
	}
	if req.Materials != nil {
		if err := validateMaterials(req.Materials); err != nil {
			return nil, fmt.Errorf("%w: materials: %s", domain.ErrValidation, err.Error())
		}
		cfg.Materials = *req.Materials
	}
	if req.Lighting != nil {
		cfg.Lighting = *req.Lighting
	}

	err := s.dispatcher.Dispatch(ctx, "configuration saved", []string{
		cache.ConfigListKey(req.OwnerID, req.ProductID),
	}, func(ctx context.Context) error {
		return s.configRepo.Create(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetConfiguration retrieves one configuration
func (s *configurationService) GetConfiguration(ctx context.Context, ownerID, configID string) (*catalog.Configuration, error) {
	return s.configRepo.GetByID(ctx, configID, ownerID)
}

// UpdateConfiguration applies a partial editor save. Only sections present in
// the request change; a materials-only save never clobbers the transform.
func (s *configurationService) UpdateConfiguration(ctx context.Context, configID string, req *catalogSvc.UpdateConfigurationRequest) (*catalog.Configuration, error) {
	cfg, err := s.configRepo.GetByID(ctx, configID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validation.Validate(*req.Name,
			validation.Required, validation.Length(1, config.MaxConfigNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %s", domain.ErrValidation, err.Error())
		}
		cfg.Name = *req.Name
	}
	if req.VariantName != nil {
		cfg.VariantName = *req.VariantName
	}
	if req.Transform != nil {
		cfg.Transform = *req.Transform
	}
	if req.Materials != nil {
		if err := validateMaterials(req.Materials); err != nil {
			return nil, fmt.Errorf("%w: materials: %s", domain.ErrValidation, err.Error())
		}
		cfg.Materials = *req.Materials
	}
	if req.Lighting != nil {
		cfg.Lighting = *req.Lighting
	}
	cfg.UpdatedAt = time.Now()

	err = s.dispatcher.Dispatch(ctx, "configuration updated", []string{
		cache.ConfigListKey(req.OwnerID, cfg.ProductID),
	}, func(ctx context.Context) error {
		return s.configRepo.Update(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// DeleteConfiguration deletes a configuration
func (s *configurationService) DeleteConfiguration(ctx context.Context, ownerID, configID string) error {
	cfg, err := s.configRepo.GetByID(ctx, configID, ownerID)
	if err != nil {
		return err
	}

	return s.dispatcher.Dispatch(ctx, "configuration deleted", []string{
		cache.ConfigListKey(ownerID, cfg.ProductID),
	}, func(ctx context.Context) error {
		return s.configRepo.Delete(ctx, configID, ownerID)
	})
}

// DuplicateConfiguration clones a configuration with a fresh id and share
// token. The clone starts private regardless of the source's visibility.
func (s *configurationService) DuplicateConfiguration(ctx context.Context, ownerID, configID string) (*catalog.Configuration, error) {
	src, err := s.configRepo.GetByID(ctx, configID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	clone := &catalog.Configuration{
		ID:          uuid.New().String(),
		ProductID:   src.ProductID,
		Name:        src.Name + " (copy)",
		VariantName: src.VariantName,
		Transform:   src.Transform,
		Materials:   src.Materials,
		Lighting:    src.Lighting,
		ShareToken:  newShareToken(),
		IsPublic:    false,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.dispatcher.Dispatch(ctx, "configuration duplicated", []string{
		cache.ConfigListKey(ownerID, src.ProductID),
	}, func(ctx context.Context) error {
		return s.configRepo.Create(ctx, clone)
	})
	if err != nil {
		return nil, err
	}

	return clone, nil
}

// SetVisibility toggles public access via the share token
func (s *configurationService) SetVisibility(ctx context.Context, ownerID, configID string, isPublic bool) (*catalog.Configuration, error) {
	cfg, err := s.configRepo.GetByID(ctx, configID, ownerID)
	if err != nil {
		return nil, err
	}

	cfg.IsPublic = isPublic
	if cfg.ShareToken == nil {
		// Rows predating token-at-creation get one on first publish
		cfg.ShareToken = newShareToken()
	}
	cfg.UpdatedAt = time.Now()

	op := "configuration published"
	if !isPublic {
		op = "configuration unpublished"
	}
	err = s.dispatcher.Dispatch(ctx, op, []string{
		cache.ConfigListKey(ownerID, cfg.ProductID),
	}, func(ctx context.Context) error {
		return s.configRepo.Update(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ListByProduct lists a product's configurations, newest first
func (s *configurationService) ListByProduct(ctx context.Context, ownerID, productID string) ([]catalog.Configuration, error) {
	key := cache.ConfigListKey(ownerID, productID)
	if cached, ok := s.queries.Get(key); ok {
		if configs, ok := cached.([]catalog.Configuration); ok {
			return configs, nil
		}
	}

	configs, err := s.configRepo.ListByProduct(ctx, productID, ownerID)
	if err != nil {
		return nil, err
	}
	s.queries.Set(key, configs)
	return configs, nil
}

// ResolveShareToken fetches a public configuration with its joined product
func (s *configurationService) ResolveShareToken(ctx context.Context, token string) (*catalog.SharedConfiguration, error) {
	if token == "" {
		return nil, fmt.Errorf("empty share token: %w", domain.ErrNotFound)
	}
	return s.configRepo.GetByShareToken(ctx, token)
}

func newShareToken() *string {
	token := uuid.New().String()
	return &token
}
