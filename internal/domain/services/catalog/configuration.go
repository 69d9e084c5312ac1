package catalog

import (
	"context"

	"showroom/internal/domain/models/catalog"
)

// CreateConfigurationRequest is the payload for saving a scene snapshot from
// the editor. Omitted sections fall back to the editor defaults.
type CreateConfigurationRequest struct {
	ProductID   string              `json:"product_id"`
	Name        string              `json:"name"`
	VariantName string              `json:"variant_name"`
	Transform   *catalog.Transform  `json:"transform"`
	Materials   *catalog.Materials  `json:"materials"`
	Lighting    *catalog.Lighting   `json:"lighting"`
	OwnerID     string              `json:"-"`
}

// UpdateConfigurationRequest partially updates a configuration. Only sections
// present in the request are replaced; absent sections keep their stored
// values (a materials-only save never clobbers the transform).
type UpdateConfigurationRequest struct {
	Name        *string            `json:"name"`
	VariantName *string            `json:"variant_name"`
	Transform   *catalog.Transform `json:"transform"`
	Materials   *catalog.Materials `json:"materials"`
	Lighting    *catalog.Lighting  `json:"lighting"`
	OwnerID     string             `json:"-"`
}

// ConfigurationService defines configuration business operations
type ConfigurationService interface {
	// CreateConfiguration saves a snapshot and generates its share token
	CreateConfiguration(ctx context.Context, req *CreateConfigurationRequest) (*catalog.Configuration, error)

	// GetConfiguration retrieves one configuration
	GetConfiguration(ctx context.Context, ownerID, configID string) (*catalog.Configuration, error)

	// UpdateConfiguration applies a partial editor save
	UpdateConfiguration(ctx context.Context, configID string, req *UpdateConfigurationRequest) (*catalog.Configuration, error)

	// DeleteConfiguration deletes a configuration
	DeleteConfiguration(ctx context.Context, ownerID, configID string) error

	// DuplicateConfiguration clones a configuration with a fresh id and
	// share token; the clone starts private
	DuplicateConfiguration(ctx context.Context, ownerID, configID string) (*catalog.Configuration, error)

	// SetVisibility toggles public access via the share token
	SetVisibility(ctx context.Context, ownerID, configID string, isPublic bool) (*catalog.Configuration, error)

	// ListByProduct lists a product's configurations, newest first
	ListByProduct(ctx context.Context, ownerID, productID string) ([]catalog.Configuration, error)

	// ResolveShareToken fetches a public configuration with its joined
	// product; anonymous access, token is the capability
	ResolveShareToken(ctx context.Context, token string) (*catalog.SharedConfiguration, error)
}
