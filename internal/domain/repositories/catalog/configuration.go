package catalog

import (
	"context"

	"showroom/internal/domain/models/catalog"
)

// ConfigurationRepository defines data access operations for configurations
type ConfigurationRepository interface {
	// Create creates a new configuration
	Create(ctx context.Context, config *catalog.Configuration) error

	// GetByID retrieves a configuration owned by ownerID
	GetByID(ctx context.Context, id, ownerID string) (*catalog.Configuration, error)

	// Update updates a configuration
	Update(ctx context.Context, config *catalog.Configuration) error

	// Delete deletes a configuration
	Delete(ctx context.Context, id, ownerID string) error

	// ListByProduct lists configurations for a product, newest first
	ListByProduct(ctx context.Context, productID, ownerID string) ([]catalog.Configuration, error)

	// DeleteAllByProduct deletes every configuration of a product
	DeleteAllByProduct(ctx context.Context, productID, ownerID string) error

	// GetByShareToken resolves a public share token to the configuration and
	// its joined product. Ignores ownership: the token is the capability.
	// Returns domain.ErrNotFound when the token is unknown or not public.
	GetByShareToken(ctx context.Context, token string) (*catalog.SharedConfiguration, error)
}
