package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
	catalogRepo "showroom/internal/domain/repositories/catalog"
)

// PostgresConfigurationRepository implements the ConfigurationRepository
// interface. The transform/materials/lighting sections are JSONB columns;
// pgx encodes and decodes the struct values directly.
type PostgresConfigurationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewConfigurationRepository creates a new configuration repository
func NewConfigurationRepository(config *RepositoryConfig) catalogRepo.ConfigurationRepository {
	return &PostgresConfigurationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const configColumns = "id, product_id, name, variant_name, transform, materials, lighting, share_token, is_public, user_id, created_at, updated_at"

// Create creates a new configuration
func (r *PostgresConfigurationRepository) Create(ctx context.Context, config *catalog.Configuration) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, product_id, name, variant_name, transform, materials, lighting, share_token, is_public, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`, r.tables.Configurations)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		config.ID,
		config.ProductID,
		config.Name,
		config.VariantName,
		config.Transform,
		config.Materials,
		config.Lighting,
		config.ShareToken,
		config.IsPublic,
		config.OwnerID,
		config.CreatedAt,
		config.UpdatedAt,
	).Scan(&config.CreatedAt, &config.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("product for configuration '%s': %w", config.Name, domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			return fmt.Errorf("configuration share token: %w", domain.ErrConflict)
		}
		return fmt.Errorf("create configuration: %w", err)
	}

	return nil
}

// GetByID retrieves a configuration by ID
func (r *PostgresConfigurationRepository) GetByID(ctx context.Context, id, ownerID string) (*catalog.Configuration, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, configColumns, r.tables.Configurations)

	executor := GetExecutor(ctx, r.pool)
	config, err := scanConfiguration(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("configuration %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get configuration: %w", err)
	}

	return config, nil
}

// Update updates a configuration
func (r *PostgresConfigurationRepository) Update(ctx context.Context, config *catalog.Configuration) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, variant_name = $2, transform = $3, materials = $4, lighting = $5, is_public = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`, r.tables.Configurations)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		config.Name,
		config.VariantName,
		config.Transform,
		config.Materials,
		config.Lighting,
		config.IsPublic,
		config.UpdatedAt,
		config.ID,
		config.OwnerID,
	)

	if err != nil {
		return fmt.Errorf("update configuration: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("configuration %s: %w", config.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a configuration
func (r *PostgresConfigurationRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Configurations)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("configuration %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByProduct lists configurations for a product, newest first
func (r *PostgresConfigurationRepository) ListByProduct(ctx context.Context, productID, ownerID string) ([]catalog.Configuration, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE product_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`, configColumns, r.tables.Configurations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, productID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	defer rows.Close()

	var configs []catalog.Configuration
	for rows.Next() {
		config, err := scanConfiguration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan configuration: %w", err)
		}
		configs = append(configs, *config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configurations: %w", err)
	}

	return configs, nil
}

// DeleteAllByProduct deletes every configuration of a product
func (r *PostgresConfigurationRepository) DeleteAllByProduct(ctx context.Context, productID, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE product_id = $1 AND user_id = $2
	`, r.tables.Configurations)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, productID, ownerID); err != nil {
		return fmt.Errorf("delete configurations for product %s: %w", productID, err)
	}

	return nil
}

// GetByShareToken resolves a public share token to the configuration and its
// joined product. Gated on is_public server-side; the owner filter is
// deliberately absent because the token itself is the capability.
func (r *PostgresConfigurationRepository) GetByShareToken(ctx context.Context, token string) (*catalog.SharedConfiguration, error) {
	query := fmt.Sprintf(`
		SELECT
			c.id, c.product_id, c.name, c.variant_name, c.transform, c.materials, c.lighting,
			c.share_token, c.is_public, c.user_id, c.created_at, c.updated_at,
			p.id, p.folder_id, p.name, p.description, p.glb_file_path, p.thumbnail_url, p.user_id, p.created_at, p.updated_at
		FROM %s c
		LEFT JOIN %s p ON p.id = c.product_id
		WHERE c.share_token = $1 AND c.is_public = TRUE
	`, r.tables.Configurations, r.tables.Products)

	var (
		config  catalog.Configuration
		product catalog.Product
		// LEFT JOIN: every product column may be NULL
		pID, pName, pAssetPath, pOwnerID *string
		pFolderID, pDescription, pThumb  *string
		pCreatedAt, pUpdatedAt           *time.Time
	)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, token).Scan(
		&config.ID,
		&config.ProductID,
		&config.Name,
		&config.VariantName,
		&config.Transform,
		&config.Materials,
		&config.Lighting,
		&config.ShareToken,
		&config.IsPublic,
		&config.OwnerID,
		&config.CreatedAt,
		&config.UpdatedAt,
		&pID,
		&pFolderID,
		&pName,
		&pDescription,
		&pAssetPath,
		&pThumb,
		&pOwnerID,
		&pCreatedAt,
		&pUpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("share token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve share token: %w", err)
	}

	shared := &catalog.SharedConfiguration{Configuration: config}

	// Product deleted out from under the configuration leaves a dangling
	// reference; the viewer shows the configuration without a model card.
	if pID != nil {
		product.ID = *pID
		product.FolderID = pFolderID
		product.Name = *pName
		product.Description = pDescription
		product.AssetPath = *pAssetPath
		product.ThumbnailURL = pThumb
		product.OwnerID = *pOwnerID
		if pCreatedAt != nil {
			product.CreatedAt = *pCreatedAt
		}
		if pUpdatedAt != nil {
			product.UpdatedAt = *pUpdatedAt
		}
		shared.Product = &product
	}

	return shared, nil
}

func scanConfiguration(row rowScanner) (*catalog.Configuration, error) {
	var config catalog.Configuration
	err := row.Scan(
		&config.ID,
		&config.ProductID,
		&config.Name,
		&config.VariantName,
		&config.Transform,
		&config.Materials,
		&config.Lighting,
		&config.ShareToken,
		&config.IsPublic,
		&config.OwnerID,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &config, nil
}
