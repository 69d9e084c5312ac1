package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
	catalogRepo "showroom/internal/domain/repositories/catalog"
)

// PostgresProductRepository implements the ProductRepository interface
type PostgresProductRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProductRepository creates a new product repository
func NewProductRepository(config *RepositoryConfig) catalogRepo.ProductRepository {
	return &PostgresProductRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const productColumns = "id, folder_id, name, description, glb_file_path, thumbnail_url, user_id, created_at, updated_at"

// Create creates a new product record
func (r *PostgresProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, folder_id, name, description, glb_file_path, thumbnail_url, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, r.tables.Products)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		product.ID,
		product.FolderID,
		product.Name,
		product.Description,
		product.AssetPath,
		product.ThumbnailURL,
		product.OwnerID,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder for product '%s': %w", product.Name, domain.ErrNotFound)
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by ID
func (r *PostgresProductRepository) GetByID(ctx context.Context, id, ownerID string) (*catalog.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, productColumns, r.tables.Products)

	executor := GetExecutor(ctx, r.pool)
	product, err := scanProduct(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

// Update updates a product
func (r *PostgresProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, name = $2, description = $3, thumbnail_url = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`, r.tables.Products)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		product.FolderID,
		product.Name,
		product.Description,
		product.ThumbnailURL,
		product.UpdatedAt,
		product.ID,
		product.OwnerID,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("target folder for product %s: %w", product.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a product record
func (r *PostgresProductRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Products)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists products in a folder, newest first
func (r *PostgresProductRepository) ListByFolder(ctx context.Context, folderID *string, ownerID string) ([]catalog.Product, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND folder_id IS NULL
			ORDER BY created_at DESC
		`, productColumns, r.tables.Products)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND folder_id = $2
			ORDER BY created_at DESC
		`, productColumns, r.tables.Products)
		args = append(args, ownerID, *folderID)
	}

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var product catalog.Product
	err := row.Scan(
		&product.ID,
		&product.FolderID,
		&product.Name,
		&product.Description,
		&product.AssetPath,
		&product.ThumbnailURL,
		&product.OwnerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
