package repository

import (
	"context"
	"fmt"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindByCode(ctx context.Context, code string) (*entity.Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
	// UpsertByCode inserts the product or, if the code already exists,
	// refreshes the mutable fields. Used by Excel import.
	UpsertByCode(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, user_id, category_id, code, name, description,
	       price, stock, photo, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID,
		&product.UserID,
		&product.CategoryID,
		&product.Code,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.Photo,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, user_id, category_id, code, name, description,
		                     price, stock, photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.UserID,
		product.CategoryID,
		product.Code,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Photo,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("code", product.Code),
		)
		return fmt.Errorf("create product %s: %w", product.Code, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return product, nil
}

func (r *productRepository) FindByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find product by code %s: %w", code, err)
	}

	return product, nil
}

func (r *productRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all products limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate products rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting products", zap.Error(err))
		return 0, fmt.Errorf("count all products: %w", err)
	}

	return count, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, code = $3, name = $4, description = $5,
		    price = $6, stock = $7, photo = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.CategoryID,
		product.Code,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Photo,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}

	return nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	query := `UPDATE products SET stock = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, stock)
	if err != nil {
		r.log.Error("Failed to update stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("update stock of product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	return nil
}

func (r *productRepository) UpsertByCode(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, user_id, category_id, code, name, description,
		                     price, stock, photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    price = EXCLUDED.price,
		    stock = EXCLUDED.stock,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.UserID,
		product.CategoryID,
		product.Code,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Photo,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert product",
			zap.Error(err),
			zap.String("code", product.Code),
		)
		return fmt.Errorf("upsert product %s: %w", product.Code, err)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	return nil
}
