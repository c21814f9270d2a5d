package products

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context) ([]ProductDetail, error)
	Get(ctx context.Context, id uuid.UUID) (ProductDetail, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	SkuExists(ctx context.Context, sku string, exclude uuid.UUID) (bool, error)
	Create(ctx context.Context, product Product) error
	Update(ctx context.Context, id uuid.UUID, product Product) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const detailQuery = `
	SELECT p.id, p.name, p.sku, p.category_id, p.supplier_id,
	       p.quantity, p.reorder_level, p.unit_price, p.created_at,
	       COALESCE(c.name, '') AS category_name,
	       s.name AS supplier_name
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN suppliers s ON p.supplier_id = s.id`

func (r *repository) List(ctx context.Context) ([]ProductDetail, error) {
	rows, err := r.db.Query(ctx, detailQuery+` ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ProductDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (ProductDetail, error) {
	rows, err := r.db.Query(ctx, detailQuery+` WHERE p.id = $1`, id)
	if err != nil {
		return ProductDetail{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return ProductDetail{}, err
		}
		return ProductDetail{}, httpx.ErrNotFound
	}
	return scanDetail(rows)
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, sku, category_id, supplier_id, quantity, reorder_level, unit_price, created_at
		FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Sku, &p.CategoryID, &p.SupplierID,
			&p.Quantity, &p.ReorderLevel, &p.UnitPrice, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *repository) SkuExists(ctx context.Context, sku string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE sku = $1 AND id <> $2)`, sku, exclude).
		Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, product Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, sku, category_id, supplier_id, quantity, reorder_level, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		product.ID, product.Name, product.Sku, product.CategoryID, product.SupplierID,
		product.Quantity, product.ReorderLevel, product.UnitPrice, product.CreatedAt)
	return err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, product Product) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $1, sku = $2, category_id = $3, supplier_id = $4,
		    quantity = $5, reorder_level = $6, unit_price = $7
		WHERE id = $8`,
		product.Name, product.Sku, product.CategoryID, product.SupplierID,
		product.Quantity, product.ReorderLevel, product.UnitPrice, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanDetail(rows pgx.Rows) (ProductDetail, error) {
	var d ProductDetail
	err := rows.Scan(&d.ID, &d.Name, &d.Sku, &d.CategoryID, &d.SupplierID,
		&d.Quantity, &d.ReorderLevel, &d.UnitPrice, &d.CreatedAt,
		&d.CategoryName, &d.SupplierName)
	return d, err
}
