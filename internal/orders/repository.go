package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroom/stockroom/internal/platform/db"
	"github.com/stockroom/stockroom/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id uuid.UUID) (Order, error)
	Create(ctx context.Context, order Order) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_number, order_date, type, supplier_id, customer_name, total_amount
		FROM orders ORDER BY order_date DESC, order_number DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.OrderDate, &o.Type, &o.SupplierID, &o.CustomerName, &o.TotalAmount); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.items(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, order_number, order_date, type, supplier_id, customer_name, total_amount
		FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.OrderNumber, &o.OrderDate, &o.Type, &o.SupplierID, &o.CustomerName, &o.TotalAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, httpx.ErrNotFound
		}
		return Order{}, err
	}
	o.Items, err = r.items(ctx, id)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *repository) items(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create inserts the order document and its lines in one transaction. One
// order is one document; the stock adjustments that precede this call are
// deliberately outside it.
func (r *repository) Create(ctx context.Context, order Order) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (id, order_number, order_date, type, supplier_id, customer_name, total_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.ID, order.OrderNumber, order.OrderDate, order.Type, order.SupplierID, order.CustomerName, order.TotalAmount)
		if err != nil {
			return err
		}
		for _, item := range order.Items {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
				VALUES ($1, $2, $3, $4, $5)`,
				item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var affected int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	return affected, err
}
