package guestcart

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, it Item) error {
	if it.ProductID == "" {
		return fmt.Errorf("%w: product id is empty", common.ErrorValidation)
	}
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.AddedAt.IsZero() {
		it.AddedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO guest_cart_items (id, product_id, name, price, quantity, selected_size, selected_color, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id, selected_size, selected_color)
		DO UPDATE SET quantity = quantity + excluded.quantity,
		              name = CASE WHEN excluded.name <> '' THEN excluded.name ELSE name END,
		              price = CASE WHEN excluded.price <> '0' THEN excluded.price ELSE price END
	`, it.ID, it.ProductID, it.Name, it.Price.String(), it.Quantity, it.SelectedSize, it.SelectedColor, it.AddedAt)
	if err != nil {
		return fmt.Errorf("add guest cart item %s: %w", it.ProductID, err)
	}
	return nil
}

func (r *SQLiteRepository) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE guest_cart_items SET quantity = ? WHERE product_id = ?`, quantity, productID)
	if err != nil {
		return fmt.Errorf("update guest cart item %s: %w", productID, err)
	}
	return requireAffected(res, productID)
}

func (r *SQLiteRepository) Remove(ctx context.Context, productID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guest_cart_items WHERE product_id = ?`, productID)
	if err != nil {
		return fmt.Errorf("remove guest cart item %s: %w", productID, err)
	}
	return requireAffected(res, productID)
}

func (r *SQLiteRepository) RemoveLine(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM guest_cart_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove guest cart line %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, price, quantity, selected_size, selected_color, added_at
		FROM guest_cart_items
		ORDER BY added_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list guest cart: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &price, &it.Quantity, &it.SelectedSize, &it.SelectedColor, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan guest cart row: %w", err)
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("guest cart price %q: %w", price, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate guest cart rows: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM guest_cart_items`); err != nil {
		return fmt.Errorf("clear guest cart: %w", err)
	}
	return nil
}

type rowsAffected interface {
	RowsAffected() (int64, error)
}

func requireAffected(res rowsAffected, productID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: product %s is not in the cart", common.ErrorNotFound, productID)
	}
	return nil
}
