package cart

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemNotFound = errors.New("cart item not found")

type Repository interface {
	Items(ctx context.Context, userID string) ([]Item, error)
	AddItem(ctx context.Context, userID string, it Item) error
	SetQuantity(ctx context.Context, userID string, productID int64, qty int) error
	RemoveItem(ctx context.Context, userID string, productID int64) error
	Clear(ctx context.Context, userID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Items(ctx context.Context, userID string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT product_id, quantity, name, COALESCE(price::text,''), image
		FROM cart_items WHERE user_id=$1
		ORDER BY added_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Name, &it.Price, &it.Image); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// AddItem upserts one line per (user, product): an existing product adds
// quantities, a new product inserts a line.
func (r *PGRepo) AddItem(ctx context.Context, userID string, it Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity, name, price, image, added_at)
		VALUES ($1,$2,$3,$4,NULLIF($5,'')::numeric,$6,NOW())
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
		    name  = COALESCE(NULLIF(EXCLUDED.name,''), cart_items.name),
		    price = COALESCE(EXCLUDED.price, cart_items.price),
		    image = COALESCE(NULLIF(EXCLUDED.image,''), cart_items.image)
	`, userID, it.ProductID, it.Quantity, it.Name, it.Price, it.Image)
	return err
}

func (r *PGRepo) SetQuantity(ctx context.Context, userID string, productID int64, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items SET quantity=$3
		WHERE user_id=$1 AND product_id=$2
	`, userID, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PGRepo) RemoveItem(ctx context.Context, userID string, productID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2
	`, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PGRepo) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}
