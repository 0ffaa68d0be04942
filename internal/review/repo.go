package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("review not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, limit, offset int) ([]Review, error)
	AdjustHelpful(ctx context.Context, id string, delta int) (int, error)
	SetReply(ctx context.Context, id, reply string) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, rv *Review) error {
	if rv.Rating < 1 || rv.Rating > 5 {
		return ErrInvalidRating
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (id, author, category, target_item, rating, text, verified, helpful_count, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0,NOW())
	`, rv.ID, rv.Author, rv.Category, rv.TargetItem, rv.Rating, rv.Text, rv.Verified)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rv Review
	err := r.db.QueryRow(ctx, `
		SELECT id, author, category, target_item, rating, text, verified, helpful_count, created_at, COALESCE(reply,'')
		FROM reviews WHERE id=$1
	`, id).Scan(&rv.ID, &rv.Author, &rv.Category, &rv.TargetItem, &rv.Rating, &rv.Text, &rv.Verified, &rv.HelpfulCount, &rv.CreatedAt, &rv.Reply)
	if err != nil {
		return nil, ErrNotFound
	}
	return &rv, nil
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, author, category, target_item, rating, text, verified, helpful_count, created_at, COALESCE(reply,'')
		FROM reviews
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.Author, &rv.Category, &rv.TargetItem, &rv.Rating, &rv.Text, &rv.Verified, &rv.HelpfulCount, &rv.CreatedAt, &rv.Reply); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// AdjustHelpful applies the vote delta and returns the new count, floored at
// zero even if deltas ever drift.
func (r *PGRepo) AdjustHelpful(ctx context.Context, id string, delta int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var count int
	err := r.db.QueryRow(ctx, `
		UPDATE reviews
		SET helpful_count = GREATEST(helpful_count + $2, 0)
		WHERE id=$1
		RETURNING helpful_count
	`, id, delta).Scan(&count)
	if err != nil {
		return 0, ErrNotFound
	}
	return count, nil
}

func (r *PGRepo) SetReply(ctx context.Context, id, reply string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE reviews SET reply=$2 WHERE id=$1`, id, reply)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
