package cms

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("cms: not found")

type Repository interface {
	GetPage(ctx context.Context, slug string) (*Page, error)
	UpsertPage(ctx context.Context, p *Page) error
	DeletePage(ctx context.Context, slug string) (bool, error)

	ListPosts(ctx context.Context, limit, offset int) ([]Post, error)
	GetPost(ctx context.Context, slug string) (*Post, error)
	UpsertPost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetPage(ctx context.Context, slug string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Page
	err := r.db.QueryRow(ctx, `
		SELECT slug, title, body, published, updated_at
		FROM cms_pages WHERE slug=$1 AND published=TRUE
	`, slug).Scan(&p.Slug, &p.Title, &p.Body, &p.Published, &p.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *PGRepo) UpsertPage(ctx context.Context, p *Page) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO cms_pages (slug, title, body, published, updated_at)
		VALUES ($1,$2,$3,$4,NOW())
		ON CONFLICT (slug) DO UPDATE
		SET title=EXCLUDED.title, body=EXCLUDED.body, published=EXCLUDED.published, updated_at=NOW()
	`, p.Slug, p.Title, p.Body, p.Published)
	return err
}

func (r *PGRepo) DeletePage(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM cms_pages WHERE slug=$1`, slug)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGRepo) ListPosts(ctx context.Context, limit, offset int) ([]Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, slug, title, COALESCE(excerpt,''), body, tags, published_at
		FROM blog_posts
		WHERE published_at <= NOW()
		ORDER BY published_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.Tags, &p.PublishedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetPost(ctx context.Context, slug string) (*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Post
	err := r.db.QueryRow(ctx, `
		SELECT id, slug, title, COALESCE(excerpt,''), body, tags, published_at
		FROM blog_posts WHERE slug=$1
	`, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.Tags, &p.PublishedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *PGRepo) UpsertPost(ctx context.Context, p *Post) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO blog_posts (id, slug, title, excerpt, body, tags, published_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE
		SET slug=EXCLUDED.slug, title=EXCLUDED.title, excerpt=EXCLUDED.excerpt,
		    body=EXCLUDED.body, tags=EXCLUDED.tags, published_at=EXCLUDED.published_at
	`, p.ID, p.Slug, p.Title, p.Excerpt, p.Body, p.Tags, p.PublishedAt)
	return err
}

func (r *PGRepo) DeletePost(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
