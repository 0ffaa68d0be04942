package course

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("course not found")

type Query struct {
	Q        string
	Category string
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, c *Course) error
	GetByID(ctx context.Context, id int64) (*Course, error)
	GetBySlug(ctx context.Context, slug string) (*Course, error)
	List(ctx context.Context, q Query) ([]Course, error)
	Update(ctx context.Context, c *Course, updatePrice bool) error
	Delete(ctx context.Context, id int64) (bool, error)

	Lessons(ctx context.Context, courseID int64) ([]Lesson, error)
	UpsertLesson(ctx context.Context, l *Lesson) error
	DeleteLesson(ctx context.Context, id int64) (bool, error)

	SaveProgress(ctx context.Context, userID string, lessonID int64, completed bool) error
	CourseProgress(ctx context.Context, userID string, courseID int64) (float64, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const courseCols = `id, title, slug, description, category, price::text, image, published, created_at, updated_at`

func scanCourse(row interface{ Scan(...any) error }) (*Course, error) {
	var c Course
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.Category, &c.Price, &c.Image, &c.Published, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepo) Create(ctx context.Context, c *Course) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO courses (title, slug, description, category, price, image, published, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
		RETURNING id
	`, c.Title, c.Slug, c.Description, c.Category, c.Price, c.Image, c.Published).Scan(&c.ID)
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseCols+` FROM courses WHERE id=$1`, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (*Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseCols+` FROM courses WHERE slug=$1`, slug))
	if err != nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, `
		SELECT `+courseCols+`
		FROM courses
		WHERE published = TRUE
		  AND ($1 = '' OR title ILIKE '%'||$1||'%' OR description ILIKE '%'||$1||'%')
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, search, q.Category, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, c *Course, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePrice {
		_, err := r.db.Exec(ctx, `
			UPDATE courses
			SET title = COALESCE(NULLIF($2,''), title),
			    description = COALESCE(NULLIF($3,''), description),
			    category = COALESCE(NULLIF($4,''), category),
			    price = $5,
			    image = COALESCE(NULLIF($6,''), image),
			    published = $7,
			    updated_at = NOW()
			WHERE id = $1
		`, c.ID, c.Title, c.Description, c.Category, c.Price, c.Image, c.Published)
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = COALESCE(NULLIF($2,''), title),
		    description = COALESCE(NULLIF($3,''), description),
		    category = COALESCE(NULLIF($4,''), category),
		    image = COALESCE(NULLIF($5,''), image),
		    published = $6,
		    updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Title, c.Description, c.Category, c.Image, c.Published)
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Lessons(ctx context.Context, courseID int64) ([]Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, position, duration_min
		FROM lessons WHERE course_id=$1
		ORDER BY position ASC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Lesson
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Position, &l.DurationMin); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpsertLesson(ctx context.Context, l *Lesson) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if l.ID == 0 {
		return r.db.QueryRow(ctx, `
			INSERT INTO lessons (course_id, title, position, duration_min)
			VALUES ($1,$2,$3,$4) RETURNING id
		`, l.CourseID, l.Title, l.Position, l.DurationMin).Scan(&l.ID)
	}
	_, err := r.db.Exec(ctx, `
		UPDATE lessons SET title=$2, position=$3, duration_min=$4 WHERE id=$1
	`, l.ID, l.Title, l.Position, l.DurationMin)
	return err
}

func (r *PGRepo) DeleteLesson(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) SaveProgress(ctx context.Context, userID string, lessonID int64, completed bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO lesson_progress (user_id, lesson_id, completed, updated_at)
		VALUES ($1,$2,$3,NOW())
		ON CONFLICT (user_id, lesson_id) DO UPDATE
		SET completed = EXCLUDED.completed, updated_at = NOW()
	`, userID, lessonID, completed)
	return err
}

// CourseProgress is the percentage of the course's lessons the user has
// completed; a course with no lessons is 0%.
func (r *PGRepo) CourseProgress(ctx context.Context, userID string, courseID int64) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total, done int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(l.id)::int,
		       COUNT(p.lesson_id) FILTER (WHERE p.completed)::int
		FROM lessons l
		LEFT JOIN lesson_progress p ON p.lesson_id = l.id AND p.user_id = $1
		WHERE l.course_id = $2
	`, userID, courseID).Scan(&total, &done)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return float64(done) / float64(total) * 100, nil
}
