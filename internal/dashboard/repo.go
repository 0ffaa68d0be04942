// Package dashboard is the admin read model: KPIs, a daily revenue/order
// series and a category breakdown over a trailing window. Read-only.
package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DayRow is one day's worth of paid orders, as stored.
type DayRow struct {
	Day     time.Time
	Revenue string
	Orders  int
}

type Totals struct {
	Revenue string
	Orders  int
}

type CategorySlice struct {
	Category string `json:"category"`
	Revenue  string `json:"revenue"`
}

type Repository interface {
	DailyOrders(ctx context.Context, from, to time.Time) ([]DayRow, error)
	WindowTotals(ctx context.Context, from, to time.Time) (Totals, error)
	NewStudents(ctx context.Context, from, to time.Time) (int, error)
	AvgLessonProgress(ctx context.Context) (float64, error)
	CategoryRevenue(ctx context.Context, from, to time.Time) ([]CategorySlice, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// countedStatuses: only money that was actually collected shows up in stats.
const countedStatuses = `('paid','completed')`

func (r *PGRepo) DailyOrders(ctx context.Context, from, to time.Time) ([]DayRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT date_trunc('day', created_at) AS day,
		       COALESCE(SUM(total),0)::text,
		       COUNT(*)::int
		FROM orders
		WHERE status IN `+countedStatuses+` AND created_at >= $1 AND created_at < $2
		GROUP BY day ORDER BY day
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRow
	for rows.Next() {
		var d DayRow
		if err := rows.Scan(&d.Day, &d.Revenue, &d.Orders); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PGRepo) WindowTotals(ctx context.Context, from, to time.Time) (Totals, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var t Totals
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total),0)::text, COUNT(*)::int
		FROM orders
		WHERE status IN `+countedStatuses+` AND created_at >= $1 AND created_at < $2
	`, from, to).Scan(&t.Revenue, &t.Orders)
	return t, err
}

func (r *PGRepo) NewStudents(ctx context.Context, from, to time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)::int FROM users
		WHERE role='student' AND created_at >= $1 AND created_at < $2
	`, from, to).Scan(&n)
	return n, err
}

func (r *PGRepo) AvgLessonProgress(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var avg float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(CASE WHEN completed THEN 100.0 ELSE 0.0 END),0)
		FROM lesson_progress
	`).Scan(&avg)
	return avg, err
}

func (r *PGRepo) CategoryRevenue(ctx context.Context, from, to time.Time) ([]CategorySlice, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT c.category, COALESCE(SUM(oi.price * oi.quantity),0)::text
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN courses c ON c.id = oi.product_id
		WHERE o.status IN `+countedStatuses+` AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY c.category ORDER BY 2 DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategorySlice
	for rows.Next() {
		var s CategorySlice
		if err := rows.Scan(&s.Category, &s.Revenue); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
