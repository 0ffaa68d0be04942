package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type StatsResponse struct {
	RangeDays         int             `json:"range_days"`
	Revenue           string          `json:"revenue"`
	Orders            int             `json:"orders"`
	NewStudents       int             `json:"new_students"`
	AvgProgress       float64         `json:"avg_progress"`
	RevenueChangePct  float64         `json:"revenue_change_pct"`
	OrdersChangePct   float64         `json:"orders_change_pct"`
	Labels            []string        `json:"labels"`
	RevenueSeries     []string        `json:"revenue_series"`
	OrderSeries       []int           `json:"order_series"`
	CategoryBreakdown []CategorySlice `json:"category_breakdown"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

const dayLabel = "2006-01-02"

// Stats aggregates the trailing rangeDays window, bucketed per day with
// zero-filled gaps, plus the percentage change against the immediately
// preceding window of equal length.
func (s *Service) Stats(ctx context.Context, rangeDays int) (*StatsResponse, error) {
	if rangeDays <= 0 {
		rangeDays = 30
	}
	if rangeDays > 365 {
		rangeDays = 365
	}

	now := s.now().UTC()
	to := now.Truncate(24 * time.Hour).Add(24 * time.Hour) // end of today
	from := to.AddDate(0, 0, -rangeDays)
	prevFrom := from.AddDate(0, 0, -rangeDays)

	cur, err := s.repo.WindowTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prev, err := s.repo.WindowTotals(ctx, prevFrom, from)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailyOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.NewStudents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	progress, err := s.repo.AvgLessonProgress(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.repo.CategoryRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []CategorySlice{}
	}

	byDay := make(map[string]DayRow, len(daily))
	for _, d := range daily {
		byDay[d.Day.UTC().Format(dayLabel)] = d
	}
	labels := make([]string, 0, rangeDays)
	revSeries := make([]string, 0, rangeDays)
	ordSeries := make([]int, 0, rangeDays)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		label := day.Format(dayLabel)
		labels = append(labels, label)
		if d, ok := byDay[label]; ok {
			revSeries = append(revSeries, d.Revenue)
			ordSeries = append(ordSeries, d.Orders)
		} else {
			revSeries = append(revSeries, "0")
			ordSeries = append(ordSeries, 0)
		}
	}

	return &StatsResponse{
		RangeDays:         rangeDays,
		Revenue:           cur.Revenue,
		Orders:            cur.Orders,
		NewStudents:       students,
		AvgProgress:       progress,
		RevenueChangePct:  revenueChangePct(cur.Revenue, prev.Revenue),
		OrdersChangePct:   changePct(float64(cur.Orders), float64(prev.Orders)),
		Labels:            labels,
		RevenueSeries:     revSeries,
		OrderSeries:       ordSeries,
		CategoryBreakdown: cats,
	}, nil
}

// changePct is (cur-prev)/prev*100, defined as 0 when prev is 0.
func changePct(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

func revenueChangePct(cur, prev string) float64 {
	c, err := decimal.NewFromString(cur)
	if err != nil {
		return 0
	}
	p, err := decimal.NewFromString(prev)
	if err != nil || p.IsZero() {
		return 0
	}
	pct, _ := c.Sub(p).Div(p).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
