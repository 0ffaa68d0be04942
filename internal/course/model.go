package course

import "time"

type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	// Price as string to avoid rounding errors (NUMERIC in Postgres)
	Price     string    `json:"price"`
	Image     string    `json:"image,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lesson struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"course_id"`
	Title       string `json:"title"`
	Position    int    `json:"position"`
	DurationMin int    `json:"duration_min"`
}

// ListResponse is the paginated catalog payload.
type ListResponse struct {
	Q      string   `json:"q,omitempty"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
	Items  []Course `json:"items"`
}
