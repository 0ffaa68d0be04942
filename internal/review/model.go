package review

import "time"

// Review is a course review. Rating is always within 1..5; HelpfulCount is
// the aggregate backed by per-session helpful votes.
type Review struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	Category     string    `json:"category"`
	TargetItem   string    `json:"target_item"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	Verified     bool      `json:"verified"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
	Reply        string    `json:"reply,omitempty"`
}
