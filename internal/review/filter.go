package review

import (
	"sort"
	"strings"
)

const (
	SortNew     = "new"
	SortHelpful = "helpful"
	SortHigh    = "high"
	SortLow     = "low"
)

// Filter is the client-side view spec over the full review list. Zero values
// ("", 0, false) mean "all".
type Filter struct {
	Query        string `form:"query"`
	Category     string `form:"category"`
	Sort         string `form:"sort"`
	StarRating   int    `form:"star"`
	VerifiedOnly bool   `form:"verified"`
}

// Apply produces a filtered, sorted copy; the input slice is not mutated.
func Apply(reviews []Review, f Filter) []Review {
	out := make([]Review, 0, len(reviews))
	q := strings.ToLower(strings.TrimSpace(f.Query))
	for _, r := range reviews {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Text), q) &&
			!strings.Contains(strings.ToLower(r.TargetItem), q) {
			continue
		}
		if f.Category != "" && f.Category != "all" && r.Category != f.Category {
			continue
		}
		if f.StarRating != 0 && r.Rating != f.StarRating {
			continue
		}
		if f.VerifiedOnly && !r.Verified {
			continue
		}
		out = append(out, r)
	}

	newer := func(a, b Review) bool { return a.CreatedAt.After(b.CreatedAt) }
	switch f.Sort {
	case SortHelpful:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].HelpfulCount != out[j].HelpfulCount {
				return out[i].HelpfulCount > out[j].HelpfulCount
			}
			return newer(out[i], out[j])
		})
	case SortHigh:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Rating != out[j].Rating {
				return out[i].Rating > out[j].Rating
			}
			return newer(out[i], out[j])
		})
	case SortLow:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Rating != out[j].Rating {
				return out[i].Rating < out[j].Rating
			}
			return newer(out[i], out[j])
		})
	default: // SortNew
		sort.SliceStable(out, func(i, j int) bool { return newer(out[i], out[j]) })
	}
	return out
}
