// Package rank provides the ordering and windowing primitives behind every
// "best / newest / leaders" listing.
package rank

import (
	"log/slog"
	"sort"
	"time"
)

// ByScore orders items descending by score. Each item's score is looked up
// exactly once before sorting; an item whose lookup fails is ranked with
// score 0 and the failure is logged, so one broken record cannot take a whole
// listing down. The sort is stable: equal scores keep their incoming order.
func ByScore[T any](items []T, scoreOf func(T) (float64, error), logger *slog.Logger) []T {
	if logger == nil {
		logger = slog.Default()
	}

	scores := make([]float64, len(items))
	for i, item := range items {
		s, err := scoreOf(item)
		if err != nil {
			logger.Warn("score lookup failed, ranking item as zero", "index", i, "error", err)
			s = 0
		}
		scores[i] = s
	}

	out := make([]T, len(items))
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// ByRecency orders items newest first. An item whose timestamp is unavailable
// compares equal to everything, so the stable sort leaves it where it stood
// relative to its neighbors rather than pushing it to either end.
func ByRecency[T any](items []T, timestampOf func(T) (time.Time, error)) []T {
	stamps := make([]time.Time, len(items))
	known := make([]bool, len(items))
	for i, item := range items {
		ts, err := timestampOf(item)
		if err == nil {
			stamps[i] = ts
			known[i] = true
		}
	}

	out := make([]T, len(items))
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if !known[i] || !known[j] {
			return false
		}
		return stamps[i].After(stamps[j])
	})
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}
