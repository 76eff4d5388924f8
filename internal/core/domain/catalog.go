package domain

import (
	"sort"
	"strings"
)

// MatchCourse reports whether the course matches a free-text query by
// case-insensitive containment on title or description. An empty query
// matches everything.
func MatchCourse(c *Course, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Description), q)
}

// FilterCourses returns the courses matching the query and, when category is
// non-empty, the exact category. Input order is preserved.
func FilterCourses(courses []*Course, query, category string) []*Course {
	out := make([]*Course, 0, len(courses))
	for _, c := range courses {
		if !MatchCourse(c, query) {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SortByNewest orders courses by creation time, newest first. Ties break on
// id so the order is deterministic.
func SortByNewest(courses []*Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].ID < courses[j].ID
		}
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
}

// Featured returns the first n courses, or all of them when n is zero,
// negative, or larger than the list.
func Featured(courses []*Course, n int) []*Course {
	if n <= 0 || n > len(courses) {
		return courses
	}
	return courses[:n]
}
