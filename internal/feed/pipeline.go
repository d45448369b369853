package feed

import (
	"sort"
	"strings"

	"portfolio.dev/internal/models"
)

// DefaultPageSize is the number of cards per page
const DefaultPageSize = 6

// DefaultExcludeMarker marks the personal site repository
const DefaultExcludeMarker = ".github.io"

// WorkingSet drops repositories whose name contains marker and orders the
// rest by star count, highest first. Equal star counts keep their input
// order. The input slice is not modified.
func WorkingSet(repos []models.Repository, marker string) []models.Repository {
	set := make([]models.Repository, 0, len(repos))
	for _, r := range repos {
		if marker != "" && strings.Contains(r.Name, marker) {
			continue
		}
		set = append(set, r)
	}

	sort.SliceStable(set, func(i, j int) bool {
		return set[i].Stars > set[j].Stars
	})
	return set
}

// TotalPages returns ceil(total / size)
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageBounds returns the half-open index range [start, end) of page n
func PageBounds(total, size, n int) (int, int) {
	if n < 1 || size <= 0 {
		return 0, 0
	}
	start := (n - 1) * size
	if start >= total {
		return total, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

// Paginate returns the repositories on page n
func Paginate(repos []models.Repository, size, n int) []models.Repository {
	start, end := PageBounds(len(repos), size, n)
	return repos[start:end]
}
