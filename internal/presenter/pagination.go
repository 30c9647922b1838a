package presenter

import "github.com/openvta/van-terminal-api/internal/models"

// PageSize is the fixed assignment-table page size.
const PageSize = 8

// TotalPages returns ceil(count / PageSize).
func TotalPages(count int) int {
	return (count + PageSize - 1) / PageSize
}

// ClampPage normalises a 1-based page index into [1, TotalPages(count)]. An
// empty list still has page 1, so callers always hold a valid index.
func ClampPage(page, count int) int {
	total := TotalPages(count)
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Window returns the 1-based page slice of the assignment list.
func Window(assignments []models.Assignment, page int) []models.Assignment {
	page = ClampPage(page, len(assignments))
	start := (page - 1) * PageSize
	if start >= len(assignments) {
		return []models.Assignment{}
	}
	end := start + PageSize
	if end > len(assignments) {
		end = len(assignments)
	}
	return assignments[start:end]
}
