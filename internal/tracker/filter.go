package tracker

import (
	"strings"

	"fintrack/internal/model"
)

// FetchOptions narrows a fetch. The time filter becomes a server-side cutoff
// predicate; the search string is matched client-side against the rows that
// survived it. Time first, then text: a search can never resurrect records
// outside the time window.
type FetchOptions struct {
	TimeFilter model.TimeFilter
	Search     string
}

func matchesSearch(query, description, category string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(description), q) ||
		strings.Contains(strings.ToLower(category), q)
}

// SearchExpenses returns the expenses whose description or category contains
// the query, case-insensitively. An empty query keeps everything.
func SearchExpenses(records []*model.Expense, query string) []*model.Expense {
	if query == "" {
		return records
	}
	filtered := make([]*model.Expense, 0, len(records))
	for _, r := range records {
		if matchesSearch(query, r.Description, r.Category) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// SearchIncomes is SearchExpenses for income records.
func SearchIncomes(records []*model.Income, query string) []*model.Income {
	if query == "" {
		return records
	}
	filtered := make([]*model.Income, 0, len(records))
	for _, r := range records {
		if matchesSearch(query, r.Description, r.Category) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
