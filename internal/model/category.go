package model

import "strings"

// Fixed category sets. The UI offers a closed selector, so these are the only
// values this layer ever writes; rows inserted by other clients may carry
// other strings and aggregate as their own bucket.

var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Health & Fitness",
	"Travel",
	"Education",
	"Other",
}

var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Business",
	"Investments",
	"Rental",
	"Bonus",
	"Gift",
	"Other",
}

var ReminderCategories = []string{"loan", "bill", "medicine", "recharge"}

// categoryKeywords drives SuggestCategory. First match wins, in the order
// listed here.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Food & Dining", []string{"coffee", "restaurant", "food", "lunch", "dinner", "grocery"}},
	{"Transportation", []string{"gas", "uber", "taxi", "bus", "train", "fuel"}},
	{"Bills & Utilities", []string{"bill", "electric", "water", "internet", "rent"}},
	{"Entertainment", []string{"movie", "netflix", "game", "concert"}},
	{"Shopping", []string{"amazon", "clothes", "shopping"}},
	{"Health & Fitness", []string{"gym", "doctor", "pharmacy", "medicine"}},
}

// SuggestCategory guesses an expense category from its description by
// case-insensitive keyword matching. Falls back to Other.
func SuggestCategory(description string) string {
	desc := strings.ToLower(description)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(desc, kw) {
				return entry.category
			}
		}
	}
	return "Other"
}
