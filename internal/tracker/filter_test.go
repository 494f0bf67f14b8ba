package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fintrack/internal/model"
)

func TestSearchExpenses(t *testing.T) {
	records := []*model.Expense{
		{Description: "Morning Coffee", Category: "Food & Dining"},
		{Description: "Uber ride", Category: "Transportation"},
		{Description: "Desk lamp", Category: "Shopping"},
	}

	t.Run("empty query keeps everything", func(t *testing.T) {
		assert.Len(t, SearchExpenses(records, ""), 3)
	})

	t.Run("matches description case-insensitively", func(t *testing.T) {
		got := SearchExpenses(records, "COFFEE")
		assert.Len(t, got, 1)
		assert.Equal(t, "Morning Coffee", got[0].Description)
	})

	t.Run("matches category too", func(t *testing.T) {
		got := SearchExpenses(records, "transport")
		assert.Len(t, got, 1)
		assert.Equal(t, "Uber ride", got[0].Description)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, SearchExpenses(records, "yacht"))
	})
}

func TestSearchIncomes(t *testing.T) {
	records := []*model.Income{
		{Description: "May salary", Category: "Salary"},
		{Description: "Stock dividend", Category: "Investments"},
	}

	got := SearchIncomes(records, "salary")
	assert.Len(t, got, 1)
	assert.Equal(t, "May salary", got[0].Description)
	assert.Len(t, SearchIncomes(records, ""), 2)
}
