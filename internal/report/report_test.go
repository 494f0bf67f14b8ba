package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/model"
)

var reportNow = time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)

func TestPeriodWindow(t *testing.T) {
	t.Run("monthly covers the current calendar month", func(t *testing.T) {
		start, end := PeriodMonthly.Window(reportNow)
		assert.Equal(t, "2025-05-01", start)
		assert.Equal(t, "2025-05-31", end)
	})

	t.Run("quarterly in May covers April through June", func(t *testing.T) {
		start, end := PeriodQuarterly.Window(reportNow)
		assert.Equal(t, "2025-04-01", start)
		assert.Equal(t, "2025-06-30", end)
	})

	t.Run("yearly covers the current calendar year", func(t *testing.T) {
		start, end := PeriodYearly.Window(reportNow)
		assert.Equal(t, "2025-01-01", start)
		assert.Equal(t, "2025-12-31", end)
	})

	t.Run("quarter boundaries", func(t *testing.T) {
		jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
		start, end := PeriodQuarterly.Window(jan)
		assert.Equal(t, "2025-01-01", start)
		assert.Equal(t, "2025-03-31", end)

		dec := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
		start, end = PeriodQuarterly.Window(dec)
		assert.Equal(t, "2025-10-01", start)
		assert.Equal(t, "2025-12-31", end)
	})
}

func TestBuildSummary(t *testing.T) {
	expenses := []*model.Expense{
		{Amount: 45.99, Description: "Groceries", Category: "Food & Dining", Date: "2025-05-02"},
		{Amount: 89.99, Description: "Electric bill", Category: "Bills & Utilities", Date: "2025-05-10"},
	}
	incomes := []*model.Income{
		{Amount: 1000, Description: "Salary", Category: "Salary", Date: "2025-05-01"},
	}

	r := Build(reportNow, expenses, incomes, PeriodMonthly)

	assert.InDelta(t, 135.98, r.TotalExpenses, 0.001)
	assert.InDelta(t, 1000, r.TotalIncome, 0.001)
	assert.InDelta(t, 864.02, r.NetSavings, 0.001)
	assert.InDelta(t, 86.402, r.SavingsRate, 0.001)
	assert.InDelta(t, 135.98/30, r.AvgDailySpending, 0.001)
	assert.Equal(t, 3, r.TransactionCount)

	require.Len(t, r.IncomeBreakdown, 1)
	assert.Equal(t, "Salary", r.IncomeBreakdown[0].Category)
	assert.Equal(t, 100, r.IncomeBreakdown[0].Percent)
}

func TestBuildExcludesRecordsOutsideWindow(t *testing.T) {
	expenses := []*model.Expense{
		{Amount: 10, Description: "In window", Category: "Other", Date: "2025-05-02"},
		{Amount: 999, Description: "Last month", Category: "Other", Date: "2025-04-28"},
		{Amount: 999, Description: "Next month", Category: "Other", Date: "2025-06-01"},
	}

	r := Build(reportNow, expenses, nil, PeriodMonthly)
	assert.InDelta(t, 10, r.TotalExpenses, 0.001)
	require.Len(t, r.TopExpenses, 1)
	assert.Equal(t, "In window", r.TopExpenses[0].Description)
}

func TestBuildZeroIncomeSavingsRate(t *testing.T) {
	expenses := []*model.Expense{
		{Amount: 50, Description: "Lunch", Category: "Food & Dining", Date: "2025-05-02"},
	}

	r := Build(reportNow, expenses, nil, PeriodMonthly)
	assert.Zero(t, r.SavingsRate, "no income means a zero savings rate, not a division error")
	assert.InDelta(t, -50, r.NetSavings, 0.001)
}

func TestBuildTopFiveLimit(t *testing.T) {
	var expenses []*model.Expense
	for i := 1; i <= 8; i++ {
		expenses = append(expenses, &model.Expense{
			Amount:      float64(i * 10),
			Description: fmt.Sprintf("expense %d", i),
			Category:    "Other",
			Date:        "2025-05-05",
		})
	}

	r := Build(reportNow, expenses, nil, PeriodMonthly)
	require.Len(t, r.TopExpenses, 5)
	assert.InDelta(t, 80, r.TopExpenses[0].Amount, 0.001)
	assert.InDelta(t, 40, r.TopExpenses[4].Amount, 0.001)
}

func TestHighestCategory(t *testing.T) {
	expenses := []*model.Expense{
		{Amount: 10, Category: "Food & Dining", Date: "2025-05-02"},
		{Amount: 200, Category: "Travel", Date: "2025-05-03"},
	}

	r := Build(reportNow, expenses, nil, PeriodMonthly)
	assert.Equal(t, "Travel", r.HighestCategory())

	empty := Build(reportNow, nil, nil, PeriodMonthly)
	assert.Empty(t, empty.HighestCategory())
}

func TestInsight(t *testing.T) {
	t.Run("no activity", func(t *testing.T) {
		r := Build(reportNow, nil, nil, PeriodMonthly)
		assert.Contains(t, r.Insight(), "No financial activity")
	})

	t.Run("overspent", func(t *testing.T) {
		r := Build(reportNow, []*model.Expense{{Amount: 100, Category: "Other", Date: "2025-05-02"}},
			[]*model.Income{{Amount: 50, Date: "2025-05-02"}}, PeriodMonthly)
		assert.Contains(t, r.Insight(), "spent more than you earned")
	})

	t.Run("healthy savings", func(t *testing.T) {
		r := Build(reportNow, []*model.Expense{{Amount: 100, Category: "Other", Date: "2025-05-02"}},
			[]*model.Income{{Amount: 1000, Date: "2025-05-02"}}, PeriodMonthly)
		assert.Contains(t, r.Insight(), "Great job")
	})
}

func TestRender(t *testing.T) {
	expenses := []*model.Expense{
		{Amount: 45.99, Description: "Groceries", Category: "Food & Dining", Date: "2025-05-02"},
	}
	incomes := []*model.Income{
		{Amount: 1000, Description: "Salary", Category: "Salary", Date: "2025-05-01"},
	}

	out := Build(reportNow, expenses, incomes, PeriodMonthly).Render()

	assert.Contains(t, out, "FINANCIAL REPORT - MONTHLY")
	assert.Contains(t, out, "Period: 2025-05-01 to 2025-05-31")
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "EXPENSES BY CATEGORY")
	assert.Contains(t, out, "INCOME BY CATEGORY")
	assert.Contains(t, out, "TOP EXPENSES")
	assert.Contains(t, out, "TOP INCOME")
	assert.Contains(t, out, "INSIGHT")
	assert.Contains(t, out, "Highest spending category: Food & Dining")
	assert.Contains(t, out, "Groceries")
}

func TestRenderQuarterLabel(t *testing.T) {
	out := Build(reportNow, nil, nil, PeriodQuarterly).Render()
	assert.Contains(t, out, "Period: 2025-04-01 to 2025-06-30 (Q2)")
}
