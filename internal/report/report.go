// Package report builds period financial summaries over fetched records and
// renders them as plain text.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fintrack/internal/aggregate"
	"fintrack/internal/model"
)

// Period selects the reporting window, anchored at the current date.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// Window returns the inclusive date range the period covers relative to now.
// Monthly covers the current calendar month, quarterly the current calendar
// quarter, yearly the current calendar year.
func (p Period) Window(now time.Time) (start, end string) {
	year := now.Year()
	switch p {
	case PeriodQuarterly:
		first := time.Month(((int(now.Month())-1)/3)*3 + 1)
		s := time.Date(year, first, 1, 0, 0, 0, 0, time.UTC)
		e := s.AddDate(0, 3, -1)
		return s.Format(model.DateLayout), e.Format(model.DateLayout)
	case PeriodYearly:
		s := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		e := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return s.Format(model.DateLayout), e.Format(model.DateLayout)
	default:
		s := time.Date(year, now.Month(), 1, 0, 0, 0, 0, time.UTC)
		e := s.AddDate(0, 1, -1)
		return s.Format(model.DateLayout), e.Format(model.DateLayout)
	}
}

// Label is the human name of the period for the rendered heading.
func (p Period) Label() string {
	switch p {
	case PeriodQuarterly:
		return "Quarterly"
	case PeriodYearly:
		return "Yearly"
	default:
		return "Monthly"
	}
}

// Report is one computed financial summary.
type Report struct {
	Period      Period
	Start       string
	End         string
	GeneratedAt time.Time

	TotalExpenses float64
	TotalIncome   float64
	NetSavings    float64
	// SavingsRate is net savings as a percentage of income, zero when there
	// is no income in the window.
	SavingsRate float64
	// AvgDailySpending divides total expenses by a flat thirty days
	// regardless of period length.
	AvgDailySpending float64

	TransactionCount int

	TopExpenses     []*model.Expense
	TopIncomes      []*model.Income
	Breakdown       []aggregate.CategoryShare
	IncomeBreakdown []aggregate.CategoryShare
}

// Build computes the report for the period ending at now. Records outside the
// period window are excluded; dates compare lexically.
func Build(now time.Time, expenses []*model.Expense, incomes []*model.Income, period Period) *Report {
	start, end := period.Window(now)

	var inExpenses []*model.Expense
	for _, e := range expenses {
		if e.Date >= start && e.Date <= end {
			inExpenses = append(inExpenses, e)
		}
	}
	var inIncomes []*model.Income
	for _, i := range incomes {
		if i.Date >= start && i.Date <= end {
			inIncomes = append(inIncomes, i)
		}
	}

	totals := aggregate.Sum(inExpenses, inIncomes)

	r := &Report{
		Period:           period,
		Start:            start,
		End:              end,
		GeneratedAt:      now,
		TotalExpenses:    totals.Expenses,
		TotalIncome:      totals.Income,
		NetSavings:       totals.Balance,
		AvgDailySpending: totals.Expenses / 30,
		TransactionCount: len(inExpenses) + len(inIncomes),
		Breakdown:        aggregate.ByCategory(inExpenses),
		IncomeBreakdown:  aggregate.IncomeByCategory(inIncomes),
	}
	if totals.Income > 0 {
		r.SavingsRate = totals.Balance / totals.Income * 100
	}

	r.TopExpenses = topExpenses(inExpenses, 5)
	r.TopIncomes = topIncomes(inIncomes, 5)
	return r
}

func topExpenses(records []*model.Expense, n int) []*model.Expense {
	sorted := append([]*model.Expense(nil), records...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Amount > sorted[b].Amount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func topIncomes(records []*model.Income, n int) []*model.Income {
	sorted := append([]*model.Income(nil), records...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Amount > sorted[b].Amount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// HighestCategory returns the category with the most spending, empty when
// there was none.
func (r *Report) HighestCategory() string {
	if len(r.Breakdown) == 0 {
		return ""
	}
	return r.Breakdown[0].Category
}

// Insight is the one-line takeaway shown under the summary.
func (r *Report) Insight() string {
	switch {
	case r.TotalIncome == 0 && r.TotalExpenses == 0:
		return "No financial activity recorded for this period."
	case r.NetSavings < 0:
		return fmt.Sprintf("You spent more than you earned this period, overspending by %.2f. Review your top expenses.", -r.NetSavings)
	case r.SavingsRate >= 20:
		return fmt.Sprintf("Great job! You saved %.2f this period, a healthy share of your income.", r.NetSavings)
	default:
		return fmt.Sprintf("You came out ahead by %.2f this period. A little more saving would go a long way.", r.NetSavings)
	}
}

// quarterLabel names the calendar quarter the report's window starts in.
func (r *Report) quarterLabel() string {
	_, month, _, ok := model.SplitDate(r.Start)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Q%d", (month-1)/3+1)
}

// Render formats the report as plain text.
func (r *Report) Render() string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "FINANCIAL REPORT - %s\n", strings.ToUpper(r.Period.Label()))
	if r.Period == PeriodQuarterly {
		fmt.Fprintf(&b, "Period: %s to %s (%s)\n", r.Start, r.End, r.quarterLabel())
	} else {
		fmt.Fprintf(&b, "Period: %s to %s\n", r.Start, r.End)
	}
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(model.DateLayout))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("SUMMARY\n")
	p.Fprintf(&b, "  Total Income:       %.2f\n", r.TotalIncome)
	p.Fprintf(&b, "  Total Expenses:     %.2f\n", r.TotalExpenses)
	p.Fprintf(&b, "  Net Savings:        %.2f\n", r.NetSavings)
	p.Fprintf(&b, "  Savings Rate:       %.1f%%\n", r.SavingsRate)
	p.Fprintf(&b, "  Avg Daily Spending: %.2f\n", r.AvgDailySpending)
	p.Fprintf(&b, "  Transactions:       %d\n\n", r.TransactionCount)

	if len(r.Breakdown) > 0 {
		b.WriteString("EXPENSES BY CATEGORY\n")
		for _, share := range r.Breakdown {
			p.Fprintf(&b, "  %-20s %10.2f  (%d%%)\n", share.Category, share.Amount, share.Percent)
		}
		b.WriteString("\n")
	}

	if len(r.IncomeBreakdown) > 0 {
		b.WriteString("INCOME BY CATEGORY\n")
		for _, share := range r.IncomeBreakdown {
			p.Fprintf(&b, "  %-20s %10.2f  (%d%%)\n", share.Category, share.Amount, share.Percent)
		}
		b.WriteString("\n")
	}

	if len(r.TopExpenses) > 0 {
		b.WriteString("TOP EXPENSES\n")
		for _, e := range r.TopExpenses {
			p.Fprintf(&b, "  %s  %-30s %10.2f\n", e.Date, e.Description, e.Amount)
		}
		b.WriteString("\n")
	}

	if len(r.TopIncomes) > 0 {
		b.WriteString("TOP INCOME\n")
		for _, i := range r.TopIncomes {
			p.Fprintf(&b, "  %s  %-30s %10.2f\n", i.Date, i.Description, i.Amount)
		}
		b.WriteString("\n")
	}

	b.WriteString("INSIGHT\n")
	b.WriteString("  " + r.Insight() + "\n")
	if cat := r.HighestCategory(); cat != "" {
		fmt.Fprintf(&b, "  Highest spending category: %s\n", cat)
	}
	return b.String()
}
