// Package aggregate computes pure rollups over fetched records: totals,
// category breakdowns, and calendar views. Nothing here touches the store.
package aggregate

import (
	"math"
	"sort"

	"fintrack/internal/model"
)

// Totals is the headline summary over a set of records.
type Totals struct {
	Expenses float64
	Income   float64
	Balance  float64
}

// Sum computes total expenses, total income, and their balance.
func Sum(expenses []*model.Expense, incomes []*model.Income) Totals {
	var t Totals
	for _, e := range expenses {
		t.Expenses += e.Amount
	}
	for _, i := range incomes {
		t.Income += i.Amount
	}
	t.Balance = t.Income - t.Expenses
	return t
}

// Overspending reports whether expenses exceeded income.
func (t Totals) Overspending() bool {
	return t.Balance < 0
}

// CategoryShare is one slice of a category breakdown.
type CategoryShare struct {
	Category string
	Amount   float64
	Percent  int
}

// ByCategory rolls expenses up per category, largest first. Categories with
// no spending are omitted; a zero overall total yields an empty breakdown.
// Percentages are rounded to whole numbers, so they may not sum to exactly
// one hundred.
func ByCategory(expenses []*model.Expense) []CategoryShare {
	sums := make(map[string]float64)
	var total float64
	for _, e := range expenses {
		sums[e.Category] += e.Amount
		total += e.Amount
	}
	return toShares(sums, total)
}

// IncomeByCategory is ByCategory for the income side.
func IncomeByCategory(incomes []*model.Income) []CategoryShare {
	sums := make(map[string]float64)
	var total float64
	for _, i := range incomes {
		sums[i.Category] += i.Amount
		total += i.Amount
	}
	return toShares(sums, total)
}

func toShares(sums map[string]float64, total float64) []CategoryShare {
	if total == 0 {
		return nil
	}

	shares := make([]CategoryShare, 0, len(sums))
	for category, amount := range sums {
		if amount == 0 {
			continue
		}
		shares = append(shares, CategoryShare{
			Category: category,
			Amount:   amount,
			Percent:  int(math.Round(amount / total * 100)),
		})
	}
	sort.Slice(shares, func(a, b int) bool {
		if shares[a].Amount != shares[b].Amount {
			return shares[a].Amount > shares[b].Amount
		}
		return shares[a].Category < shares[b].Category
	})
	return shares
}

// DayActivity holds the records that landed on one calendar day. Days carry
// record presence, not amounts; sums live at month granularity and above.
type DayActivity struct {
	Expenses  []*model.Expense
	Incomes   []*model.Income
	Reminders []*model.Reminder
}

// HasActivity reports whether any record at all landed on the day. A record
// counts regardless of its amount; a zero-amount expense is still an event.
func (d DayActivity) HasActivity() bool {
	return len(d.Expenses) > 0 || len(d.Incomes) > 0 || len(d.Reminders) > 0
}

// MonthCalendar maps day-of-month to the records on that day for one calendar
// month. Records outside the month are ignored; reminders land by due date.
func MonthCalendar(year int, month int, expenses []*model.Expense, incomes []*model.Income, reminders []*model.Reminder) map[int]DayActivity {
	days := make(map[int]DayActivity)

	dayOf := func(date string) (int, bool) {
		y, m, d, ok := model.SplitDate(date)
		if !ok || y != year || m != month {
			return 0, false
		}
		return d, true
	}

	for _, e := range expenses {
		if d, ok := dayOf(e.Date); ok {
			day := days[d]
			day.Expenses = append(day.Expenses, e)
			days[d] = day
		}
	}
	for _, i := range incomes {
		if d, ok := dayOf(i.Date); ok {
			day := days[d]
			day.Incomes = append(day.Incomes, i)
			days[d] = day
		}
	}
	for _, r := range reminders {
		if d, ok := dayOf(r.DueDate); ok {
			day := days[d]
			day.Reminders = append(day.Reminders, r)
			days[d] = day
		}
	}
	return days
}

// MonthActivity sums one calendar month.
type MonthActivity struct {
	Expenses  float64
	Income    float64
	Reminders int
}

// YearCalendar rolls a year up into twelve month buckets, index 0 being
// January. The month totals equal the sum of the corresponding day-level
// activity.
func YearCalendar(year int, expenses []*model.Expense, incomes []*model.Income, reminders []*model.Reminder) [12]MonthActivity {
	var months [12]MonthActivity

	add := func(date string, apply func(*MonthActivity)) {
		y, m, _, ok := model.SplitDate(date)
		if !ok || y != year {
			return
		}
		apply(&months[m-1])
	}

	for _, e := range expenses {
		add(e.Date, func(m *MonthActivity) { m.Expenses += e.Amount })
	}
	for _, i := range incomes {
		add(i.Date, func(m *MonthActivity) { m.Income += i.Amount })
	}
	for _, r := range reminders {
		add(r.DueDate, func(m *MonthActivity) { m.Reminders++ })
	}
	return months
}
