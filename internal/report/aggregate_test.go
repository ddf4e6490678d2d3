package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodia/internal/expense"
	"custodia/internal/report"
)

func date(y int, m time.Month, d int) expense.Date {
	return expense.Date{Year: y, Month: m, Day: d}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newExpense(d expense.Date, value, category string) *expense.Expense {
	return &expense.Expense{
		ID:       uuid.New(),
		ChildID:  uuid.New(),
		Amount:   amount(value),
		Date:     d,
		Category: category,
		Status:   expense.StatusPaid,
	}
}

func fullPeriod() report.Filter {
	return report.Filter{
		Start: date(2024, time.January, 1),
		End:   date(2024, time.December, 31),
	}
}

func TestAggregate_InvalidPeriod(t *testing.T) {
	tests := []struct {
		name   string
		filter report.Filter
	}{
		{name: "ZeroStart", filter: report.Filter{End: date(2024, time.June, 1)}},
		{name: "ZeroEnd", filter: report.Filter{Start: date(2024, time.June, 1)}},
		{
			name: "EndBeforeStart",
			filter: report.Filter{
				Start: date(2024, time.June, 2),
				End:   date(2024, time.June, 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := report.Aggregate(nil, tt.filter)
			assert.ErrorIs(t, err, report.ErrInvalidPeriod)
		})
	}
}

func TestAggregate_FilterClosure(t *testing.T) {
	childA := uuid.New()
	childB := uuid.New()

	raw := []*expense.Expense{
		{ChildID: childA, Amount: amount("100"), Date: date(2024, time.March, 1), Category: "educação", Status: expense.StatusPaid},
		{ChildID: childB, Amount: amount("200"), Date: date(2024, time.March, 2), Category: "educação", Status: expense.StatusPending},
		{ChildID: childA, Amount: amount("300"), Date: date(2024, time.March, 3), Category: "saúde", Status: expense.StatusPaid},
		{ChildID: childA, Amount: amount("400"), Date: date(2025, time.March, 1), Category: "educação", Status: expense.StatusPaid},
	}

	filter := report.Filter{
		Start:      date(2024, time.January, 1),
		End:        date(2024, time.December, 31),
		Categories: []string{"educação"},
		ChildIDs:   []uuid.UUID{childA},
		Statuses:   []expense.Status{expense.StatusPaid},
	}

	rep, skipped, err := report.Aggregate(raw, filter)
	require.NoError(t, err)
	assert.Zero(t, skipped)

	// Every surviving expense satisfies the full predicate; nothing
	// outside it leaks into any total.
	require.Len(t, rep.Expenses, 1)
	for _, e := range rep.Expenses {
		assert.True(t, filter.Matches(e))
	}

	assert.True(t, rep.TotalAmount.Equal(amount("100")))
	assert.Len(t, rep.CategoryTotals, 1)
	assert.Len(t, rep.ChildTotals, 1)
}

func TestAggregate_SkipsInvalidRecords(t *testing.T) {
	raw := []*expense.Expense{
		newExpense(date(2024, time.March, 1), "100", "educação"),
		{Amount: amount("-50"), Date: date(2024, time.March, 2), Category: "saúde"},
		{Amount: decimal.Zero, Date: date(2024, time.March, 3), Category: "saúde"},
		{Amount: amount("75"), Category: "saúde"}, // zero date
	}

	rep, skipped, err := report.Aggregate(raw, fullPeriod())
	require.NoError(t, err)

	assert.Equal(t, 3, skipped)
	assert.Equal(t, 1, rep.ExpenseCount)
	assert.True(t, rep.TotalAmount.Equal(amount("100")))
}

func TestAggregate_SharesSumToHundred(t *testing.T) {
	raw := []*expense.Expense{
		newExpense(date(2024, time.January, 10), "33.33", "educação"),
		newExpense(date(2024, time.February, 10), "66.67", "saúde"),
		newExpense(date(2024, time.March, 10), "19.99", "lazer"),
		newExpense(date(2024, time.April, 10), "0.01", "vestuário"),
	}

	rep, _, err := report.Aggregate(raw, fullPeriod())
	require.NoError(t, err)

	sum := 0.0
	for _, share := range rep.CategoryShares {
		sum += share
	}

	assert.InDelta(t, 100.0, sum, 0.001)
}

func TestAggregate_ZeroTotal(t *testing.T) {
	// Nothing matches the period: no shares and no division by zero.
	raw := []*expense.Expense{
		newExpense(date(2023, time.May, 1), "100", "educação"),
	}

	rep, skipped, err := report.Aggregate(raw, fullPeriod())
	require.NoError(t, err)

	assert.Zero(t, skipped)
	assert.Zero(t, rep.ExpenseCount)
	assert.True(t, rep.TotalAmount.IsZero())
	assert.Empty(t, rep.CategoryShares)
	assert.Zero(t, rep.DocumentationRate)
}

func TestAggregate_BrazilianScenario(t *testing.T) {
	raw := []*expense.Expense{
		newExpense(date(2024, time.March, 5), "120.00", "educação"),
		newExpense(date(2024, time.March, 12), "180.00", "educação"),
		newExpense(date(2024, time.March, 20), "50.00", "saúde"),
	}
	raw[0].Receipts = []expense.Receipt{{ID: uuid.New()}}
	raw[2].Receipts = []expense.Receipt{{ID: uuid.New()}, {ID: uuid.New()}}

	rep, _, err := report.Aggregate(raw, fullPeriod())
	require.NoError(t, err)

	assert.True(t, rep.TotalAmount.Equal(amount("350.00")), "total was %s", rep.TotalAmount)
	assert.True(t, rep.CategoryTotals["educação"].Equal(amount("300.00")))
	assert.True(t, rep.CategoryTotals["saúde"].Equal(amount("50.00")))
	assert.InDelta(t, 85.71, rep.CategoryShares["educação"], 0.01)
	assert.InDelta(t, 14.29, rep.CategoryShares["saúde"], 0.01)

	assert.Equal(t, 3, rep.ReceiptCount)
	assert.InDelta(t, 66.67, rep.DocumentationRate, 0.01)

	assert.Equal(t, []string{"educação", "saúde"}, rep.Categories())
}

func TestAggregate_SortsAscendingByDate(t *testing.T) {
	raw := []*expense.Expense{
		newExpense(date(2024, time.June, 15), "10", "a"),
		newExpense(date(2024, time.January, 2), "10", "a"),
		newExpense(date(2024, time.March, 30), "10", "a"),
	}

	rep, _, err := report.Aggregate(raw, fullPeriod())
	require.NoError(t, err)

	require.Len(t, rep.Expenses, 3)
	for i := 1; i < len(rep.Expenses); i++ {
		assert.False(t, rep.Expenses[i].Date.Before(rep.Expenses[i-1].Date))
	}
}

func TestReport_MonthlyTotalsAndCumulative(t *testing.T) {
	raw := []*expense.Expense{
		newExpense(date(2024, time.January, 10), "100", "a"),
		newExpense(date(2024, time.January, 20), "50", "a"),
		newExpense(date(2024, time.March, 5), "200", "a"),
	}

	rep, _, err := report.Aggregate(raw, fullPeriod())
	require.NoError(t, err)

	months := rep.MonthlyTotals()
	require.Len(t, months, 2)
	assert.Equal(t, "2024-01", months[0].Key)
	assert.Equal(t, "jan/2024", months[0].Label)
	assert.True(t, months[0].Total.Equal(amount("150")))
	assert.Equal(t, "2024-03", months[1].Key)
	assert.True(t, months[1].Total.Equal(amount("200")))

	points := rep.Cumulative()
	require.Len(t, points, 3)
	assert.True(t, points[0].Total.Equal(amount("100")))
	assert.True(t, points[1].Total.Equal(amount("150")))
	assert.True(t, points[2].Total.Equal(amount("350")))
}

func TestMovingAverage(t *testing.T) {
	series := []decimal.Decimal{
		amount("1"), amount("2"), amount("3"), amount("4"), amount("5"),
	}

	got := report.MovingAverage(series)
	require.Len(t, got, 5)

	// The window degrades at the start: mean of one point, then two,
	// then the full trailing window of three.
	assert.True(t, got[0].Equal(amount("1")))
	assert.True(t, got[1].Equal(amount("1.5")))
	assert.True(t, got[2].Equal(amount("2")))
	assert.True(t, got[3].Equal(amount("3")))
	assert.True(t, got[4].Equal(amount("4")))
}

func TestMovingAverage_Empty(t *testing.T) {
	assert.Empty(t, report.MovingAverage(nil))
}
