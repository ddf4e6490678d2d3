package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"custodia/internal/expense"
)

// Aggregate filters the raw expenses and reduces them to totals,
// per-group sums and documentation metrics. Records violating the
// amount invariant are skipped and counted in the second return value
// instead of aborting the whole aggregation.
//
// Aggregate is a pure function; it never mutates its inputs.
func Aggregate(raw []*expense.Expense, filter Filter) (*Report, int, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	r := &Report{
		Period:         Period{Start: filter.Start, End: filter.End},
		TotalAmount:    decimal.Zero,
		CategoryTotals: make(map[string]decimal.Decimal),
		ChildTotals:    make(map[uuid.UUID]decimal.Decimal),
		StatusTotals:   make(map[expense.Status]decimal.Decimal),
		CategoryShares: make(map[string]float64),
	}

	var (
		skipped   int
		receipted int
	)

	for _, e := range raw {
		if !e.Amount.IsPositive() || e.Date.IsZero() {
			skipped++
			continue
		}

		if !filter.Matches(e) {
			continue
		}

		r.Expenses = append(r.Expenses, e)
		r.TotalAmount = r.TotalAmount.Add(e.Amount)
		r.CategoryTotals[e.Category] = r.CategoryTotals[e.Category].Add(e.Amount)
		r.ChildTotals[e.ChildID] = r.ChildTotals[e.ChildID].Add(e.Amount)
		r.StatusTotals[e.Status] = r.StatusTotals[e.Status].Add(e.Amount)
		r.ReceiptCount += len(e.Receipts)

		if len(e.Receipts) > 0 {
			receipted++
		}
	}

	sort.SliceStable(r.Expenses, func(i, j int) bool {
		return r.Expenses[i].Date.Before(r.Expenses[j].Date)
	})

	r.ExpenseCount = len(r.Expenses)

	// Percentage breakdowns only exist for a non-zero total; a zero
	// total yields empty shares, never a division by zero.
	if r.TotalAmount.IsPositive() {
		for category, amount := range r.CategoryTotals {
			share := amount.Div(r.TotalAmount).Mul(decimal.NewFromInt(100))
			r.CategoryShares[category] = share.InexactFloat64()
		}
	}

	denom := r.ExpenseCount
	if denom == 0 {
		denom = 1
	}

	r.DocumentationRate = 100 * float64(receipted) / float64(denom)

	return r, skipped, nil
}

// Categories returns category names ordered by descending amount, with
// name as tie-breaker, so chart slices and table rows are deterministic.
func (r *Report) Categories() []string {
	names := make([]string, 0, len(r.CategoryTotals))
	for name := range r.CategoryTotals {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		cmp := r.CategoryTotals[names[i]].Cmp(r.CategoryTotals[names[j]])
		if cmp != 0 {
			return cmp > 0
		}

		return names[i] < names[j]
	})

	return names
}

// MonthlyPoint is one calendar month's total within the report period.
type MonthlyPoint struct {
	Key   string // "2006-01"
	Label string // "jan/2006"
	Total decimal.Decimal
}

// MonthlyTotals returns one point per calendar month present in the
// filtered set, ordered chronologically.
func (r *Report) MonthlyTotals() []MonthlyPoint {
	totals := make(map[string]decimal.Decimal)

	for _, e := range r.Expenses {
		key := e.Date.MonthKey()
		totals[key] = totals[key].Add(e.Amount)
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}

	// "YYYY-MM" sorts chronologically as a string.
	sort.Strings(keys)

	points := make([]MonthlyPoint, len(keys))
	for i, key := range keys {
		points[i] = MonthlyPoint{
			Key:   key,
			Label: monthLabel(key),
			Total: totals[key],
		}
	}

	return points
}

// CumulativePoint is a running total at a given expense date.
type CumulativePoint struct {
	Date  expense.Date
	Total decimal.Decimal
}

// Cumulative returns the running sum over the filtered expenses in
// ascending date order.
func (r *Report) Cumulative() []CumulativePoint {
	points := make([]CumulativePoint, 0, len(r.Expenses))
	running := decimal.Zero

	for _, e := range r.Expenses {
		running = running.Add(e.Amount)
		points = append(points, CumulativePoint{Date: e.Date, Total: running})
	}

	return points
}

// MovingAverage computes the trailing 3-point moving average of the
// series. For the first two points the window degrades to the mean of
// the points available so far.
func MovingAverage(series []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(series))

	for i := range series {
		lo := i - 2
		if lo < 0 {
			lo = 0
		}

		sum := decimal.Zero
		for _, v := range series[lo : i+1] {
			sum = sum.Add(v)
		}

		out[i] = sum.Div(decimal.NewFromInt(int64(i - lo + 1)))
	}

	return out
}
