// Package report implements the court-report pipeline: filtering and
// aggregation of expenses, chart and document composition, and the
// two-pass table-of-contents resolution.
package report

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"custodia/internal/expense"
)

var ErrInvalidPeriod = errors.New("invalid report period")

// Filter selects the expenses a report covers. Empty sets impose no
// restriction. The filter is applied exactly once, by Aggregate; no
// downstream component re-filters.
type Filter struct {
	Start      expense.Date
	End        expense.Date
	Categories []string
	ChildIDs   []uuid.UUID
	Statuses   []expense.Status
}

// Validate rejects malformed periods before any work is done.
func (f Filter) Validate() error {
	if f.Start.IsZero() || f.End.IsZero() {
		return ErrInvalidPeriod
	}

	if f.End.Before(f.Start) {
		return ErrInvalidPeriod
	}

	return nil
}

// Matches applies the filter predicate to a single expense: date range
// inclusive on both ends, set membership for category, child and status.
func (f Filter) Matches(e *expense.Expense) bool {
	if e.Date.Before(f.Start) || e.Date.After(f.End) {
		return false
	}

	if len(f.Categories) > 0 && !containsString(f.Categories, e.Category) {
		return false
	}

	if len(f.ChildIDs) > 0 && !containsUUID(f.ChildIDs, e.ChildID) {
		return false
	}

	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, e.Status) {
		return false
	}

	return true
}

// Period is the date range a report covers.
type Period struct {
	Start expense.Date
	End   expense.Date
}

// Report is the aggregated view of a filtered expense set. It is built
// once by Aggregate and read-only afterwards.
type Report struct {
	Expenses []*expense.Expense // filtered, ascending by date

	Period         Period
	TotalAmount    decimal.Decimal
	CategoryTotals map[string]decimal.Decimal
	ChildTotals    map[uuid.UUID]decimal.Decimal
	StatusTotals   map[expense.Status]decimal.Decimal

	// CategoryShares holds each category's percentage of TotalAmount.
	// Empty when TotalAmount is zero.
	CategoryShares map[string]float64

	ExpenseCount int
	ReceiptCount int

	// DocumentationRate is the percentage of expenses that have at
	// least one receipt attached.
	DocumentationRate float64
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}

	return false
}

func containsUUID(set []uuid.UUID, v uuid.UUID) bool {
	for _, id := range set {
		if id == v {
			return true
		}
	}

	return false
}

func containsStatus(set []expense.Status, v expense.Status) bool {
	for _, st := range set {
		if st == v {
			return true
		}
	}

	return false
}
