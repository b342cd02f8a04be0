// Package engine computes display-ready projections from the full entry set.
//
// Every function is pure and deterministic: no entry is mutated, no state is
// kept between calls, and re-running on a newer snapshot simply supersedes
// prior output. Sums run on integer cents; percentages are computed in
// float64 at the edge.
package engine

import (
	"sort"
	"strings"

	"github.com/minhamerreca/backend/internal/ledger"
)

// Totals holds the income and expense sums for a filtered period.
type Totals struct {
	IncomeCents  int64
	ExpenseCents int64
}

// BalanceCents is the running balance: income minus expense. Type is the only
// sign authority; an income entry is additive regardless of its category.
func (t Totals) BalanceCents() int64 {
	return t.IncomeCents - t.ExpenseCents
}

// CategoryShare is one row of the per-category expense breakdown.
type CategoryShare struct {
	CategoryId        string
	TotalCents        int64
	PercentOfExpenses float64
	Config            ledger.Category
}

// matrixSlots is 12 monthly values plus a trailing annual total.
const matrixSlots = 13

// MatrixRow is one expense category's year of monthly sums. Values[12] is the
// annual total.
type MatrixRow struct {
	CategoryId string
	Config     ledger.Category
	Values     [matrixSlots]int64
}

// MatrixSummary carries the independent income/expense sums and the derived
// balance row. Balance slots can be negative.
type MatrixSummary struct {
	Income  [matrixSlots]int64
	Expense [matrixSlots]int64
	Balance [matrixSlots]int64
}

// YearlyMatrix is the category × month expense grid for one calendar year.
type YearlyMatrix struct {
	Year    int
	Rows    []MatrixRow
	Summary MatrixSummary
}

// FilterAndSort returns the entries matching the view's period and filters,
// ordered by the view's sort. The result is a fresh, fully materialized
// slice; the input is never reordered or mutated.
func FilterAndSort(entries []*ledger.Entry, reg *ledger.Registry, view ViewState) []*ledger.Entry {
	out := make([]*ledger.Entry, 0, len(entries))
	for _, e := range entries {
		if !ledger.SameMonth(e.Date, view.Period.Month, view.Period.Year) {
			continue
		}
		if !view.Filters.Match(e.Category, string(e.Recurrence), string(e.PaymentMethod), string(e.Type)) {
			continue
		}
		out = append(out, e)
	}

	less := compareFn(view.Sort.Field, reg)
	sort.SliceStable(out, func(i, j int) bool {
		if view.Sort.Descending {
			i, j = j, i
		}
		return less(out[i], out[j])
	})
	return out
}

// compareFn returns the ascending comparison for a sort field. Category sorts
// by resolved display label, not the raw key.
func compareFn(field SortField, reg *ledger.Registry) func(a, b *ledger.Entry) bool {
	switch field {
	case SortByAmount:
		return func(a, b *ledger.Entry) bool { return a.AmountCents < b.AmountCents }
	case SortByDescription:
		return func(a, b *ledger.Entry) bool {
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		}
	case SortByCategory:
		return func(a, b *ledger.Entry) bool {
			return reg.Resolve(a.Category).Label < reg.Resolve(b.Category).Label
		}
	case SortByStatus:
		return func(a, b *ledger.Entry) bool { return a.Status < b.Status }
	default:
		return func(a, b *ledger.Entry) bool { return a.Date.Before(b.Date) }
	}
}

// ComputeTotals sums income and expense amounts over the given entries.
func ComputeTotals(entries []*ledger.Entry) Totals {
	var t Totals
	for _, e := range entries {
		if e.IsIncome() {
			t.IncomeCents += e.AmountCents
		} else {
			t.ExpenseCents += e.AmountCents
		}
	}
	return t
}

// ComputeCategoryBreakdown returns per-category expense totals with each
// category's share of all expenses, ordered by total descending. Ties keep
// first-seen order. Income entries never contribute. With no expenses the
// result is empty and no percentage is ever divided by zero.
func ComputeCategoryBreakdown(entries []*ledger.Entry, reg *ledger.Registry) []CategoryShare {
	totals := make(map[string]int64)
	var order []string
	var expenseCents int64

	for _, e := range entries {
		if e.IsIncome() {
			continue
		}
		key := reg.Resolve(e.Category).Id
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += e.AmountCents
		expenseCents += e.AmountCents
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, key := range order {
		percent := 0.0
		if expenseCents > 0 {
			percent = 100 * float64(totals[key]) / float64(expenseCents)
		}
		shares = append(shares, CategoryShare{
			CategoryId:        key,
			TotalCents:        totals[key],
			PercentOfExpenses: percent,
			Config:            reg.Resolve(key),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].TotalCents > shares[j].TotalCents
	})
	return shares
}

// ComputeYearlyMatrix builds the category × month expense grid for one
// calendar year over the entire entry set, ignoring the dashboard's active
// month and filters. Categories with no activity in the year are omitted;
// rows are ordered by annual total descending with stable ties.
func ComputeYearlyMatrix(entries []*ledger.Entry, reg *ledger.Registry, year int) YearlyMatrix {
	m := YearlyMatrix{Year: year}
	rowIndex := make(map[string]int)

	for _, e := range entries {
		if e.Date.Year() != year {
			continue
		}
		slot := ledger.MonthIndex(e.Date)

		if e.IsIncome() {
			m.Summary.Income[slot] += e.AmountCents
			m.Summary.Income[matrixSlots-1] += e.AmountCents
			continue
		}

		m.Summary.Expense[slot] += e.AmountCents
		m.Summary.Expense[matrixSlots-1] += e.AmountCents

		key := reg.Resolve(e.Category).Id
		idx, ok := rowIndex[key]
		if !ok {
			idx = len(m.Rows)
			rowIndex[key] = idx
			m.Rows = append(m.Rows, MatrixRow{CategoryId: key, Config: reg.Resolve(key)})
		}
		m.Rows[idx].Values[slot] += e.AmountCents
		m.Rows[idx].Values[matrixSlots-1] += e.AmountCents
	}

	for i := range m.Summary.Balance {
		m.Summary.Balance[i] = m.Summary.Income[i] - m.Summary.Expense[i]
	}

	sort.SliceStable(m.Rows, func(i, j int) bool {
		return m.Rows[i].Values[matrixSlots-1] > m.Rows[j].Values[matrixSlots-1]
	})
	return m
}
