package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhamerreca/backend/internal/ledger"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ledger.ParseDate(s)
	require.NoError(t, err)
	return d
}

func entry(t *testing.T, id string, cents int64, category string, typ ledger.EntryType, day string) *ledger.Entry {
	t.Helper()
	return &ledger.Entry{
		Id:            id,
		AmountCents:   cents,
		Amount:        float64(cents) / 100,
		Description:   id,
		Category:      category,
		PaymentMethod: ledger.PaymentPix,
		Type:          typ,
		Date:          date(t, day),
		Status:        ledger.StatusPaid,
		Recurrence:    ledger.RecurrenceOneOff,
	}
}

func TestComputeTotalsTypeIsSignAuthority(t *testing.T) {
	entries := []*ledger.Entry{
		entry(t, "a", 50000, "entrada", ledger.TypeIncome, "2026-03-01"),
		entry(t, "b", 12000, "transporte", ledger.TypeExpense, "2026-03-02"),
		// Income recorded under an expense category still adds to balance:
		// category is presentational, type is the only sign driver.
		entry(t, "c", 3000, "comida", ledger.TypeIncome, "2026-03-03"),
	}

	totals := ComputeTotals(entries)
	assert.Equal(t, int64(53000), totals.IncomeCents)
	assert.Equal(t, int64(12000), totals.ExpenseCents)
	assert.Equal(t, int64(41000), totals.BalanceCents())
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Zero(t, totals.IncomeCents)
	assert.Zero(t, totals.ExpenseCents)
	assert.Zero(t, totals.BalanceCents())
}

func TestFilterAndSortPeriodIsExact(t *testing.T) {
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "mar", 100, "comida", ledger.TypeExpense, "2026-03-10"),
		entry(t, "feb", 100, "comida", ledger.TypeExpense, "2026-02-10"),
		entry(t, "mar-prev-year", 100, "comida", ledger.TypeExpense, "2025-03-10"),
	}

	got := FilterAndSort(entries, reg, NewViewState(time.March, 2026))
	require.Len(t, got, 1)
	assert.Equal(t, "mar", got[0].Id)
}

func TestFilterAndSortCombinesWithAND(t *testing.T) {
	reg := ledger.NewRegistry()
	pix := entry(t, "pix-food", 100, "comida", ledger.TypeExpense, "2026-03-01")
	card := entry(t, "card-food", 100, "comida", ledger.TypeExpense, "2026-03-02")
	card.PaymentMethod = ledger.PaymentCard
	other := entry(t, "card-transport", 100, "transporte", ledger.TypeExpense, "2026-03-03")
	other.PaymentMethod = ledger.PaymentCard

	view := NewViewState(time.March, 2026)
	view.Filters.Category = "comida"
	view.Filters.PaymentMethod = string(ledger.PaymentCard)

	got := FilterAndSort([]*ledger.Entry{pix, card, other}, reg, view)
	require.Len(t, got, 1)
	assert.Equal(t, "card-food", got[0].Id)
}

func TestFilterAndSortDirectionToggle(t *testing.T) {
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "early", 100, "comida", ledger.TypeExpense, "2026-03-01"),
		entry(t, "late", 100, "comida", ledger.TypeExpense, "2026-03-20"),
	}

	view := NewViewState(time.March, 2026)
	// Default view sorts by date descending.
	got := FilterAndSort(entries, reg, view)
	require.Len(t, got, 2)
	assert.Equal(t, "late", got[0].Id)

	// Toggling the same field flips to ascending.
	view.Sort = view.Sort.Toggle(SortByDate)
	got = FilterAndSort(entries, reg, view)
	assert.Equal(t, "early", got[0].Id)

	// A new field resets to descending.
	view.Sort = view.Sort.Toggle(SortByAmount)
	assert.Equal(t, SortByAmount, view.Sort.Field)
	assert.True(t, view.Sort.Descending)
}

func TestFilterAndSortCategoryUsesDisplayLabel(t *testing.T) {
	reg := ledger.NewRegistry()
	// Labels: boletos="Contas da Casa", comida="Comida e Mercado",
	// transporte="Uber / Transporte". Raw-key order would differ.
	entries := []*ledger.Entry{
		entry(t, "t", 100, "transporte", ledger.TypeExpense, "2026-03-01"),
		entry(t, "b", 100, "boletos", ledger.TypeExpense, "2026-03-02"),
		entry(t, "c", 100, "comida", ledger.TypeExpense, "2026-03-03"),
	}

	view := NewViewState(time.March, 2026)
	view.Sort = Sort{Field: SortByCategory, Descending: false}
	got := FilterAndSort(entries, reg, view)

	var ids []string
	for _, e := range got {
		ids = append(ids, e.Id)
	}
	assert.Equal(t, []string{"c", "b", "t"}, ids)
}

func TestFilterAndSortIsStable(t *testing.T) {
	reg := ledger.NewRegistry()
	// Same amount: ties must keep original relative order.
	a := entry(t, "first", 500, "comida", ledger.TypeExpense, "2026-03-05")
	b := entry(t, "second", 500, "comida", ledger.TypeExpense, "2026-03-06")
	c := entry(t, "third", 500, "comida", ledger.TypeExpense, "2026-03-07")

	view := NewViewState(time.March, 2026)
	view.Sort = Sort{Field: SortByAmount, Descending: true}
	got := FilterAndSort([]*ledger.Entry{a, b, c}, reg, view)

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Id)
	assert.Equal(t, "second", got[1].Id)
	assert.Equal(t, "third", got[2].Id)
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	reg := ledger.NewRegistry()
	a := entry(t, "a", 100, "comida", ledger.TypeExpense, "2026-03-01")
	b := entry(t, "b", 200, "comida", ledger.TypeExpense, "2026-03-02")
	input := []*ledger.Entry{a, b}

	_ = FilterAndSort(input, reg, NewViewState(time.March, 2026))
	assert.Equal(t, "a", input[0].Id)
	assert.Equal(t, "b", input[1].Id)
}

func TestComputeCategoryBreakdown(t *testing.T) {
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "food1", 30000, "comida", ledger.TypeExpense, "2026-03-01"),
		entry(t, "food2", 10000, "comida", ledger.TypeExpense, "2026-03-05"),
		entry(t, "uber", 10000, "transporte", ledger.TypeExpense, "2026-03-06"),
		entry(t, "salary", 500000, "entrada", ledger.TypeIncome, "2026-03-01"),
	}

	shares := ComputeCategoryBreakdown(entries, reg)
	require.Len(t, shares, 2, "income entries never contribute")

	assert.Equal(t, "comida", shares[0].CategoryId)
	assert.Equal(t, int64(40000), shares[0].TotalCents)
	assert.InDelta(t, 80.0, shares[0].PercentOfExpenses, 1e-9)

	assert.Equal(t, "transporte", shares[1].CategoryId)
	assert.InDelta(t, 20.0, shares[1].PercentOfExpenses, 1e-9)

	var sum float64
	for _, s := range shares {
		sum += s.PercentOfExpenses
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestComputeCategoryBreakdownNoExpenses(t *testing.T) {
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "salary", 500000, "entrada", ledger.TypeIncome, "2026-03-01"),
	}
	assert.Empty(t, ComputeCategoryBreakdown(entries, reg))
	assert.Empty(t, ComputeCategoryBreakdown(nil, reg))
}

func TestComputeCategoryBreakdownOrphanedCategory(t *testing.T) {
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "ghost", 5000, "categoria-apagada", ledger.TypeExpense, "2026-03-01"),
	}

	shares := ComputeCategoryBreakdown(entries, reg)
	require.Len(t, shares, 1)
	assert.Equal(t, ledger.FallbackCategoryId, shares[0].CategoryId)
	assert.Equal(t, "Comprinhas / Outros", shares[0].Config.Label)
}

func TestComputeYearlyMatrix(t *testing.T) {
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "uber", 12000, "transporte", ledger.TypeExpense, "2026-03-10"),
		entry(t, "salary", 50000, "entrada", ledger.TypeIncome, "2026-03-05"),
		entry(t, "last-year", 99900, "comida", ledger.TypeExpense, "2025-03-10"),
	}

	m := ComputeYearlyMatrix(entries, reg, 2026)

	require.Len(t, m.Rows, 1, "zero-activity categories are omitted")
	row := m.Rows[0]
	assert.Equal(t, "transporte", row.CategoryId)
	assert.Equal(t, int64(12000), row.Values[2], "march slot")
	assert.Equal(t, int64(12000), row.Values[12], "annual total slot")

	assert.Equal(t, int64(50000), m.Summary.Income[2])
	assert.Equal(t, int64(12000), m.Summary.Expense[2])
	assert.Equal(t, int64(38000), m.Summary.Balance[2])
	assert.Equal(t, int64(38000), m.Summary.Balance[12])
	assert.Zero(t, m.Summary.Expense[0], "other months untouched")
}

func TestComputeYearlyMatrixNegativeBalance(t *testing.T) {
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "rent", 200000, "boletos", ledger.TypeExpense, "2026-01-05"),
		entry(t, "tip", 5000, "entrada", ledger.TypeIncome, "2026-01-06"),
	}

	m := ComputeYearlyMatrix(entries, reg, 2026)
	assert.Equal(t, int64(-195000), m.Summary.Balance[0])
	assert.Equal(t, int64(-195000), m.Summary.Balance[12])
}

func TestComputeYearlyMatrixRowOrdering(t *testing.T) {
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "small", 1000, "lazer", ledger.TypeExpense, "2026-02-01"),
		entry(t, "big", 90000, "boletos", ledger.TypeExpense, "2026-02-02"),
		entry(t, "mid", 40000, "comida", ledger.TypeExpense, "2026-06-01"),
	}

	m := ComputeYearlyMatrix(entries, reg, 2026)
	require.Len(t, m.Rows, 3)
	assert.Equal(t, "boletos", m.Rows[0].CategoryId)
	assert.Equal(t, "comida", m.Rows[1].CategoryId)
	assert.Equal(t, "lazer", m.Rows[2].CategoryId)
}

func TestComputeYearlyMatrixIgnoresViewFilters(t *testing.T) {
	// The matrix is a year-wide report: it sees the whole entry set for the
	// year no matter what the dashboard's month or filters say. This is
	// implicit in the API (no ViewState parameter), but pin the year filter.
	reg := ledger.NewRegistry()
	entries := []*ledger.Entry{
		entry(t, "jan", 1000, "comida", ledger.TypeExpense, "2026-01-15"),
		entry(t, "dec", 2000, "comida", ledger.TypeExpense, "2026-12-15"),
	}

	m := ComputeYearlyMatrix(entries, reg, 2026)
	require.Len(t, m.Rows, 1)
	assert.Equal(t, int64(1000), m.Rows[0].Values[0])
	assert.Equal(t, int64(2000), m.Rows[0].Values[11])
	assert.Equal(t, int64(3000), m.Rows[0].Values[12])
}
