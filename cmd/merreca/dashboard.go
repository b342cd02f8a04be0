package main

import (
	"fmt"
	"time"

	"github.com/minhamerreca/backend/internal/engine"
	"github.com/minhamerreca/backend/internal/ledger"
	"github.com/minhamerreca/backend/internal/money"
)

// dashboard renders the standard projections for each snapshot: the current
// month's movements, period totals, the expense breakdown, and the yearly
// matrix. Everything is recomputed from scratch per snapshot.
type dashboard struct {
	registry  *ledger.Registry
	formatter *money.Formatter
}

func newDashboard(reg *ledger.Registry, f *money.Formatter) *dashboard {
	return &dashboard{registry: reg, formatter: f}
}

func (d *dashboard) render(entries []*ledger.Entry, month time.Month, year int) {
	view := engine.NewViewState(month, year)
	listed := engine.FilterAndSort(entries, d.registry, view)
	totals := engine.ComputeTotals(listed)

	fmt.Printf("\n== %02d/%d ==\n", int(month), year)
	fmt.Printf("Entrou:  %s\n", d.formatter.FormatCents(totals.IncomeCents))
	fmt.Printf("Saiu:    %s\n", d.formatter.FormatCents(totals.ExpenseCents))
	fmt.Printf("Saldo:   %s\n", d.formatter.FormatSignedCents(totals.BalanceCents()))

	for _, e := range listed {
		cat := d.registry.Resolve(e.Category)
		fmt.Printf("  %s  %-24s %-18s %s\n",
			d.formatter.FormatDateShort(e.Date),
			truncate(e.Description, 24),
			cat.Label,
			d.formatter.FormatSignedCents(e.SignedCents()))
	}

	breakdown := engine.ComputeCategoryBreakdown(listed, d.registry)
	if len(breakdown) > 0 {
		fmt.Println("-- Por categoria --")
		for _, share := range breakdown {
			fmt.Printf("  %-18s %s (%.1f%%)\n",
				share.Config.Label,
				d.formatter.FormatCents(share.TotalCents),
				share.PercentOfExpenses)
		}
	}

	matrix := engine.ComputeYearlyMatrix(entries, d.registry, year)
	if len(matrix.Rows) > 0 {
		fmt.Printf("-- Relatório %d --\n", year)
		for _, row := range matrix.Rows {
			fmt.Printf("  %-18s total %s\n", row.Config.Label, d.formatter.FormatCents(row.Values[12]))
		}
		fmt.Printf("  %-18s total %s\n", "Saldo anual", d.formatter.FormatSignedCents(matrix.Summary.Balance[12]))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
